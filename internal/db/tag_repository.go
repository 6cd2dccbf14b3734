package db

import (
	"fmt"
	"sort"

	"github.com/terraincognita07/cyclejournal/internal/models"
	"gorm.io/gorm"
)

// tagQueryBatchSize keeps IN lists well below SQLite's bound variable limit.
const tagQueryBatchSize = 500

type TagRepository struct {
	database *gorm.DB
}

func NewTagRepository(database *gorm.DB) *TagRepository {
	return &TagRepository{database: database}
}

func (repo *TagRepository) ListByKind(kind models.TagKind) ([]models.Tag, error) {
	tags := make([]models.Tag, 0)
	if err := repo.database.Table(kind.Table()).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// ensureTags inserts the names missing from the vocabulary and returns every
// requested tag with its id.
func ensureTags(tx *gorm.DB, kind models.TagKind, names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	if len(names) == 0 {
		return tags, nil
	}

	insertSQL := fmt.Sprintf(`INSERT INTO %s (name) VALUES (?) ON CONFLICT(name) DO NOTHING`, kind.Table())
	for _, name := range names {
		if err := tx.Exec(insertSQL, name).Error; err != nil {
			return nil, fmt.Errorf("insert %s tag %q: %w", kind, name, err)
		}
	}

	for _, batch := range batches(names, tagQueryBatchSize) {
		loaded := make([]models.Tag, 0, len(batch))
		if err := tx.Table(kind.Table()).Where("name IN ?", batch).Find(&loaded).Error; err != nil {
			return nil, fmt.Errorf("load %s tags: %w", kind, err)
		}
		tags = append(tags, loaded...)
	}
	sort.Slice(tags, func(i, j int) bool {
		return tags[i].Name < tags[j].Name
	})
	return tags, nil
}

func batches[T any](values []T, size int) [][]T {
	chunks := make([][]T, 0, (len(values)+size-1)/size)
	for start := 0; start < len(values); start += size {
		end := min(start+size, len(values))
		chunks = append(chunks, values[start:end])
	}
	return chunks
}

// replaceLogTags swaps the whole association set of a log for one vocabulary.
func replaceLogTags(tx *gorm.DB, kind models.TagKind, logID uint, tags []models.Tag) error {
	deleteSQL := fmt.Sprintf(`DELETE FROM %s WHERE log_id = ?`, kind.JoinTable())
	if err := tx.Exec(deleteSQL, logID).Error; err != nil {
		return fmt.Errorf("clear %s links: %w", kind, err)
	}

	insertSQL := fmt.Sprintf(`INSERT INTO %s (log_id, %s) VALUES (?, ?) ON CONFLICT DO NOTHING`, kind.JoinTable(), kind.JoinColumn())
	for _, tag := range tags {
		if err := tx.Exec(insertSQL, logID, tag.ID).Error; err != nil {
			return fmt.Errorf("link %s %q: %w", kind, tag.Name, err)
		}
	}
	return nil
}

type tagLink struct {
	LogID uint   `gorm:"column:log_id"`
	Name  string `gorm:"column:name"`
}

// attachTags fills the tag name lists of every log in place. Logs without
// associations get empty, non-nil lists.
func attachTags(database *gorm.DB, logs []models.DailyLog) error {
	if len(logs) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(logs))
	indexByID := make(map[uint]int, len(logs))
	for index := range logs {
		ids = append(ids, logs[index].ID)
		indexByID[logs[index].ID] = index
		for _, kind := range models.TagKinds {
			logs[index].SetTags(kind, []string{})
		}
	}

	for _, kind := range models.TagKinds {
		query := fmt.Sprintf(
			`SELECT j.log_id AS log_id, t.name AS name FROM %s j JOIN %s t ON t.id = j.%s WHERE j.log_id IN ? ORDER BY t.name ASC`,
			kind.JoinTable(), kind.Table(), kind.JoinColumn(),
		)
		links := make([]tagLink, 0)
		for _, batch := range batches(ids, tagQueryBatchSize) {
			loaded := make([]tagLink, 0)
			if err := database.Raw(query, batch).Scan(&loaded).Error; err != nil {
				return fmt.Errorf("load %s links: %w", kind, err)
			}
			links = append(links, loaded...)
		}
		sort.SliceStable(links, func(i, j int) bool {
			return links[i].Name < links[j].Name
		})
		for _, link := range links {
			index, ok := indexByID[link.LogID]
			if !ok {
				continue
			}
			logs[index].SetTags(kind, append(logs[index].Tags(kind), link.Name))
		}
	}
	return nil
}
