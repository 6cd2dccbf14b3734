package models

import "time"

type Period struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	StartDate string    `gorm:"not null" json:"start_date"`
	EndDate   *string   `json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
}
