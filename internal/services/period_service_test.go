package services

import (
	"errors"
	"testing"
)

func TestPeriodServiceRecordPeriod(t *testing.T) {
	repo := newPeriodRepositoryStub()
	service := NewPeriodService(repo)

	open, err := service.RecordPeriod(1, PeriodInput{StartDate: "2024-04-01"})
	if err != nil {
		t.Fatalf("record open period: %v", err)
	}
	if open.EndDate != nil {
		t.Fatalf("expected open period, got end %q", *open.EndDate)
	}

	closed, err := service.RecordPeriod(1, PeriodInput{StartDate: "2024-04-29", EndDate: "2024-04-29"})
	if err != nil {
		t.Fatalf("record single-day period: %v", err)
	}
	if closed.EndDate == nil || *closed.EndDate != "2024-04-29" {
		t.Fatalf("unexpected end date %v", closed.EndDate)
	}

	periods, err := service.ListPeriods(1)
	if err != nil {
		t.Fatalf("list periods: %v", err)
	}
	if len(periods) != 2 {
		t.Fatalf("expected 2 periods, got %d", len(periods))
	}
}

func TestPeriodServiceRecordPeriodValidation(t *testing.T) {
	service := NewPeriodService(newPeriodRepositoryStub())

	if _, err := service.RecordPeriod(1, PeriodInput{StartDate: "bad"}); !errors.Is(err, ErrInvalidPeriodDate) {
		t.Fatalf("expected ErrInvalidPeriodDate, got %v", err)
	}
	if _, err := service.RecordPeriod(1, PeriodInput{StartDate: "2024-04-01", EndDate: "04/05/2024"}); !errors.Is(err, ErrInvalidPeriodDate) {
		t.Fatalf("expected ErrInvalidPeriodDate for end, got %v", err)
	}
	if _, err := service.RecordPeriod(1, PeriodInput{StartDate: "2024-04-05", EndDate: "2024-04-01"}); !errors.Is(err, ErrPeriodEndBeforeStart) {
		t.Fatalf("expected ErrPeriodEndBeforeStart, got %v", err)
	}
}

func TestPeriodServiceDeletePeriodIsScopedToUser(t *testing.T) {
	repo := newPeriodRepositoryStub()
	service := NewPeriodService(repo)

	period, err := service.RecordPeriod(1, PeriodInput{StartDate: "2024-04-01"})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := service.DeletePeriod(2, period.ID); !errors.Is(err, ErrPeriodNotFound) {
		t.Fatalf("expected ErrPeriodNotFound for other user, got %v", err)
	}
	if err := service.DeletePeriod(1, period.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
}
