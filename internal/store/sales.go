package store

import (
	"time"

	"resto-pos/internal/models"
)

func (s *Store) CreateSaleRecords(records []models.SaleRecord) error {
	if len(records) == 0 {
		return nil
	}
	return s.db.Create(&records).Error
}

// SalesBetween returns sale records in the inclusive date-only range.
// A zero start or end leaves that side of the range open.
func (s *Store) SalesBetween(start, end time.Time) ([]models.SaleRecord, error) {
	start, end = dayRange(start, end)
	var records []models.SaleRecord
	q := s.db.Order("sale_date")
	if !start.IsZero() {
		q = q.Where("sale_date >= ?", start)
	}
	if !end.IsZero() {
		q = q.Where("sale_date <= ?", end)
	}
	err := q.Find(&records).Error
	return records, err
}
