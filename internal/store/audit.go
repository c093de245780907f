package store

import (
	"resto-pos/internal/models"
)

func (s *Store) CreateAuditLog(entry *models.AuditLog) error {
	return s.db.Create(entry).Error
}

func (s *Store) AuditLogs(limit int) ([]models.AuditLog, error) {
	if limit <= 0 {
		limit = 100
	}
	var entries []models.AuditLog
	err := s.db.Order("created_at desc").Limit(limit).Find(&entries).Error
	return entries, err
}
