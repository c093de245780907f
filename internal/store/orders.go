package store

import (
	"resto-pos/internal/models"
)

func (s *Store) CreateOrder(order *models.KitchenOrder) error {
	// GORM inserts the nested OrderLines in the same statement batch
	return s.db.Create(order).Error
}

// Orders lists kitchen orders, newest first, optionally filtered by status.
func (s *Store) Orders(status string) ([]models.KitchenOrder, error) {
	var orders []models.KitchenOrder
	q := s.db.Preload("Items.MenuItem").Order("created_at desc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&orders).Error
	return orders, err
}

func (s *Store) OrderByID(id uint) (*models.KitchenOrder, error) {
	var order models.KitchenOrder
	if err := s.db.Preload("Items.MenuItem.Recipe.Ingredient").First(&order, id).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

// OrderForUpdate locks the order row before re-reading it. The status check
// done under this lock is what makes a double mark-ready impossible.
func (s *Store) OrderForUpdate(id uint) (*models.KitchenOrder, error) {
	var order models.KitchenOrder
	if err := s.forUpdate().First(&order, id).Error; err != nil {
		return nil, translate(err)
	}
	if err := s.db.Preload("MenuItem.Recipe.Ingredient").
		Where("kitchen_order_id = ?", id).Find(&order.Items).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *Store) SaveOrder(order *models.KitchenOrder) error {
	return s.db.Model(&models.KitchenOrder{}).Where("id = ?", order.ID).
		Update("status", order.Status).Error
}
