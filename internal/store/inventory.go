package store

import (
	"resto-pos/internal/models"
)

func (s *Store) Ingredients() ([]models.Ingredient, error) {
	var items []models.Ingredient
	err := s.db.Order("name").Find(&items).Error
	return items, err
}

func (s *Store) IngredientByID(id uint) (*models.Ingredient, error) {
	var ing models.Ingredient
	if err := s.db.First(&ing, id).Error; err != nil {
		return nil, translate(err)
	}
	return &ing, nil
}

// IngredientForUpdate reads an ingredient row under a write lock so that
// concurrent deductions against the same stock serialize.
func (s *Store) IngredientForUpdate(id uint) (*models.Ingredient, error) {
	var ing models.Ingredient
	if err := s.forUpdate().First(&ing, id).Error; err != nil {
		return nil, translate(err)
	}
	return &ing, nil
}

func (s *Store) CreateIngredient(ing *models.Ingredient) error {
	return s.db.Create(ing).Error
}

func (s *Store) SaveIngredient(ing *models.Ingredient) error {
	return s.db.Save(ing).Error
}

func (s *Store) DeleteIngredient(id uint) error {
	res := s.db.Delete(&models.Ingredient{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
