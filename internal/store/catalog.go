package store

import (
	"resto-pos/internal/models"
)

func (s *Store) MenuItems() ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := s.db.Preload("Recipe.Ingredient").Order("name").Find(&items).Error
	return items, err
}

func (s *Store) MenuItemByID(id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.db.Preload("Recipe.Ingredient").First(&item, id).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (s *Store) CreateMenuItem(item *models.MenuItem) error {
	return s.db.Create(item).Error
}

// UpdateMenuItem saves the header fields and, when a recipe slice is given,
// replaces the whole recipe in the same transaction. Partial recipe edits are
// not a thing: the client always sends the full ingredient list.
func (s *Store) UpdateMenuItem(item *models.MenuItem, recipe []models.RecipeItem) error {
	return s.Transaction(func(tx Repository) error {
		t := tx.(*Store)
		if err := t.db.Model(&models.MenuItem{}).Where("id = ?", item.ID).
			Updates(map[string]interface{}{
				"name":     item.Name,
				"price":    item.Price,
				"category": item.Category,
			}).Error; err != nil {
			return err
		}
		if recipe == nil {
			return nil
		}
		if err := t.db.Where("menu_item_id = ?", item.ID).Delete(&models.RecipeItem{}).Error; err != nil {
			return err
		}
		for i := range recipe {
			recipe[i].ID = 0
			recipe[i].MenuItemID = item.ID
		}
		if len(recipe) == 0 {
			return nil
		}
		return t.db.Create(&recipe).Error
	})
}

func (s *Store) DeleteMenuItem(id uint) error {
	return s.Transaction(func(tx Repository) error {
		t := tx.(*Store)
		if err := t.db.Where("menu_item_id = ?", id).Delete(&models.RecipeItem{}).Error; err != nil {
			return err
		}
		res := t.db.Delete(&models.MenuItem{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
