package store

import (
	"time"

	"resto-pos/internal/models"
)

func (s *Store) CreateExpense(exp *models.Expense) error {
	return s.db.Create(exp).Error
}

func (s *Store) Expenses() ([]models.Expense, error) {
	var expenses []models.Expense
	err := s.db.Order("expense_date desc").Find(&expenses).Error
	return expenses, err
}

func (s *Store) ExpenseByID(id uint) (*models.Expense, error) {
	var exp models.Expense
	if err := s.db.First(&exp, id).Error; err != nil {
		return nil, translate(err)
	}
	return &exp, nil
}

func (s *Store) SaveExpense(exp *models.Expense) error {
	return s.db.Save(exp).Error
}

func (s *Store) DeleteExpense(id uint) error {
	res := s.db.Delete(&models.Expense{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ExpensesBetween mirrors SalesBetween for the expense ledger.
func (s *Store) ExpensesBetween(start, end time.Time) ([]models.Expense, error) {
	start, end = dayRange(start, end)
	var expenses []models.Expense
	q := s.db.Order("expense_date")
	if !start.IsZero() {
		q = q.Where("expense_date >= ?", start)
	}
	if !end.IsZero() {
		q = q.Where("expense_date <= ?", end)
	}
	err := q.Find(&expenses).Error
	return expenses, err
}
