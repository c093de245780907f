package store

import (
	"errors"
	"time"

	"resto-pos/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned whenever a lookup by id or name comes back empty.
var ErrNotFound = errors.New("record not found")

// Repository is the persistence surface the rest of the app programs against.
// *Store is the gorm-backed implementation; Transaction hands the callback a
// Repository scoped to the open transaction so multi-step writes stay atomic.
type Repository interface {
	Transaction(fn func(tx Repository) error) error

	// Catalog
	MenuItems() ([]models.MenuItem, error)
	MenuItemByID(id uint) (*models.MenuItem, error)
	CreateMenuItem(item *models.MenuItem) error
	UpdateMenuItem(item *models.MenuItem, recipe []models.RecipeItem) error
	DeleteMenuItem(id uint) error

	// Inventory
	Ingredients() ([]models.Ingredient, error)
	IngredientByID(id uint) (*models.Ingredient, error)
	IngredientForUpdate(id uint) (*models.Ingredient, error)
	CreateIngredient(ing *models.Ingredient) error
	SaveIngredient(ing *models.Ingredient) error
	DeleteIngredient(id uint) error

	// Orders
	CreateOrder(order *models.KitchenOrder) error
	Orders(status string) ([]models.KitchenOrder, error)
	OrderByID(id uint) (*models.KitchenOrder, error)
	OrderForUpdate(id uint) (*models.KitchenOrder, error)
	SaveOrder(order *models.KitchenOrder) error

	// Sales
	CreateSaleRecords(records []models.SaleRecord) error
	SalesBetween(start, end time.Time) ([]models.SaleRecord, error)

	// Expenses
	CreateExpense(exp *models.Expense) error
	Expenses() ([]models.Expense, error)
	ExpenseByID(id uint) (*models.Expense, error)
	SaveExpense(exp *models.Expense) error
	DeleteExpense(id uint) error
	ExpensesBetween(start, end time.Time) ([]models.Expense, error)

	// Users
	UserByUsername(username string) (*models.User, error)
	CreateUser(user *models.User) error

	// Audit
	CreateAuditLog(entry *models.AuditLog) error
	AuditLogs(limit int) ([]models.AuditLog, error)
}

type Store struct {
	db *gorm.DB
}

var _ Repository = (*Store)(nil)

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Transaction runs fn inside a database transaction. Any error (or panic)
// rolls the whole thing back.
func (s *Store) Transaction(fn func(tx Repository) error) error {
	return s.db.Transaction(func(gtx *gorm.DB) error {
		return fn(&Store{db: gtx})
	})
}

// forUpdate adds a SELECT ... FOR UPDATE row lock. The sqlite dialect used in
// tests has a single writer and does not know the syntax, so it is skipped there.
func (s *Store) forUpdate() *gorm.DB {
	if s.db.Dialector.Name() == "sqlite" {
		return s.db
	}
	return s.db.Clauses(clause.Locking{Strength: "UPDATE"})
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// dayRange widens a date-only range to cover whole days: start at midnight,
// end just before the next midnight. Zero times leave that side open.
func dayRange(start, end time.Time) (time.Time, time.Time) {
	if !start.IsZero() {
		start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	}
	if !end.IsZero() {
		end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location()).
			Add(24*time.Hour - time.Nanosecond)
	}
	return start, end
}
