package pos

import (
	"fmt"
	"strings"
)

// ValidationError - the request itself is malformed (empty order, zero
// quantity, missing recipe when recipeless sales are disabled...).
// Rejected before anything is looked up or written.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError - a referenced order, menu item or ingredient does not exist.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// InvalidStateError - the order is already in a terminal state and the
// requested transition is not allowed.
type InvalidStateError struct {
	OrderID uint
	Status  string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("order %d is already %s", e.OrderID, e.Status)
}

// Shortage names one ingredient that cannot cover the order's requirement.
type Shortage struct {
	IngredientID uint    `json:"ingredient_id"`
	Ingredient   string  `json:"ingredient"`
	MenuItem     string  `json:"menu_item"`
	Required     float64 `json:"required"`
	Available    float64 `json:"available"`
	Unit         string  `json:"unit"`
}

// InsufficientStockError aborts a mark-ready with zero side effects.
// It carries the FULL shortage list so the kitchen can restock everything
// in one trip instead of discovering shortages one by one.
type InsufficientStockError struct {
	Shortages []Shortage
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		parts = append(parts, fmt.Sprintf("%s (need %g %s, have %g)",
			s.Ingredient, s.Required, s.Unit, s.Available))
	}
	return "insufficient stock: " + strings.Join(parts, ", ")
}
