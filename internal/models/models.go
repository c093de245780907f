package models

import (
	"time"
)

// User - The person operating the register or the back office
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:50" json:"username"`
	PasswordHash string    `json:"-"`    // Never return this in JSON
	Role         string    `json:"role"` // 'admin', 'manager', 'cashier'
	CreatedAt    time.Time `json:"created_at"`
}

// MenuItem - What the restaurant sells
type MenuItem struct {
	ID       uint         `gorm:"primaryKey" json:"id"`
	Name     string       `gorm:"uniqueIndex;size:100" json:"name"`
	Price    float64      `json:"price"`
	Category string       `json:"category"`
	Recipe   []RecipeItem `gorm:"foreignKey:MenuItemID" json:"recipe"`
}

// RecipeItem - How much of an ingredient one unit of a menu item consumes
type RecipeItem struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	MenuItemID   uint       `gorm:"index" json:"menu_item_id"`
	IngredientID uint       `json:"ingredient_id"`
	Ingredient   Ingredient `json:"ingredient"` // Preload ingredient details
	Quantity     float64    `json:"quantity"`   // Consumed per ONE unit of the menu item
}

// Ingredient - The physical stock in the kitchen
type Ingredient struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	Name           string  `gorm:"uniqueIndex;size:100" json:"name"`
	QuantityOnHand float64 `json:"quantity_on_hand"`
	Unit           string  `json:"unit"` // 'kg', 'pcs', 'l'
	CostPerUnit    float64 `json:"cost_per_unit"`
	MinimumLevel   float64 `json:"minimum_level"` // Below this -> low stock alert
}

// Kitchen order statuses. 'ready' and 'cancelled' are terminal.
const (
	OrderStatusNew       = "new"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusCancelled = "cancelled"
)

// KitchenOrder - The Ticket Header
type KitchenOrder struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	Status        string      `gorm:"size:20;index" json:"status"`
	TotalAmount   float64     `json:"total_amount"`
	PaymentMethod string      `gorm:"size:20" json:"payment_method"`
	CreatedAt     time.Time   `json:"created_at"`
	Items         []OrderLine `gorm:"foreignKey:KitchenOrderID" json:"items"`
}

// OrderLine - The specific items on a ticket
type OrderLine struct {
	ID             uint     `gorm:"primaryKey" json:"id"`
	KitchenOrderID uint     `gorm:"index" json:"kitchen_order_id"`
	MenuItemID     uint     `json:"menu_item_id"`
	MenuItem       MenuItem `json:"menu_item"`
	Quantity       int      `json:"quantity"`
	PriceAtOrder   float64  `json:"price_at_order"` // Snapshot of price at placement time
}

// SaleRecord - One sold line, written when its order goes ready.
// Append-only: never updated after creation.
type SaleRecord struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	KitchenOrderID uint      `gorm:"index" json:"kitchen_order_id"`
	SaleDate       time.Time `gorm:"index" json:"sale_date"`
	ItemSold       string    `gorm:"size:100" json:"item_sold"` // Denormalized name
	Quantity       int       `json:"quantity"`
	Amount         float64   `json:"amount"`
	CostOfGoods    float64   `json:"cost_of_goods"`
	Profit         float64   `json:"profit"` // Amount - CostOfGoods
	PaymentMethod  string    `gorm:"size:20" json:"payment_method"`
}

// Expense - Money going out (rent, utilities, supplies...)
type Expense struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ExpenseDate time.Time `gorm:"index" json:"expense_date"`
	Category    string    `gorm:"size:50" json:"category"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
}

// AuditLog - Who did what, recorded for every authenticated write
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `json:"user_id"`
	Username  string    `gorm:"size:50" json:"username"`
	Method    string    `gorm:"size:10" json:"method"`
	Path      string    `gorm:"size:200" json:"path"`
	Status    int       `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
