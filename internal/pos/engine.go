package pos

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"resto-pos/internal/models"
	"resto-pos/internal/store"
)

// Engine owns the order workflow: placing an order, walking it through the
// kitchen states, and the ready-transition reconciliation that deducts stock
// and books the sale. All writes go through a single database transaction so
// a failure anywhere leaves nothing half-applied.
type Engine struct {
	repo   store.Repository
	events Events

	// allowRecipeless lets menu items without a recipe sell at zero cost of
	// goods instead of blocking the order.
	allowRecipeless bool
}

func NewEngine(repo store.Repository, events Events, allowRecipeless bool) *Engine {
	if events == nil {
		events = LogEvents{}
	}
	return &Engine{repo: repo, events: events, allowRecipeless: allowRecipeless}
}

// OrderLineRequest is one line of a submitted ticket.
type OrderLineRequest struct {
	MenuItemID uint `json:"menu_item_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required"`
}

// PlaceOrder validates the ticket, snapshots current menu prices and creates
// the order in status 'new'. No inventory is touched here; stock is only
// committed when the kitchen marks the order ready.
func (e *Engine) PlaceOrder(lines []OrderLineRequest, paymentMethod string) (*models.KitchenOrder, error) {
	if len(lines) == 0 {
		return nil, validationf("order must contain at least one item")
	}
	for _, l := range lines {
		if l.Quantity <= 0 {
			return nil, validationf("quantity for menu item %d must be positive", l.MenuItemID)
		}
	}
	if paymentMethod == "" {
		paymentMethod = "cash"
	}

	order := &models.KitchenOrder{
		Status:        models.OrderStatusNew,
		PaymentMethod: paymentMethod,
	}

	err := e.repo.Transaction(func(tx store.Repository) error {
		for _, l := range lines {
			item, err := tx.MenuItemByID(l.MenuItemID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return &NotFoundError{Entity: "menu item", ID: l.MenuItemID}
				}
				return err
			}
			order.Items = append(order.Items, models.OrderLine{
				MenuItemID:   item.ID,
				Quantity:     l.Quantity,
				PriceAtOrder: item.Price,
			})
			order.TotalAmount += item.Price * float64(l.Quantity)
		}
		return tx.CreateOrder(order)
	})
	if err != nil {
		return nil, err
	}

	e.events.OrderPlaced(order)
	return order, nil
}

// StartPreparing moves a fresh order onto the kitchen line.
func (e *Engine) StartPreparing(id uint) (*models.KitchenOrder, error) {
	return e.transition(id, func(order *models.KitchenOrder) error {
		if order.Status != models.OrderStatusNew {
			return &InvalidStateError{OrderID: order.ID, Status: order.Status}
		}
		order.Status = models.OrderStatusPreparing
		return nil
	})
}

// CancelOrder voids an order that has not reached a terminal state.
// Cancelling never touches inventory or sales.
func (e *Engine) CancelOrder(id uint) (*models.KitchenOrder, error) {
	return e.transition(id, func(order *models.KitchenOrder) error {
		if terminal(order.Status) {
			return &InvalidStateError{OrderID: order.ID, Status: order.Status}
		}
		order.Status = models.OrderStatusCancelled
		return nil
	})
}

func (e *Engine) transition(id uint, step func(order *models.KitchenOrder) error) (*models.KitchenOrder, error) {
	var order *models.KitchenOrder
	err := e.repo.Transaction(func(tx store.Repository) error {
		var err error
		order, err = tx.OrderForUpdate(id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return &NotFoundError{Entity: "order", ID: id}
			}
			return err
		}
		if err := step(order); err != nil {
			return err
		}
		return tx.SaveOrder(order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func terminal(status string) bool {
	return status == models.OrderStatusReady || status == models.OrderStatusCancelled
}

// requirement is the aggregated demand for one ingredient across the order.
type requirement struct {
	name     string // best-effort, for shortage reporting
	menuItem string // first menu item that needs it
	amount   float64
}

// MarkReady runs the order-to-inventory-to-sale reconciliation:
//
//  1. lock and re-check the order (terminal states are rejected),
//  2. pre-check every recipe requirement against locked ingredient rows,
//     collecting ALL shortages before touching anything,
//  3. deduct stock and accumulate per-line cost of goods,
//  4. write one sale record per order line,
//  5. flip the order to ready.
//
// Everything happens in one transaction: a shortage, a missing ingredient or
// any write error rolls the whole thing back with zero side effects.
func (e *Engine) MarkReady(id uint) (*models.KitchenOrder, error) {
	var order *models.KitchenOrder
	var lowStock []models.Ingredient

	err := e.repo.Transaction(func(tx store.Repository) error {
		var err error
		order, err = tx.OrderForUpdate(id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return &NotFoundError{Entity: "order", ID: id}
			}
			return err
		}
		if terminal(order.Status) {
			return &InvalidStateError{OrderID: order.ID, Status: order.Status}
		}

		// --- Pre-check pass: aggregate demand, lock stock, report shortages ---

		required := map[uint]*requirement{}
		for _, line := range order.Items {
			if len(line.MenuItem.Recipe) == 0 {
				if !e.allowRecipeless {
					return validationf("menu item %q has no recipe; recipeless sales are disabled", line.MenuItem.Name)
				}
				continue // sold at zero cost of goods
			}
			for _, r := range line.MenuItem.Recipe {
				req := required[r.IngredientID]
				if req == nil {
					req = &requirement{
						name:     ingredientName(r),
						menuItem: line.MenuItem.Name,
					}
					required[r.IngredientID] = req
				}
				req.amount += r.Quantity * float64(line.Quantity)
			}
		}

		// Lock ingredient rows in ascending id order so two competing
		// mark-ready calls can never deadlock on each other.
		ids := make([]uint, 0, len(required))
		for id := range required {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		stock := map[uint]*models.Ingredient{}
		var shortages []Shortage
		for _, ingID := range ids {
			req := required[ingID]
			ing, err := tx.IngredientForUpdate(ingID)
			if errors.Is(err, store.ErrNotFound) {
				shortages = append(shortages, Shortage{
					IngredientID: ingID,
					Ingredient:   req.name,
					MenuItem:     req.menuItem,
					Required:     req.amount,
					Available:    0,
				})
				continue
			}
			if err != nil {
				return err
			}
			if ing.QuantityOnHand < req.amount {
				shortages = append(shortages, Shortage{
					IngredientID: ing.ID,
					Ingredient:   ing.Name,
					MenuItem:     req.menuItem,
					Required:     req.amount,
					Available:    ing.QuantityOnHand,
					Unit:         ing.Unit,
				})
				continue
			}
			stock[ingID] = ing
		}
		if len(shortages) > 0 {
			return &InsufficientStockError{Shortages: shortages}
		}

		// --- Commit pass: deduct stock, cost each line, book the sale ---

		now := time.Now()
		sales := make([]models.SaleRecord, 0, len(order.Items))
		for _, line := range order.Items {
			var cost float64
			for _, r := range line.MenuItem.Recipe {
				ing := stock[r.IngredientID]
				used := r.Quantity * float64(line.Quantity)
				ing.QuantityOnHand -= used
				cost += used * ing.CostPerUnit
			}
			amount := line.PriceAtOrder * float64(line.Quantity)
			sales = append(sales, models.SaleRecord{
				KitchenOrderID: order.ID,
				SaleDate:       now,
				ItemSold:       line.MenuItem.Name,
				Quantity:       line.Quantity,
				Amount:         amount,
				CostOfGoods:    cost,
				Profit:         amount - cost,
				PaymentMethod:  order.PaymentMethod,
			})
		}

		for _, ingID := range ids {
			ing := stock[ingID]
			if err := tx.SaveIngredient(ing); err != nil {
				return err
			}
			if ing.MinimumLevel > 0 && ing.QuantityOnHand < ing.MinimumLevel {
				lowStock = append(lowStock, *ing)
			}
		}
		if err := tx.CreateSaleRecords(sales); err != nil {
			return err
		}

		order.Status = models.OrderStatusReady
		return tx.SaveOrder(order)
	})
	if err != nil {
		return nil, err
	}

	// Notifications only fire once the transaction has committed.
	e.events.OrderReady(order)
	for _, ing := range lowStock {
		e.events.LowStock(ing)
	}
	return order, nil
}

func ingredientName(r models.RecipeItem) string {
	if r.Ingredient.Name != "" {
		return r.Ingredient.Name
	}
	return fmt.Sprintf("ingredient #%d", r.IngredientID)
}
