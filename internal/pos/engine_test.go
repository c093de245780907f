package pos

import (
	"errors"
	"math"
	"testing"

	"resto-pos/internal/database"
	"resto-pos/internal/models"
	"resto-pos/internal/store"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRepo(t *testing.T) *store.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// The in-memory DB lives per connection; keep the pool at one.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("raw db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store.New(db)
}

// eventRecorder captures notifications so tests can assert on them.
type eventRecorder struct {
	placed   []uint
	ready    []uint
	lowStock []string
}

func (r *eventRecorder) OrderPlaced(o *models.KitchenOrder) { r.placed = append(r.placed, o.ID) }
func (r *eventRecorder) OrderReady(o *models.KitchenOrder)  { r.ready = append(r.ready, o.ID) }
func (r *eventRecorder) LowStock(i models.Ingredient)       { r.lowStock = append(r.lowStock, i.Name) }

// seedBurger sets up the worked example: a 12.99 burger consuming
// 0.25 kg beef at 8.00/kg and 2 buns at 0.20 each.
func seedBurger(t *testing.T, repo *store.Store, beefStock, bunStock float64) (burger models.MenuItem, beef, bun models.Ingredient) {
	t.Helper()
	beef = models.Ingredient{Name: "ground beef", QuantityOnHand: beefStock, Unit: "kg", CostPerUnit: 8.00}
	bun = models.Ingredient{Name: "bun", QuantityOnHand: bunStock, Unit: "pcs", CostPerUnit: 0.20}
	if err := repo.CreateIngredient(&beef); err != nil {
		t.Fatalf("seed beef: %v", err)
	}
	if err := repo.CreateIngredient(&bun); err != nil {
		t.Fatalf("seed bun: %v", err)
	}
	burger = models.MenuItem{
		Name:  "Burger",
		Price: 12.99,
		Recipe: []models.RecipeItem{
			{IngredientID: beef.ID, Quantity: 0.25},
			{IngredientID: bun.ID, Quantity: 2},
		},
	}
	if err := repo.CreateMenuItem(&burger); err != nil {
		t.Fatalf("seed burger: %v", err)
	}
	return burger, beef, bun
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPlaceOrderComputesTotal(t *testing.T) {
	repo := newTestRepo(t)
	rec := &eventRecorder{}
	engine := NewEngine(repo, rec, true)
	burger, _, _ := seedBurger(t, repo, 10, 100)

	order, err := engine.PlaceOrder([]OrderLineRequest{{MenuItemID: burger.ID, Quantity: 2}}, "card")
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if !almostEqual(order.TotalAmount, 25.98) {
		t.Errorf("total = %v, want 25.98", order.TotalAmount)
	}
	if order.Status != models.OrderStatusNew {
		t.Errorf("status = %q, want new", order.Status)
	}
	if order.Items[0].PriceAtOrder != 12.99 {
		t.Errorf("price snapshot = %v, want 12.99", order.Items[0].PriceAtOrder)
	}
	if len(rec.placed) != 1 {
		t.Errorf("placed events = %d, want 1", len(rec.placed))
	}
}

func TestPlaceOrderValidation(t *testing.T) {
	repo := newTestRepo(t)
	engine := NewEngine(repo, nil, true)
	burger, _, _ := seedBurger(t, repo, 10, 100)

	var validation *ValidationError
	if _, err := engine.PlaceOrder(nil, ""); !errors.As(err, &validation) {
		t.Errorf("empty order: got %v, want ValidationError", err)
	}
	if _, err := engine.PlaceOrder([]OrderLineRequest{{MenuItemID: burger.ID, Quantity: 0}}, ""); !errors.As(err, &validation) {
		t.Errorf("zero quantity: got %v, want ValidationError", err)
	}

	var notFound *NotFoundError
	if _, err := engine.PlaceOrder([]OrderLineRequest{{MenuItemID: 9999, Quantity: 1}}, ""); !errors.As(err, &notFound) {
		t.Errorf("unknown menu item: got %v, want NotFoundError", err)
	}
}

func TestMarkReadyDeductsStockAndBooksSale(t *testing.T) {
	repo := newTestRepo(t)
	rec := &eventRecorder{}
	engine := NewEngine(repo, rec, true)
	burger, beef, bun := seedBurger(t, repo, 10, 100)

	order, err := engine.PlaceOrder([]OrderLineRequest{{MenuItemID: burger.ID, Quantity: 2}}, "cash")
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	ready, err := engine.MarkReady(order.ID)
	if err != nil {
		t.Fatalf("MarkReady: %v", err)
	}
	if ready.Status != models.OrderStatusReady {
		t.Errorf("status = %q, want ready", ready.Status)
	}

	gotBeef, _ := repo.IngredientByID(beef.ID)
	if !almostEqual(gotBeef.QuantityOnHand, 9.5) {
		t.Errorf("beef on hand = %v, want 9.5", gotBeef.QuantityOnHand)
	}
	gotBun, _ := repo.IngredientByID(bun.ID)
	if !almostEqual(gotBun.QuantityOnHand, 96) {
		t.Errorf("buns on hand = %v, want 96", gotBun.QuantityOnHand)
	}

	sales, err := repo.SalesBetween(zeroTime(), zeroTime())
	if err != nil {
		t.Fatalf("SalesBetween: %v", err)
	}
	if len(sales) != 1 {
		t.Fatalf("sale records = %d, want 1", len(sales))
	}
	sale := sales[0]
	if !almostEqual(sale.Amount, 25.98) {
		t.Errorf("amount = %v, want 25.98", sale.Amount)
	}
	if !almostEqual(sale.CostOfGoods, 4.80) {
		t.Errorf("cost of goods = %v, want 4.80", sale.CostOfGoods)
	}
	if !almostEqual(sale.Profit, 21.18) {
		t.Errorf("profit = %v, want 21.18", sale.Profit)
	}
	if sale.PaymentMethod != "cash" {
		t.Errorf("payment method = %q, want cash", sale.PaymentMethod)
	}
	if len(rec.ready) != 1 {
		t.Errorf("ready events = %d, want 1", len(rec.ready))
	}
}

// Profit identity: the sum of line profits equals the order total minus
// everything the order pulled out of inventory.
func TestMarkReadyProfitInvariant(t *testing.T) {
	repo := newTestRepo(t)
	engine := NewEngine(repo, nil, true)
	burger, beef, bun := seedBurger(t, repo, 10, 100)

	fries := models.MenuItem{
		Name:  "Fries",
		Price: 4.50,
		Recipe: []models.RecipeItem{
			{IngredientID: beef.ID, Quantity: 0}, // shares the table, costs nothing
			{IngredientID: bun.ID, Quantity: 1},
		},
	}
	if err := repo.CreateMenuItem(&fries); err != nil {
		t.Fatalf("seed fries: %v", err)
	}

	order, err := engine.PlaceOrder([]OrderLineRequest{
		{MenuItemID: burger.ID, Quantity: 3},
		{MenuItemID: fries.ID, Quantity: 2},
	}, "")
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if _, err := engine.MarkReady(order.ID); err != nil {
		t.Fatalf("MarkReady: %v", err)
	}

	gotBeef, _ := repo.IngredientByID(beef.ID)
	gotBun, _ := repo.IngredientByID(bun.ID)
	deductedCost := (beef.QuantityOnHand-gotBeef.QuantityOnHand)*beef.CostPerUnit +
		(bun.QuantityOnHand-gotBun.QuantityOnHand)*bun.CostPerUnit

	sales, _ := repo.SalesBetween(zeroTime(), zeroTime())
	var totalProfit float64
	for _, s := range sales {
		totalProfit += s.Profit
	}
	if !almostEqual(totalProfit, order.TotalAmount-deductedCost) {
		t.Errorf("Σprofit = %v, want total %v - deducted %v", totalProfit, order.TotalAmount, deductedCost)
	}
}

func TestMarkReadyInsufficientStock(t *testing.T) {
	repo := newTestRepo(t)
	engine := NewEngine(repo, nil, true)
	burger, beef, bun := seedBurger(t, repo, 0.4, 100)

	order, err := engine.PlaceOrder([]OrderLineRequest{{MenuItemID: burger.ID, Quantity: 2}}, "")
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	_, err = engine.MarkReady(order.ID)
	var insufficient *InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("got %v, want InsufficientStockError", err)
	}
	if len(insufficient.Shortages) != 1 {
		t.Fatalf("shortages = %d, want 1", len(insufficient.Shortages))
	}
	s := insufficient.Shortages[0]
	if s.Ingredient != "ground beef" || !almostEqual(s.Required, 0.5) || !almostEqual(s.Available, 0.4) {
		t.Errorf("shortage = %+v, want ground beef 0.5 needed vs 0.4 available", s)
	}

	// All-or-nothing: nothing moved, nothing was sold.
	gotBeef, _ := repo.IngredientByID(beef.ID)
	if !almostEqual(gotBeef.QuantityOnHand, 0.4) {
		t.Errorf("beef on hand = %v, want untouched 0.4", gotBeef.QuantityOnHand)
	}
	gotBun, _ := repo.IngredientByID(bun.ID)
	if !almostEqual(gotBun.QuantityOnHand, 100) {
		t.Errorf("buns on hand = %v, want untouched 100", gotBun.QuantityOnHand)
	}
	sales, _ := repo.SalesBetween(zeroTime(), zeroTime())
	if len(sales) != 0 {
		t.Errorf("sale records = %d, want 0", len(sales))
	}
	gotOrder, _ := repo.OrderByID(order.ID)
	if gotOrder.Status != models.OrderStatusNew {
		t.Errorf("order status = %q, want still new", gotOrder.Status)
	}
}

// Every shortage is reported, not just the first one hit.
func TestMarkReadyReportsAllShortages(t *testing.T) {
	repo := newTestRepo(t)
	engine := NewEngine(repo, nil, true)
	burger, _, _ := seedBurger(t, repo, 0.1, 1)

	order, err := engine.PlaceOrder([]OrderLineRequest{{MenuItemID: burger.ID, Quantity: 2}}, "")
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	_, err = engine.MarkReady(order.ID)
	var insufficient *InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("got %v, want InsufficientStockError", err)
	}
	if len(insufficient.Shortages) != 2 {
		t.Errorf("shortages = %d, want 2 (beef and buns)", len(insufficient.Shortages))
	}
}

func TestMarkReadyTwiceIsRejected(t *testing.T) {
	repo := newTestRepo(t)
	engine := NewEngine(repo, nil, true)
	burger, beef, _ := seedBurger(t, repo, 10, 100)

	order, err := engine.PlaceOrder([]OrderLineRequest{{MenuItemID: burger.ID, Quantity: 2}}, "")
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if _, err := engine.MarkReady(order.ID); err != nil {
		t.Fatalf("first MarkReady: %v", err)
	}

	_, err = engine.MarkReady(order.ID)
	var invalidState *InvalidStateError
	if !errors.As(err, &invalidState) {
		t.Fatalf("second MarkReady: got %v, want InvalidStateError", err)
	}

	// No double deduction, no extra sale records.
	gotBeef, _ := repo.IngredientByID(beef.ID)
	if !almostEqual(gotBeef.QuantityOnHand, 9.5) {
		t.Errorf("beef on hand = %v, want 9.5", gotBeef.QuantityOnHand)
	}
	sales, _ := repo.SalesBetween(zeroTime(), zeroTime())
	if len(sales) != 1 {
		t.Errorf("sale records = %d, want 1", len(sales))
	}
}

func TestMarkReadyUnknownOrder(t *testing.T) {
	repo := newTestRepo(t)
	engine := NewEngine(repo, nil, true)

	var notFound *NotFoundError
	if _, err := engine.MarkReady(404); !errors.As(err, &notFound) {
		t.Errorf("got %v, want NotFoundError", err)
	}
}

func TestCancelOrderHasNoSideEffects(t *testing.T) {
	repo := newTestRepo(t)
	engine := NewEngine(repo, nil, true)
	burger, beef, _ := seedBurger(t, repo, 10, 100)

	order, err := engine.PlaceOrder([]OrderLineRequest{{MenuItemID: burger.ID, Quantity: 2}}, "")
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	cancelled, err := engine.CancelOrder(order.ID)
	if err != nil {
		t.Fatalf("CancelOrder: %v", err)
	}
	if cancelled.Status != models.OrderStatusCancelled {
		t.Errorf("status = %q, want cancelled", cancelled.Status)
	}

	gotBeef, _ := repo.IngredientByID(beef.ID)
	if !almostEqual(gotBeef.QuantityOnHand, 10) {
		t.Errorf("beef on hand = %v, want untouched 10", gotBeef.QuantityOnHand)
	}
	sales, _ := repo.SalesBetween(zeroTime(), zeroTime())
	if len(sales) != 0 {
		t.Errorf("sale records = %d, want 0", len(sales))
	}

	// Cancelled is terminal: neither ready nor a second cancel may pass.
	var invalidState *InvalidStateError
	if _, err := engine.MarkReady(order.ID); !errors.As(err, &invalidState) {
		t.Errorf("MarkReady after cancel: got %v, want InvalidStateError", err)
	}
	if _, err := engine.CancelOrder(order.ID); !errors.As(err, &invalidState) {
		t.Errorf("second cancel: got %v, want InvalidStateError", err)
	}
}

func TestCancelAfterReadyIsRejected(t *testing.T) {
	repo := newTestRepo(t)
	engine := NewEngine(repo, nil, true)
	burger, _, _ := seedBurger(t, repo, 10, 100)

	order, _ := engine.PlaceOrder([]OrderLineRequest{{MenuItemID: burger.ID, Quantity: 1}}, "")
	if _, err := engine.MarkReady(order.ID); err != nil {
		t.Fatalf("MarkReady: %v", err)
	}

	var invalidState *InvalidStateError
	if _, err := engine.CancelOrder(order.ID); !errors.As(err, &invalidState) {
		t.Errorf("got %v, want InvalidStateError", err)
	}
}

func TestStartPreparingTransitions(t *testing.T) {
	repo := newTestRepo(t)
	engine := NewEngine(repo, nil, true)
	burger, _, _ := seedBurger(t, repo, 10, 100)

	order, _ := engine.PlaceOrder([]OrderLineRequest{{MenuItemID: burger.ID, Quantity: 1}}, "")
	prep, err := engine.StartPreparing(order.ID)
	if err != nil {
		t.Fatalf("StartPreparing: %v", err)
	}
	if prep.Status != models.OrderStatusPreparing {
		t.Errorf("status = %q, want preparing", prep.Status)
	}

	// preparing -> preparing is not a transition
	var invalidState *InvalidStateError
	if _, err := engine.StartPreparing(order.ID); !errors.As(err, &invalidState) {
		t.Errorf("got %v, want InvalidStateError", err)
	}

	// preparing -> ready still works
	if _, err := engine.MarkReady(order.ID); err != nil {
		t.Errorf("MarkReady from preparing: %v", err)
	}
}

func TestRecipelessSalePolicy(t *testing.T) {
	repo := newTestRepo(t)
	soda := models.MenuItem{Name: "Soda", Price: 2.50}
	if err := repo.CreateMenuItem(&soda); err != nil {
		t.Fatalf("seed soda: %v", err)
	}

	// Allowed: sells at zero cost of goods.
	lenient := NewEngine(repo, nil, true)
	order, err := lenient.PlaceOrder([]OrderLineRequest{{MenuItemID: soda.ID, Quantity: 1}}, "")
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if _, err := lenient.MarkReady(order.ID); err != nil {
		t.Fatalf("MarkReady: %v", err)
	}
	sales, _ := repo.SalesBetween(zeroTime(), zeroTime())
	if len(sales) != 1 || !almostEqual(sales[0].CostOfGoods, 0) || !almostEqual(sales[0].Profit, 2.50) {
		t.Errorf("recipeless sale = %+v, want zero cost, full profit", sales)
	}

	// Disabled: the order is rejected before anything happens.
	strict := NewEngine(repo, nil, false)
	order2, err := strict.PlaceOrder([]OrderLineRequest{{MenuItemID: soda.ID, Quantity: 1}}, "")
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	var validation *ValidationError
	if _, err := strict.MarkReady(order2.ID); !errors.As(err, &validation) {
		t.Errorf("got %v, want ValidationError", err)
	}
}

func TestLowStockNotification(t *testing.T) {
	repo := newTestRepo(t)
	rec := &eventRecorder{}
	engine := NewEngine(repo, rec, true)

	beef := models.Ingredient{Name: "ground beef", QuantityOnHand: 0.6, Unit: "kg", CostPerUnit: 8.00, MinimumLevel: 0.5}
	if err := repo.CreateIngredient(&beef); err != nil {
		t.Fatalf("seed beef: %v", err)
	}
	burger := models.MenuItem{
		Name:   "Burger",
		Price:  12.99,
		Recipe: []models.RecipeItem{{IngredientID: beef.ID, Quantity: 0.25}},
	}
	if err := repo.CreateMenuItem(&burger); err != nil {
		t.Fatalf("seed burger: %v", err)
	}

	order, _ := engine.PlaceOrder([]OrderLineRequest{{MenuItemID: burger.ID, Quantity: 1}}, "")
	if _, err := engine.MarkReady(order.ID); err != nil {
		t.Fatalf("MarkReady: %v", err)
	}

	// 0.6 - 0.25 = 0.35, below the 0.5 minimum.
	if len(rec.lowStock) != 1 || rec.lowStock[0] != "ground beef" {
		t.Errorf("low stock events = %v, want [ground beef]", rec.lowStock)
	}
}
