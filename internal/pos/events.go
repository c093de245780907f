package pos

import (
	"log"

	"resto-pos/internal/models"
)

// Events is the push-notification collaborator. Implementations must not
// block the caller and must never return failures into the order workflow:
// a lost notification is a logging problem, not a sale problem.
type Events interface {
	OrderPlaced(order *models.KitchenOrder)
	OrderReady(order *models.KitchenOrder)
	LowStock(ing models.Ingredient)
}

// LogEvents is the fallback collaborator used when no broker is configured.
type LogEvents struct{}

func (LogEvents) OrderPlaced(order *models.KitchenOrder) {
	log.Printf("event: order %d placed, total %.2f", order.ID, order.TotalAmount)
}

func (LogEvents) OrderReady(order *models.KitchenOrder) {
	log.Printf("event: order %d ready", order.ID)
}

func (LogEvents) LowStock(ing models.Ingredient) {
	log.Printf("event: LOW STOCK %s at %g %s (minimum %g)",
		ing.Name, ing.QuantityOnHand, ing.Unit, ing.MinimumLevel)
}
