package handlers

import (
	"net/http"

	"resto-pos/internal/pos"
	"resto-pos/internal/store"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	engine *pos.Engine
	repo   store.Repository
}

func NewOrderHandler(engine *pos.Engine, repo store.Repository) *OrderHandler {
	return &OrderHandler{engine: engine, repo: repo}
}

// OrderRequest defines what the register sends us
type OrderRequest struct {
	PaymentMethod string                 `json:"payment_method"`
	Items         []pos.OrderLineRequest `json:"items" binding:"required"`
}

// --- POST: Place a new kitchen order ---
func (h *OrderHandler) Place(c *gin.Context) {
	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	order, err := h.engine.PlaceOrder(req.Items, req.PaymentMethod)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// --- GET: List orders, optionally by ?status= ---
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.repo.Orders(c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	order, err := h.repo.OrderByID(id)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// --- POST: new -> preparing ---
func (h *OrderHandler) StartPreparing(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	order, err := h.engine.StartPreparing(id)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// --- POST: mark ready; deducts stock and books the sale ---
func (h *OrderHandler) MarkReady(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	order, err := h.engine.MarkReady(id)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// --- POST: cancel; no inventory or sale side effects ---
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	order, err := h.engine.CancelOrder(id)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
