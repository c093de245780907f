package handlers

import (
	"net/http"

	"resto-pos/internal/models"
	"resto-pos/internal/store"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	repo store.Repository
}

func NewInventoryHandler(repo store.Repository) *InventoryHandler {
	return &InventoryHandler{repo: repo}
}

type ingredientRequest struct {
	Name           string  `json:"name" binding:"required"`
	QuantityOnHand float64 `json:"quantity_on_hand" binding:"gte=0"`
	Unit           string  `json:"unit" binding:"required"`
	CostPerUnit    float64 `json:"cost_per_unit" binding:"gte=0"`
	MinimumLevel   float64 `json:"minimum_level" binding:"gte=0"`
}

func (h *InventoryHandler) List(c *gin.Context) {
	items, err := h.repo.Ingredients()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inventory"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *InventoryHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ing, err := h.repo.IngredientByID(id)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, ing)
}

func (h *InventoryHandler) Create(c *gin.Context) {
	var input ingredientRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	ing := models.Ingredient{
		Name:           input.Name,
		QuantityOnHand: input.QuantityOnHand,
		Unit:           input.Unit,
		CostPerUnit:    input.CostPerUnit,
		MinimumLevel:   input.MinimumLevel,
	}
	if err := h.repo.CreateIngredient(&ing); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create ingredient"})
		return
	}
	c.JSON(http.StatusCreated, ing)
}

func (h *InventoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ing, err := h.repo.IngredientByID(id)
	if err != nil {
		renderError(c, err)
		return
	}

	var input ingredientRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	ing.Name = input.Name
	ing.QuantityOnHand = input.QuantityOnHand
	ing.Unit = input.Unit
	ing.CostPerUnit = input.CostPerUnit
	ing.MinimumLevel = input.MinimumLevel

	if err := h.repo.SaveIngredient(ing); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update ingredient"})
		return
	}
	c.JSON(http.StatusOK, ing)
}

func (h *InventoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.repo.DeleteIngredient(id); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ingredient deleted"})
}

type restockRequest struct {
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
}

// --- POST: Stock-in a delivery ---
func (h *InventoryHandler) Restock(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input restockRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	var ing *models.Ingredient
	err := h.repo.Transaction(func(tx store.Repository) error {
		var err error
		ing, err = tx.IngredientForUpdate(id)
		if err != nil {
			return err
		}
		ing.QuantityOnHand += input.Quantity
		return tx.SaveIngredient(ing)
	})
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, ing)
}
