package handlers

import (
	"net/http"

	"resto-pos/internal/models"
	"resto-pos/internal/store"

	"github.com/gin-gonic/gin"
)

type MenuHandler struct {
	repo store.Repository
}

func NewMenuHandler(repo store.Repository) *MenuHandler {
	return &MenuHandler{repo: repo}
}

type recipeItemRequest struct {
	IngredientID uint    `json:"ingredient_id" binding:"required"`
	Quantity     float64 `json:"quantity" binding:"required,gt=0"`
}

type menuItemRequest struct {
	Name     string              `json:"name" binding:"required"`
	Price    float64             `json:"price" binding:"required,gt=0"`
	Category string              `json:"category"`
	Recipe   []recipeItemRequest `json:"recipe"`
}

func (r menuItemRequest) recipeModels() []models.RecipeItem {
	recipe := make([]models.RecipeItem, 0, len(r.Recipe))
	for _, item := range r.Recipe {
		recipe = append(recipe, models.RecipeItem{
			IngredientID: item.IngredientID,
			Quantity:     item.Quantity,
		})
	}
	return recipe
}

// --- GET: List the menu with recipes ---
func (h *MenuHandler) List(c *gin.Context) {
	items, err := h.repo.MenuItems()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch menu"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *MenuHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	item, err := h.repo.MenuItemByID(id)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// --- POST: Add a menu item (recipe optional) ---
func (h *MenuHandler) Create(c *gin.Context) {
	var input menuItemRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	item := models.MenuItem{
		Name:     input.Name,
		Price:    input.Price,
		Category: input.Category,
		Recipe:   input.recipeModels(),
	}
	if err := h.repo.CreateMenuItem(&item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create menu item"})
		return
	}
	c.JSON(http.StatusCreated, item)
}

// --- PUT: Update header fields and replace the recipe ---
// The client always sends the complete recipe; an empty list clears it.
func (h *MenuHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if _, err := h.repo.MenuItemByID(id); err != nil {
		renderError(c, err)
		return
	}

	var input menuItemRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	item := models.MenuItem{
		ID:       id,
		Name:     input.Name,
		Price:    input.Price,
		Category: input.Category,
	}
	if err := h.repo.UpdateMenuItem(&item, input.recipeModels()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update menu item"})
		return
	}

	updated, err := h.repo.MenuItemByID(id)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *MenuHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.repo.DeleteMenuItem(id); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
}
