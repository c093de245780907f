package handlers

import (
	"net/http"
	"time"

	"resto-pos/internal/models"
	"resto-pos/internal/store"

	"github.com/gin-gonic/gin"
)

type ExpenseHandler struct {
	repo store.Repository
}

func NewExpenseHandler(repo store.Repository) *ExpenseHandler {
	return &ExpenseHandler{repo: repo}
}

type expenseRequest struct {
	Date        string  `json:"date"` // YYYY-MM-DD, defaults to today
	Category    string  `json:"category" binding:"required"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
}

func (r expenseRequest) date() (time.Time, error) {
	if r.Date == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01-02", r.Date)
}

func (h *ExpenseHandler) List(c *gin.Context) {
	expenses, err := h.repo.Expenses()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch expenses"})
		return
	}
	c.JSON(http.StatusOK, expenses)
}

func (h *ExpenseHandler) Create(c *gin.Context) {
	var input expenseRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	date, err := input.date()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	exp := models.Expense{
		ExpenseDate: date,
		Category:    input.Category,
		Description: input.Description,
		Amount:      input.Amount,
	}
	if err := h.repo.CreateExpense(&exp); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create expense"})
		return
	}
	c.JSON(http.StatusCreated, exp)
}

func (h *ExpenseHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	exp, err := h.repo.ExpenseByID(id)
	if err != nil {
		renderError(c, err)
		return
	}

	var input expenseRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	date, err := input.date()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	exp.ExpenseDate = date
	exp.Category = input.Category
	exp.Description = input.Description
	exp.Amount = input.Amount
	if err := h.repo.SaveExpense(exp); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update expense"})
		return
	}
	c.JSON(http.StatusOK, exp)
}

func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.repo.DeleteExpense(id); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted"})
}
