package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"console-rental-backend/internal/model"
	"console-rental-backend/internal/rental"
)

// GetCustomers handles GET /api/customers.
func GetCustomers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var customers []model.Customer
		if err := db.Order("id").Find(&customers).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve customers"})
			return
		}
		c.JSON(http.StatusOK, customers)
	}
}

// PostCustomer handles POST /api/customers.
func (h *Handler) PostCustomer(c *gin.Context) {
	var customer model.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if customer.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	if err := h.store.AddCustomer(c.Request.Context(), &customer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer"})
		return
	}
	c.JSON(http.StatusCreated, customer)
}

// PatchCustomer handles PATCH /api/customers/:customer_id as a full replace.
func (h *Handler) PatchCustomer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("customer_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer ID"})
		return
	}

	var customer model.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	customer.ID = id

	if err := h.store.UpdateCustomer(c.Request.Context(), &customer); err != nil {
		if errors.Is(err, rental.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
		return
	}
	c.JSON(http.StatusOK, customer)
}

type adjustBalanceRequest struct {
	Amount *float64 `json:"amount" binding:"required"`
}

// AdjustCustomerBalance handles POST /api/customers/:customer_id/balance.
// The amount may be negative for debits. An unknown customer is a silent
// no-op, matching the batch-friendly ledger policy.
func (h *Handler) AdjustCustomerBalance(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("customer_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer ID"})
		return
	}

	var req adjustBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.AdjustCustomerBalance(c.Request.Context(), id, *req.Amount); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to adjust balance"})
		return
	}
	c.Status(http.StatusNoContent)
}
