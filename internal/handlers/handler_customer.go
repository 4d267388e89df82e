package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ishan22399/Credit-Approval-System/internal/apperrors"
	portssvc "github.com/ishan22399/Credit-Approval-System/internal/core/ports/services"
	"github.com/ishan22399/Credit-Approval-System/internal/dto"
	"github.com/ishan22399/Credit-Approval-System/internal/middleware"
)

// customerHandler handles HTTP requests related to customers.
type customerHandler struct {
	customerService portssvc.CustomerSvcFacade
}

// newCustomerHandler creates a new customerHandler.
func newCustomerHandler(cs portssvc.CustomerSvcFacade) *customerHandler {
	return &customerHandler{customerService: cs}
}

// register godoc
// @Summary Register a new customer
// @Description Creates a customer with an approved limit of 36x monthly salary rounded to the nearest lakh
// @Tags customers
// @Accept  json
// @Produce  json
// @Param   customer body dto.RegisterCustomerRequest true "Customer details"
// @Success 201 {object} dto.RegisterCustomerResponse
// @Failure 400 {object} map[string]string "Invalid input or duplicate phone number"
// @Failure 500 {object} map[string]string "Failed to register customer"
// @Router /register [post]
func (h *customerHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RegisterCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Register", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to register customer", slog.String("phone_number", req.PhoneNumber))

	customer, err := h.customerService.RegisterCustomer(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Duplicate phone number on registration", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Customer with this phone number already exists."})
		} else {
			logger.Error("Failed to register customer in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register customer"})
		}
		return
	}

	logger.Info("Customer registered successfully", slog.Int64("customer_id", customer.CustomerID))
	c.JSON(http.StatusCreated, dto.ToRegisterCustomerResponse(customer))
}
