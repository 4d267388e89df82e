package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ishan22399/Credit-Approval-System/internal/apperrors"
	portssvc "github.com/ishan22399/Credit-Approval-System/internal/core/ports/services"
	"github.com/ishan22399/Credit-Approval-System/internal/dto"
	"github.com/ishan22399/Credit-Approval-System/internal/middleware"
)

// loanHandler handles HTTP requests related to eligibility and loans.
type loanHandler struct {
	loanService portssvc.LoanSvcFacade
}

// newLoanHandler creates a new loanHandler.
func newLoanHandler(ls portssvc.LoanSvcFacade) *loanHandler {
	return &loanHandler{loanService: ls}
}

// checkEligibility godoc
// @Summary Check loan eligibility
// @Description Evaluates a loan proposal against the customer's credit score without persisting anything
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   proposal body dto.CheckEligibilityRequest true "Loan proposal"
// @Success 200 {object} dto.CheckEligibilityResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 500 {object} map[string]string "Failed to check eligibility"
// @Router /check-eligibility [post]
func (h *loanHandler) checkEligibility(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CheckEligibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CheckEligibility", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.Int64("customer_id", req.CustomerID))
	logger.Info("Received request to check eligibility",
		slog.String("loan_amount", req.LoanAmount.String()),
		slog.String("interest_rate", req.InterestRate.String()),
		slog.Int("tenure", req.Tenure))

	decision, err := h.loanService.CheckEligibility(c.Request.Context(), req.CustomerID, req.ToProposal())
	if err != nil {
		h.respondLoanError(c, logger, err, "Failed to check eligibility")
		return
	}

	logger.Info("Eligibility checked", slog.Bool("approval", decision.Approved))
	c.JSON(http.StatusOK, dto.ToCheckEligibilityResponse(req.CustomerID, req.Tenure, decision))
}

// createLoan godoc
// @Summary Apply for a loan
// @Description Evaluates a loan application and persists it when approved
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   loan body dto.CreateLoanRequest true "Loan application"
// @Success 201 {object} dto.CreateLoanResponse
// @Failure 400 {object} dto.CreateLoanResponse "Application rejected"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 409 {object} map[string]string "Customer debt changed since decision"
// @Failure 500 {object} map[string]string "Failed to create loan"
// @Router /create-loan [post]
func (h *loanHandler) createLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateLoan", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.Int64("customer_id", req.CustomerID))
	logger.Info("Received loan application",
		slog.String("loan_amount", req.LoanAmount.String()),
		slog.String("interest_rate", req.InterestRate.String()),
		slog.Int("tenure", req.Tenure))

	loan, decision, err := h.loanService.CreateLoan(c.Request.Context(), req.CustomerID, req.ToProposal())
	if err != nil {
		h.respondLoanError(c, logger, err, "Failed to create loan")
		return
	}

	if !decision.Approved {
		logger.Info("Loan application rejected", slog.String("credit_score", decision.CreditScore.String()))
		c.JSON(http.StatusBadRequest, dto.CreateLoanResponse{
			LoanID:             nil,
			CustomerID:         req.CustomerID,
			LoanApproved:       false,
			Message:            "Loan request rejected.",
			MonthlyInstallment: decision.MonthlyInstallment,
		})
		return
	}

	logger.Info("Loan created successfully", slog.Int64("loan_id", loan.LoanID))
	c.JSON(http.StatusCreated, dto.CreateLoanResponse{
		LoanID:             &loan.LoanID,
		CustomerID:         req.CustomerID,
		LoanApproved:       true,
		Message:            "Loan approved successfully.",
		MonthlyInstallment: loan.MonthlyRepayment,
	})
}

// viewLoan godoc
// @Summary View loan details
// @Description Retrieves a loan together with its owning customer
// @Tags loans
// @Produce  json
// @Param   loan_id path int true "Loan ID"
// @Success 200 {object} dto.LoanDetailResponse
// @Failure 400 {object} map[string]string "Invalid loan ID"
// @Failure 404 {object} map[string]string "Loan not found"
// @Failure 500 {object} map[string]string "Failed to retrieve loan"
// @Router /view-loan/{loan_id} [get]
func (h *loanHandler) viewLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID, err := strconv.ParseInt(c.Param("loan_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid loan ID"})
		return
	}

	logger = logger.With(slog.Int64("loan_id", loanID))
	logger.Info("Received request to view loan")

	loan, customer, err := h.loanService.GetLoanDetail(c.Request.Context(), loanID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Loan not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Loan not found."})
		} else {
			logger.Error("Failed to get loan from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve loan"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToLoanDetailResponse(loan, customer))
}

// viewLoans godoc
// @Summary View a customer's loans
// @Description Lists all loans of a customer with remaining repayments
// @Tags loans
// @Produce  json
// @Param   customer_id path int true "Customer ID"
// @Success 200 {array} dto.LoanListItemResponse
// @Failure 400 {object} map[string]string "Invalid customer ID"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 500 {object} map[string]string "Failed to list loans"
// @Router /view-loans/{customer_id} [get]
func (h *loanHandler) viewLoans(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID, err := strconv.ParseInt(c.Param("customer_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer ID"})
		return
	}

	logger = logger.With(slog.Int64("customer_id", customerID))
	logger.Info("Received request to view customer loans")

	loans, err := h.loanService.ListCustomerLoans(c.Request.Context(), customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Customer not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found."})
		} else {
			logger.Error("Failed to list loans from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list loans"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToLoanListResponse(loans))
}

// respondLoanError maps service errors on the eligibility/creation paths to
// HTTP responses.
func (h *loanHandler) respondLoanError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Customer not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found."})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Invalid loan proposal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Concurrent debt update detected", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": "Customer state changed, please retry."})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
