package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ishan22399/Credit-Approval-System/internal/apperrors"
	"github.com/ishan22399/Credit-Approval-System/internal/core/credit"
	"github.com/ishan22399/Credit-Approval-System/internal/core/domain"
	portsrepo "github.com/ishan22399/Credit-Approval-System/internal/core/ports/repositories"
	portssvc "github.com/ishan22399/Credit-Approval-System/internal/core/ports/services"
	"github.com/ishan22399/Credit-Approval-System/internal/dto"
	"github.com/shopspring/decimal"
)

// customerServiceImpl implements the CustomerSvcFacade interface.
type customerServiceImpl struct {
	BaseService
	customerRepo portsrepo.CustomerRepository
}

// NewCustomerService creates a new customer service.
func NewCustomerService(repo portsrepo.CustomerRepository) portssvc.CustomerSvcFacade {
	return &customerServiceImpl{customerRepo: repo}
}

var _ portssvc.CustomerSvcFacade = (*customerServiceImpl)(nil)

// RegisterCustomer creates a new customer with a derived approved limit of
// 36x monthly salary rounded to the nearest lakh, and zero initial debt.
func (s *customerServiceImpl) RegisterCustomer(ctx context.Context, req dto.RegisterCustomerRequest) (*domain.Customer, error) {
	existing, err := s.customerRepo.FindCustomerByPhone(ctx, req.PhoneNumber)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check phone number uniqueness",
			slog.String("phone_number", req.PhoneNumber))
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("customer with phone number %s already registered: %w", req.PhoneNumber, apperrors.ErrDuplicate)
	}

	now := time.Now()
	customer := domain.Customer{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		PhoneNumber:   req.PhoneNumber,
		Age:           req.Age,
		MonthlySalary: req.MonthlySalary,
		ApprovedLimit: credit.ApprovedLimit(req.MonthlySalary),
		CurrentDebt:   decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	customerID, err := s.customerRepo.SaveCustomer(ctx, customer)
	if err != nil {
		s.LogError(ctx, err, "Failed to save customer",
			slog.String("phone_number", req.PhoneNumber))
		return nil, err
	}
	customer.CustomerID = customerID

	s.LogInfo(ctx, "Customer registered successfully",
		slog.Int64("customer_id", customerID),
		slog.String("approved_limit", customer.ApprovedLimit.String()))
	return &customer, nil
}

// GetCustomerByID fetches a customer record by ID.
func (s *customerServiceImpl) GetCustomerByID(ctx context.Context, customerID int64) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find customer by ID",
				slog.Int64("customer_id", customerID))
		}
		return nil, err
	}
	return customer, nil
}
