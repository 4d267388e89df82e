package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/ishan22399/Credit-Approval-System/internal/apperrors"
	"github.com/ishan22399/Credit-Approval-System/internal/core/domain"
	portsrepo "github.com/ishan22399/Credit-Approval-System/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the PostgreSQL error code for unique constraint breaches.
const uniqueViolation = "23505"

type customerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository creates a new repository for customer data.
func NewCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepository {
	return &customerRepository{pool: pool}
}

const customerColumns = `customer_id, first_name, last_name, phone_number, age, monthly_salary, approved_limit, current_debt, created_at, updated_at`

// SaveCustomer inserts a new customer and returns the sequence-generated ID.
func (r *customerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) (int64, error) {
	query := `
		INSERT INTO customers (first_name, last_name, phone_number, age, monthly_salary, approved_limit, current_debt, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING customer_id;
	`
	var customerID int64
	err := r.pool.QueryRow(ctx, query,
		customer.FirstName,
		customer.LastName,
		nullableString(customer.PhoneNumber),
		customer.Age,
		customer.MonthlySalary,
		customer.ApprovedLimit,
		customer.CurrentDebt,
		customer.CreatedAt,
		customer.UpdatedAt,
	).Scan(&customerID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, fmt.Errorf("phone number %s already registered: %w", customer.PhoneNumber, apperrors.ErrDuplicate)
		}
		return 0, fmt.Errorf("failed to save customer: %w", err)
	}
	return customerID, nil
}

// FindCustomerByID retrieves a customer by its ID.
func (r *customerRepository) FindCustomerByID(ctx context.Context, customerID int64) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1;`

	customer, err := scanCustomer(r.pool.QueryRow(ctx, query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("customer %d: %w", customerID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find customer by ID %d: %w", customerID, err)
	}
	return customer, nil
}

// FindCustomerByPhone retrieves a customer by phone number.
func (r *customerRepository) FindCustomerByPhone(ctx context.Context, phoneNumber string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE phone_number = $1;`

	customer, err := scanCustomer(r.pool.QueryRow(ctx, query, phoneNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("customer with phone %s: %w", phoneNumber, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find customer by phone: %w", err)
	}
	return customer, nil
}

// ImportCustomer inserts a customer carrying an explicit spreadsheet-supplied ID.
func (r *customerRepository) ImportCustomer(ctx context.Context, customer domain.Customer) error {
	query := `
		INSERT INTO customers (customer_id, first_name, last_name, phone_number, age, monthly_salary, approved_limit, current_debt, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		customer.CustomerID,
		customer.FirstName,
		customer.LastName,
		nullableString(customer.PhoneNumber),
		customer.Age,
		customer.MonthlySalary,
		customer.ApprovedLimit,
		customer.CurrentDebt,
		customer.CreatedAt,
		customer.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("customer %d: %w", customer.CustomerID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to import customer %d: %w", customer.CustomerID, err)
	}
	return nil
}

// scanCustomer maps one customers row to the domain model.
func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	var phone *string
	err := row.Scan(
		&c.CustomerID,
		&c.FirstName,
		&c.LastName,
		&phone,
		&c.Age,
		&c.MonthlySalary,
		&c.ApprovedLimit,
		&c.CurrentDebt,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if phone != nil {
		c.PhoneNumber = *phone
	}
	return &c, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
