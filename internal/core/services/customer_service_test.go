package services_test

import (
	"context"
	"testing"

	"github.com/ishan22399/Credit-Approval-System/internal/apperrors"
	"github.com/ishan22399/Credit-Approval-System/internal/core/domain"
	portssvc "github.com/ishan22399/Credit-Approval-System/internal/core/ports/services"
	"github.com/ishan22399/Credit-Approval-System/internal/core/services"
	"github.com/ishan22399/Credit-Approval-System/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockCustomerRepository is a mock type for the CustomerRepository interface
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) (int64, error) {
	args := m.Called(ctx, customer)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, customerID int64) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindCustomerByPhone(ctx context.Context, phoneNumber string) (*domain.Customer, error) {
	args := m.Called(ctx, phoneNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ImportCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

// --- Test Suite Setup ---

type CustomerServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCustomerRepository
	service  portssvc.CustomerSvcFacade
}

func (suite *CustomerServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCustomerRepository)
	suite.service = services.NewCustomerService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *CustomerServiceTestSuite) TestRegisterCustomer_Success() {
	ctx := context.Background()
	req := dto.RegisterCustomerRequest{
		FirstName:     "Aarav",
		LastName:      "Sharma",
		PhoneNumber:   "9876543210",
		Age:           32,
		MonthlySalary: decimal.NewFromInt(50000),
	}

	suite.mockRepo.On("FindCustomerByPhone", ctx, req.PhoneNumber).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveCustomer", ctx, mock.AnythingOfType("domain.Customer")).Return(int64(42), nil).Once()

	created, err := suite.service.RegisterCustomer(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal(int64(42), created.CustomerID)
	suite.Equal("Aarav Sharma", created.Name())
	// 36 x 50,000 = 1,800,000, already a whole number of lakhs.
	suite.True(created.ApprovedLimit.Equal(decimal.NewFromInt(1800000)),
		"approved limit was %s", created.ApprovedLimit)
	suite.True(created.CurrentDebt.IsZero())

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestRegisterCustomer_LimitRoundsToNearestLakh() {
	ctx := context.Background()
	req := dto.RegisterCustomerRequest{
		FirstName:     "Meera",
		LastName:      "Iyer",
		PhoneNumber:   "9876500000",
		Age:           28,
		MonthlySalary: decimal.NewFromInt(42000),
	}

	suite.mockRepo.On("FindCustomerByPhone", ctx, req.PhoneNumber).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveCustomer", ctx, mock.AnythingOfType("domain.Customer")).Return(int64(7), nil).Once()

	created, err := suite.service.RegisterCustomer(ctx, req)

	suite.Require().NoError(err)
	// 36 x 42,000 = 1,512,000 which rounds down to 15 lakh.
	suite.True(created.ApprovedLimit.Equal(decimal.NewFromInt(1500000)),
		"approved limit was %s", created.ApprovedLimit)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestRegisterCustomer_DuplicatePhone() {
	ctx := context.Background()
	req := dto.RegisterCustomerRequest{
		FirstName:     "Aarav",
		LastName:      "Sharma",
		PhoneNumber:   "9876543210",
		Age:           32,
		MonthlySalary: decimal.NewFromInt(50000),
	}
	existing := &domain.Customer{CustomerID: 1, PhoneNumber: req.PhoneNumber}

	suite.mockRepo.On("FindCustomerByPhone", ctx, req.PhoneNumber).Return(existing, nil).Once()

	created, err := suite.service.RegisterCustomer(ctx, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCustomer", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestRegisterCustomer_PhoneLookupError() {
	ctx := context.Background()
	req := dto.RegisterCustomerRequest{
		FirstName:     "Aarav",
		PhoneNumber:   "9876543210",
		Age:           32,
		MonthlySalary: decimal.NewFromInt(50000),
	}
	expectedErr := assert.AnError

	suite.mockRepo.On("FindCustomerByPhone", ctx, req.PhoneNumber).Return(nil, expectedErr).Once()

	created, err := suite.service.RegisterCustomer(ctx, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, expectedErr)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestRegisterCustomer_SaveError() {
	ctx := context.Background()
	req := dto.RegisterCustomerRequest{
		FirstName:     "Aarav",
		PhoneNumber:   "9876543210",
		Age:           32,
		MonthlySalary: decimal.NewFromInt(50000),
	}
	expectedErr := assert.AnError

	suite.mockRepo.On("FindCustomerByPhone", ctx, req.PhoneNumber).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveCustomer", ctx, mock.AnythingOfType("domain.Customer")).Return(int64(0), expectedErr).Once()

	created, err := suite.service.RegisterCustomer(ctx, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, expectedErr)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestGetCustomerByID_Success() {
	ctx := context.Background()
	expected := &domain.Customer{CustomerID: 5, FirstName: "Meera", LastName: "Iyer"}

	suite.mockRepo.On("FindCustomerByID", ctx, int64(5)).Return(expected, nil).Once()

	customer, err := suite.service.GetCustomerByID(ctx, 5)

	suite.Require().NoError(err)
	suite.Equal(expected, customer)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestGetCustomerByID_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("FindCustomerByID", ctx, int64(404)).Return(nil, apperrors.ErrNotFound).Once()

	customer, err := suite.service.GetCustomerByID(ctx, 404)

	suite.Require().Error(err)
	suite.Nil(customer)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestCustomerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CustomerServiceTestSuite))
}
