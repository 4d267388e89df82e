package services

import (
	portsrepo "github.com/ishan22399/Credit-Approval-System/internal/core/ports/repositories"
	portssvc "github.com/ishan22399/Credit-Approval-System/internal/core/ports/services"
)

// NewServiceContainer wires the repository implementations into the service
// facades consumed by route registration.
func NewServiceContainer(customerRepo portsrepo.CustomerRepository, loanRepo portsrepo.LoanRepository) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Customer: NewCustomerService(customerRepo),
		Loan:     NewLoanService(customerRepo, loanRepo),
	}
}
