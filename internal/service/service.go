package service

import (
	"github.com/carson-networks/ledger-server/internal/config"
	"github.com/carson-networks/ledger-server/internal/operator"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// Service holds all business logic services.
type Service struct {
	User        *UserService
	Category    *CategoryService
	Transaction *TransactionService
	Budget      *BudgetService
	Dashboard   *DashboardService
}

// NewService creates a new Service bundle on the given storage.
func NewService(store *storage.Storage, op *operator.OperatorDelegator, env *config.Config, sender OTPSender) *Service {
	dashboard := NewDashboardService(store)
	return &Service{
		User:        NewUserService(store, env, sender),
		Category:    NewCategoryService(store, op),
		Transaction: NewTransactionService(store, op),
		Budget:      NewBudgetService(store, dashboard),
		Dashboard:   dashboard,
	}
}
