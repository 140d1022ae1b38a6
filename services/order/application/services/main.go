package services

import (
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/app"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/services/order/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Ledger   *LedgerService
	Approval *ApprovalService
}

// New wires all order application services with infrastructure from the
// Application container. stock is the inventory store of the same process.
func New(a *app.Application, stock Stock) *Services {
	orders := postgres.NewOrderRepository(a.Db, a.Outbox())
	issuances := postgres.NewIssuanceRepository(a.Db)

	return &Services{
		Ledger:   NewLedgerService(a.Db, orders, issuances, stock, a.Logger, a.Metrics),
		Approval: NewApprovalService(a.Db, orders, issuances, stock, a.Config.ApprovalLockTimeout, a.Logger, a.Metrics),
	}
}
