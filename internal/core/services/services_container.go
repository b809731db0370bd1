package services

import (
	portsrepo "github.com/SscSPs/site_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/site_ledger_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// delivery may be nil.
func NewServiceContainer(repos portsrepo.RepositoryProvider, delivery portssvc.NotificationDelivery, opts ...Option) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The registry is the leaf every other service posts through
	container.Accounts = NewAccountRegistry(repos.LedgerRepo, repos.PurchaseRepo, repos.UserRepo, opts...)
	container.Notifications = NewNotificationDispatcher(repos.NotificationRepo, repos.UserRepo, delivery, opts...)
	container.Spend = NewSpendAuthorizer(container.Accounts, opts...)

	container.Workflow = NewVerificationWorkflow(repos, container.Accounts, container.Spend, container.Notifications, opts...)
	container.BulkImport = NewBulkImportService(repos, container.Accounts, opts...)
	container.Salary = NewSalaryScheduler(repos.UserRepo, repos.SalaryRepo, opts...)

	return container
}
