package services

import (
	portsrepo "github.com/corefin/gl_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/corefin/gl_ledger_app/internal/core/ports/services"
)

// Container holds all the services and manages their dependencies
type Container struct {
	Account  portssvc.AccountSvcFacade
	Entry    portssvc.EntrySvcFacade
	Reversal portssvc.ReversalSvcFacade
	Clearing portssvc.ClearingSvcFacade
	Posting  portssvc.PostingSvcFacade
}

// NewContainer creates a new service container with properly initialized dependencies
func NewContainer(repos *portsrepo.RepositoryProvider) *Container {
	container := &Container{}

	// Account service first since entry creation validates against it
	container.Account = NewAccountService(repos.AccountRepo)

	container.Entry = NewEntryService(repos.EntryRepo, container.Account, repos.SequenceRepo)
	container.Reversal = NewReversalService(repos.EntryRepo, repos.SequenceRepo)
	container.Clearing = NewClearingService(repos.EntryRepo, repos.SequenceRepo)
	container.Posting = NewPostingService(repos.AccountRepo, container.Entry)

	return container
}
