package repositories

// RepositoryProvider holds all repository interfaces needed by services.
type RepositoryProvider struct {
	EntryRepo    EntryRepositoryFacade
	AccountRepo  AccountRepositoryFacade
	SequenceRepo SequenceGenerator
}
