package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// It is constructed by the storage adapter and handed to the service container.
type RepositoryProvider struct {
	AccountRepo   AccountRepositoryFacade
	JournalRepo   JournalRepositoryFacade
	ReportingRepo ReportingRepository
}
