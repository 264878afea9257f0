package services

// ServiceContainer holds instances of all the application services. This is
// the main entry point for accessing service functionality and is used
// throughout the application, particularly in the handlers and the consumer.
type ServiceContainer struct {
	Group         GroupSvcFacade
	Account       AccountSvcFacade
	Journal       JournalSvcFacade
	Period        PeriodSvcFacade
	SystemAccount SystemAccountSvcFacade
	Posting       PostingSvcFacade
	Reporting     ReportingSvcFacade
}
