package devserver

// Route path constants
// All gateway routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes
	RouteAuthToken    = "/auth/token/"
	RouteAuthRefresh  = "/auth/token/refresh/"
	RouteAuthRegister = "/auth/register/"

	// Summary Routes
	RouteSummarizeText     = "/generate-summary/text/"
	RouteSummarizeDocument = "/generate-summary/document/"
	RouteSummaries         = "/generate-summary/summaries/"
	RouteSummary           = "/generate-summary/summaries/{id}/"
	RouteDeleteSummary     = "/generate-summary/delete-summary/{id}/"
)
