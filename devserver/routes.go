package devserver

import "net/http"

// exact stops a trailing-slash route from also matching everything below it.
func exact(route string) string {
	return route + "{$}"
}

func (s *Server) initRoutes() {
	// AUTH
	s.RegisterRouteHandler("POST "+exact(RouteAuthToken), ChainMiddleware(s.TokenHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+exact(RouteAuthRefresh), ChainMiddleware(s.RefreshHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+exact(RouteAuthRegister), ChainMiddleware(s.RegisterHandler(), s.APIMiddleware()...))

	// SUMMARIES (bearer token required)
	s.RegisterRouteHandler("POST "+exact(RouteSummarizeText), ChainMiddleware(s.SummarizeTextHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("POST "+exact(RouteSummarizeDocument), ChainMiddleware(s.SummarizeDocumentHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("GET "+exact(RouteSummaries), ChainMiddleware(s.ListSummariesHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("GET "+exact(RouteSummary), ChainMiddleware(s.GetSummaryHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("DELETE "+exact(RouteDeleteSummary), ChainMiddleware(s.DeleteSummaryHandler(), s.APIMiddleware(s.RequireAuth())...))

	s.RegisterRouteFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
	})
}
