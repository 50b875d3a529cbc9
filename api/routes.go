package api

import (
	"net/url"
	"strings"
)

// REST paths relative to the configured API base URL. Patterns use gorilla/mux
// placeholders so the mock backend can register them unchanged.
const (
	// Auth Routes
	RouteLogin       = "/auth/login"
	RouteRegister    = "/auth/register"
	RouteCurrentUser = "/auth/me"

	// Company Routes
	RouteCompanySearch  = "/companies/search"
	RouteCompany        = "/companies/{number}"
	RouteCompanyMonitor = "/companies/{number}/monitor"
	RouteMonitoring     = "/monitoring"

	// Alert Routes
	RouteAlerts    = "/alerts"
	RouteAlertRead = "/alerts/{id}/read"

	// CRM Routes
	RouteContacts     = "/contacts"
	RouteContact      = "/contacts/{id}"
	RouteDeals        = "/deals"
	RouteDealStage    = "/deals/{id}/stage"
	RouteCampaigns    = "/campaigns"
	RouteCampaignSend = "/campaigns/{id}/send"
)

// expand fills {name} placeholders in route with path-escaped values, given
// as name/value pairs.
func expand(route string, pairs ...string) string {
	for i := 0; i+1 < len(pairs); i += 2 {
		route = strings.ReplaceAll(route, "{"+pairs[i]+"}", url.PathEscape(pairs[i+1]))
	}
	return route
}
