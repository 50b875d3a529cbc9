package fakeapi

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/jrsteele09/go-ukci-client/companies"
	"github.com/jrsteele09/go-ukci-client/debounce"
	"github.com/jrsteele09/go-ukci-client/tenants"
	"github.com/rs/zerolog/log"
)

// searchLimit caps how many companies one search returns.
const searchLimit = 20

const companyNotFound = "Company not found"

func (s *Server) CompanySearchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := tenantFromContext(r.Context())
		query := strings.TrimSpace(r.URL.Query().Get("q"))
		if len([]rune(query)) < debounce.DefaultMinLength {
			writeJSONError(w, http.StatusBadRequest, "Search query must be at least 2 characters")
			return
		}

		found, err := s.repos.Companies.Search(query, searchLimit)
		if err != nil {
			log.Err(err).Msg("Company search failed")
			writeJSONError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		items := make([]companies.Company, 0, len(found))
		for _, company := range found {
			company.Monitored = s.repos.Monitoring.IsMonitored(tenantID, company.Number)
			items = append(items, *company)
		}
		writeJSON(w, http.StatusOK, companies.SearchResult{Query: query, Items: items, Total: len(items)})
	}
}

func (s *Server) CompanyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		company, err := s.repos.Companies.Get(mux.Vars(r)["number"])
		if err != nil {
			writeJSONError(w, http.StatusNotFound, companyNotFound)
			return
		}
		company.Monitored = s.repos.Monitoring.IsMonitored(tenantFromContext(r.Context()), company.Number)
		writeJSON(w, http.StatusOK, company)
	}
}

func (s *Server) MonitorCompanyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := tenantFromContext(r.Context())
		var req companies.MonitoringRequest
		if err := decodeJSON(r, &req); err != nil {
			writeValidationError(w, err)
			return
		}

		company, err := s.repos.Companies.Get(mux.Vars(r)["number"])
		if err != nil {
			writeJSONError(w, http.StatusNotFound, companyNotFound)
			return
		}

		if req.Monitored && !s.repos.Monitoring.IsMonitored(tenantID, company.Number) {
			if s.monitoringLimitReached(tenantID) {
				writeJSONError(w, http.StatusForbidden, "Monitoring limit reached for your subscription")
				return
			}
		}
		if err := s.repos.Monitoring.SetMonitored(tenantID, company.Number, req.Monitored); err != nil {
			log.Err(err).Msg("Failed to update monitoring")
			writeJSONError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		company.Monitored = req.Monitored
		writeJSON(w, http.StatusOK, company)
	}
}

func (s *Server) monitoringLimitReached(tenantID string) bool {
	var tenant *tenants.Tenant
	if t, err := s.repos.Tenants.Get(tenantID); err == nil {
		tenant = t
	}
	limit := tenant.MonitoringLimit()
	if limit == 0 {
		return false
	}
	numbers, err := s.repos.Monitoring.List(tenantID)
	return err == nil && len(numbers) >= limit
}

func (s *Server) MonitoredCompaniesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		numbers, err := s.repos.Monitoring.List(tenantFromContext(r.Context()))
		if err != nil {
			log.Err(err).Msg("Failed to list monitored companies")
			writeJSONError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		out := make([]companies.Company, 0, len(numbers))
		for _, number := range numbers {
			company, err := s.repos.Companies.Get(number)
			if err != nil {
				continue
			}
			company.Monitored = true
			out = append(out, *company)
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func (s *Server) AlertsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		unreadOnly := r.URL.Query().Get("unread") == "true"
		alerts, err := s.repos.Alerts.List(tenantFromContext(r.Context()), unreadOnly)
		if err != nil {
			log.Err(err).Msg("Failed to list alerts")
			writeJSONError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		out := make([]companies.Alert, 0, len(alerts))
		for _, alert := range alerts {
			out = append(out, *alert)
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func (s *Server) MarkAlertReadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		alert, err := s.repos.Alerts.MarkRead(tenantFromContext(r.Context()), mux.Vars(r)["id"])
		if err != nil {
			writeJSONError(w, http.StatusNotFound, "Alert not found")
			return
		}
		writeJSON(w, http.StatusOK, alert)
	}
}
