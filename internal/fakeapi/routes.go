package fakeapi

import (
	"net/http"

	"github.com/jrsteele09/go-ukci-client/api"
)

func (s *Server) initRoutes() {
	open := s.APIMiddleware()
	authed := s.APIMiddleware(s.RequireAuth)

	// AUTH
	s.RegisterRouteFunc(http.MethodPost, api.RouteLogin, ChainMiddleware(s.LoginHandler(), open...))
	s.RegisterRouteFunc(http.MethodPost, api.RouteRegister, ChainMiddleware(s.RegisterHandler(), open...))
	s.RegisterRouteFunc(http.MethodGet, api.RouteCurrentUser, ChainMiddleware(s.CurrentUserHandler(), authed...))

	// COMPANIES - search must be registered before the {number} pattern
	s.RegisterRouteFunc(http.MethodGet, api.RouteCompanySearch, ChainMiddleware(s.CompanySearchHandler(), authed...))
	s.RegisterRouteFunc(http.MethodGet, api.RouteCompany, ChainMiddleware(s.CompanyHandler(), authed...))
	s.RegisterRouteFunc(http.MethodPut, api.RouteCompanyMonitor, ChainMiddleware(s.MonitorCompanyHandler(), authed...))
	s.RegisterRouteFunc(http.MethodGet, api.RouteMonitoring, ChainMiddleware(s.MonitoredCompaniesHandler(), authed...))

	// ALERTS
	s.RegisterRouteFunc(http.MethodGet, api.RouteAlerts, ChainMiddleware(s.AlertsHandler(), authed...))
	s.RegisterRouteFunc(http.MethodPost, api.RouteAlertRead, ChainMiddleware(s.MarkAlertReadHandler(), authed...))

	// CRM
	s.RegisterRouteFunc(http.MethodGet, api.RouteContacts, ChainMiddleware(s.ListContactsHandler(), authed...))
	s.RegisterRouteFunc(http.MethodPost, api.RouteContacts, ChainMiddleware(s.CreateContactHandler(), authed...))
	s.RegisterRouteFunc(http.MethodPatch, api.RouteContact, ChainMiddleware(s.UpdateContactHandler(), authed...))
	s.RegisterRouteFunc(http.MethodDelete, api.RouteContact, ChainMiddleware(s.DeleteContactHandler(), authed...))
	s.RegisterRouteFunc(http.MethodGet, api.RouteDeals, ChainMiddleware(s.ListDealsHandler(), authed...))
	s.RegisterRouteFunc(http.MethodPost, api.RouteDeals, ChainMiddleware(s.CreateDealHandler(), authed...))
	s.RegisterRouteFunc(http.MethodPut, api.RouteDealStage, ChainMiddleware(s.UpdateDealStageHandler(), authed...))
	s.RegisterRouteFunc(http.MethodGet, api.RouteCampaigns, ChainMiddleware(s.ListCampaignsHandler(), authed...))
	s.RegisterRouteFunc(http.MethodPost, api.RouteCampaignSend, ChainMiddleware(s.SendCampaignHandler(), authed...))
}
