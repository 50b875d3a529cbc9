package fakeapi

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jrsteele09/go-ukci-client/crm"
	"github.com/rs/zerolog/log"
)

func (s *Server) ListContactsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contacts, err := s.repos.CRM.ListContacts(tenantFromContext(r.Context()))
		if err != nil {
			log.Err(err).Msg("Failed to list contacts")
			writeJSONError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		out := make([]crm.Contact, 0, len(contacts))
		for _, c := range contacts {
			out = append(out, *c)
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func (s *Server) CreateContactHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var contact crm.Contact
		if err := decodeJSON(r, &contact); err != nil {
			writeValidationError(w, err)
			return
		}
		contact.ID = ""
		contact.TenantID = tenantFromContext(r.Context())
		contact.CreatedAt = s.nowFunc().UTC()
		if err := contact.Validate(); err != nil {
			writeValidationError(w, err)
			return
		}
		if err := s.repos.CRM.UpsertContact(&contact); err != nil {
			writeValidationError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, contact)
	}
}

func (s *Server) UpdateContactHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := tenantFromContext(r.Context())
		existing, err := s.repos.CRM.GetContact(tenantID, mux.Vars(r)["id"])
		if err != nil {
			writeJSONError(w, http.StatusNotFound, "Contact not found")
			return
		}
		var update crm.ContactUpdate
		if err := decodeJSON(r, &update); err != nil {
			writeValidationError(w, err)
			return
		}
		updated := update.Apply(*existing)
		if err := updated.Validate(); err != nil {
			writeValidationError(w, err)
			return
		}
		if err := s.repos.CRM.UpsertContact(&updated); err != nil {
			writeValidationError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func (s *Server) DeleteContactHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.repos.CRM.DeleteContact(tenantFromContext(r.Context()), mux.Vars(r)["id"]); err != nil {
			writeJSONError(w, http.StatusNotFound, "Contact not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) ListDealsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deals, err := s.repos.CRM.ListDeals(tenantFromContext(r.Context()))
		if err != nil {
			log.Err(err).Msg("Failed to list deals")
			writeJSONError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		out := make([]crm.Deal, 0, len(deals))
		for _, d := range deals {
			out = append(out, *d)
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func (s *Server) CreateDealHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var deal crm.Deal
		if err := decodeJSON(r, &deal); err != nil {
			writeValidationError(w, err)
			return
		}
		if deal.Stage == "" {
			deal.Stage = crm.StageLead
		}
		deal.ID = ""
		deal.TenantID = tenantFromContext(r.Context())
		deal.UpdatedAt = s.nowFunc().UTC()
		if err := deal.Validate(); err != nil {
			writeValidationError(w, err)
			return
		}
		if err := s.repos.CRM.UpsertDeal(&deal); err != nil {
			writeValidationError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, deal)
	}
}

func (s *Server) UpdateDealStageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deal, err := s.repos.CRM.GetDeal(tenantFromContext(r.Context()), mux.Vars(r)["id"])
		if err != nil {
			writeJSONError(w, http.StatusNotFound, "Deal not found")
			return
		}
		var update crm.StageUpdate
		if err := decodeJSON(r, &update); err != nil {
			writeValidationError(w, err)
			return
		}
		deal.Stage = update.Stage
		deal.UpdatedAt = s.nowFunc().UTC()
		if err := deal.Validate(); err != nil {
			writeValidationError(w, err)
			return
		}
		if err := s.repos.CRM.UpsertDeal(deal); err != nil {
			writeValidationError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, deal)
	}
}

func (s *Server) ListCampaignsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		campaigns, err := s.repos.CRM.ListCampaigns(tenantFromContext(r.Context()))
		if err != nil {
			log.Err(err).Msg("Failed to list campaigns")
			writeJSONError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		out := make([]crm.Campaign, 0, len(campaigns))
		for _, c := range campaigns {
			out = append(out, *c)
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func (s *Server) SendCampaignHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		campaign, err := s.repos.CRM.GetCampaign(tenantFromContext(r.Context()), mux.Vars(r)["id"])
		if err != nil {
			writeJSONError(w, http.StatusNotFound, "Campaign not found")
			return
		}
		if err := campaign.CanSend(); err != nil {
			writeValidationError(w, err)
			return
		}
		campaign.MarkSent(s.nowFunc().UTC())
		if err := s.repos.CRM.UpsertCampaign(campaign); err != nil {
			writeValidationError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, campaign)
	}
}
