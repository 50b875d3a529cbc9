package fakeapi

import (
	"fmt"
	"time"

	"github.com/jrsteele09/go-ukci-client/companies"
	"github.com/jrsteele09/go-ukci-client/crm"
	"github.com/jrsteele09/go-ukci-client/tenants"
	"github.com/jrsteele09/go-ukci-client/users"
	"github.com/rs/zerolog/log"
)

// Demo account created by Seed.
const (
	DemoTenantID = "demo-tenant"
	DemoEmail    = "demo@ukci.example"
	DemoPassword = "Intel2024!"
)

var seedCompanies = []companies.Company{
	{Number: "00445790", Name: "TESCO PLC", Status: companies.StatusActive, Type: "plc", SICCodes: []string{"47110"},
		Address: companies.Address{Line1: "Tesco House, Shire Park", Locality: "Welwyn Garden City", Postcode: "AL7 1GA"}, RiskScore: 12},
	{Number: "00048839", Name: "BARCLAYS PLC", Status: companies.StatusActive, Type: "plc", SICCodes: []string{"64191"},
		Address: companies.Address{Line1: "1 Churchill Place", Locality: "London", Postcode: "E14 5HP"}, RiskScore: 18},
	{Number: "00102498", Name: "BP P.L.C.", Status: companies.StatusActive, Type: "plc", SICCodes: []string{"06100"},
		Address: companies.Address{Line1: "1 St James's Square", Locality: "London", Postcode: "SW1Y 4PD"}, RiskScore: 25},
	{Number: "01833679", Name: "VODAFONE GROUP PUBLIC LIMITED COMPANY", Status: companies.StatusActive, Type: "plc", SICCodes: []string{"61900"},
		Address: companies.Address{Line1: "Vodafone House, The Connection", Locality: "Newbury", Postcode: "RG14 2FN"}, RiskScore: 21},
	{Number: "00502851", Name: "GREGGS PLC", Status: companies.StatusActive, Type: "plc", SICCodes: []string{"10710"},
		Address: companies.Address{Line1: "Greggs House, Quorum Business Park", Locality: "Newcastle upon Tyne", Postcode: "NE12 8BU"}, RiskScore: 9},
	{Number: "02557590", Name: "ARM LIMITED", Status: companies.StatusActive, Type: "ltd", SICCodes: []string{"72190"},
		Address: companies.Address{Line1: "110 Fulbourn Road", Locality: "Cambridge", Postcode: "CB1 9NJ"}, RiskScore: 7},
	{Number: "03977902", Name: "THOMAS COOK GROUP PLC", Status: companies.StatusLiquidation, Type: "plc", SICCodes: []string{"79110"},
		Address: companies.Address{Line1: "Westpoint, Peterborough Business Park", Locality: "Peterborough", Postcode: "PE2 6FZ"}, RiskScore: 96},
	{Number: "00029559", Name: "WOOLWORTHS GROUP PLC", Status: companies.StatusDissolved, Type: "plc", SICCodes: []string{"47190"},
		Address: companies.Address{Line1: "Woolworth House, 242-246 Marylebone Road", Locality: "London", Postcode: "NW1 6JL"}, RiskScore: 100},
}

// Seed populates the repos with a demo tenant, user, companies and CRM
// records. Running it twice is harmless.
func (s *Server) Seed() error {
	if _, err := s.repos.Users.GetByEmail(DemoEmail); err == nil {
		return nil
	}
	now := s.nowFunc().UTC()

	tenant := &tenants.Tenant{
		ID:               DemoTenantID,
		Name:             "Northwind Analytics Ltd",
		SubscriptionTier: tenants.TierEnterprise,
		Settings:         map[string]any{"region": "GB"},
	}
	if err := s.repos.Tenants.Upsert(tenant); err != nil {
		return fmt.Errorf("failed to seed tenant: %w", err)
	}

	hash, err := users.HashPassword(DemoPassword)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}
	if err := s.repos.Users.Upsert(&users.User{
		ID:           "1",
		Email:        DemoEmail,
		PasswordHash: hash,
		FirstName:    "Alex",
		LastName:     "Morgan",
		Company:      tenant.Name,
		Role:         users.RoleManager,
		TenantID:     tenant.ID,
		DateJoined:   now.AddDate(-1, 0, 0),
	}); err != nil {
		return fmt.Errorf("failed to seed demo user: %w", err)
	}

	for i := range seedCompanies {
		company := seedCompanies[i]
		company.IncorporatedOn = time.Date(1947+i*7, time.Month(1+i), 1+i, 0, 0, 0, 0, time.UTC)
		if err := s.repos.Companies.Upsert(&company); err != nil {
			return fmt.Errorf("failed to seed company %s: %w", company.Number, err)
		}
	}

	for _, number := range []string{"00445790", "03977902"} {
		if err := s.repos.Monitoring.SetMonitored(tenant.ID, number, true); err != nil {
			return fmt.Errorf("failed to seed monitoring: %w", err)
		}
	}

	alerts := []*companies.Alert{
		{TenantID: tenant.ID, CompanyNumber: "03977902", CompanyName: "THOMAS COOK GROUP PLC", Type: companies.AlertStatusChange,
			Severity: companies.SeverityHigh, Message: "Company status changed to liquidation", CreatedAt: now.Add(-2 * time.Hour)},
		{TenantID: tenant.ID, CompanyNumber: "00445790", CompanyName: "TESCO PLC", Type: companies.AlertFiling,
			Severity: companies.SeverityLow, Message: "Annual accounts filed", CreatedAt: now.Add(-26 * time.Hour)},
		{TenantID: tenant.ID, CompanyNumber: "00445790", CompanyName: "TESCO PLC", Type: companies.AlertOfficerChange,
			Severity: companies.SeverityMedium, Message: "New director appointed", CreatedAt: now.Add(-72 * time.Hour), Read: true},
	}
	for _, alert := range alerts {
		if err := s.repos.Alerts.Add(alert); err != nil {
			return fmt.Errorf("failed to seed alert: %w", err)
		}
	}

	contact := &crm.Contact{TenantID: tenant.ID, FirstName: "Priya", LastName: "Shah", Email: "priya.shah@example.co.uk",
		JobTitle: "Procurement Lead", CompanyNumber: "00445790", CreatedAt: now.AddDate(0, -2, 0)}
	if err := s.repos.CRM.UpsertContact(contact); err != nil {
		return fmt.Errorf("failed to seed contact: %w", err)
	}
	if err := s.repos.CRM.UpsertDeal(&crm.Deal{TenantID: tenant.ID, Title: "Store analytics rollout", CompanyNumber: "00445790",
		ContactID: contact.ID, ValuePence: 4_800_000, Stage: crm.StageProposal, UpdatedAt: now.AddDate(0, 0, -3)}); err != nil {
		return fmt.Errorf("failed to seed deal: %w", err)
	}
	if err := s.repos.CRM.UpsertCampaign(&crm.Campaign{TenantID: tenant.ID, Name: "Q2 retail briefing",
		Subject: "What the latest filings say about UK retail", Status: crm.CampaignDraft, Recipients: []string{contact.ID}}); err != nil {
		return fmt.Errorf("failed to seed campaign: %w", err)
	}

	log.Info().Str("email", DemoEmail).Str("tenant", tenant.Name).Msg("Mock backend seeded")
	return nil
}
