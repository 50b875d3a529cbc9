// Package companies holds the Companies House style records the platform
// searches, monitors and raises alerts on.
package companies

import (
	"strings"
	"time"
)

type Status string

const (
	StatusActive      Status = "active"
	StatusDissolved   Status = "dissolved"
	StatusLiquidation Status = "liquidation"
)

type Address struct {
	Line1    string `json:"line_1,omitempty"`
	Locality string `json:"locality,omitempty"`
	Postcode string `json:"postcode,omitempty"`
}

type Company struct {
	Number         string    `json:"company_number"`
	Name           string    `json:"company_name"`
	Status         Status    `json:"company_status,omitempty"`
	Type           string    `json:"company_type,omitempty"` // e.g. "ltd", "plc"
	IncorporatedOn time.Time `json:"date_of_creation,omitempty"`
	SICCodes       []string  `json:"sic_codes,omitempty"`
	Address        Address   `json:"registered_office_address,omitempty"`
	RiskScore      int       `json:"risk_score,omitempty"` // 0 (low) to 100 (high)
	Monitored      bool      `json:"monitored"`
}

// Matches reports whether query appears in the company's name or number,
// ignoring case.
func (c *Company) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return false
	}
	return strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(strings.ToLower(c.Number), q)
}

type SearchResult struct {
	Query string    `json:"query"`
	Items []Company `json:"items"`
	Total int       `json:"total"`
}

// MonitoringRequest turns monitoring of one company on or off.
type MonitoringRequest struct {
	Monitored bool `json:"monitored"`
}

type AlertType string

const (
	AlertFiling        AlertType = "filing"
	AlertOfficerChange AlertType = "officer_change"
	AlertCharge        AlertType = "charge"
	AlertStatusChange  AlertType = "status_change"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Alert is a change detected on a monitored company.
type Alert struct {
	ID            string    `json:"id"`
	TenantID      string    `json:"-"`
	CompanyNumber string    `json:"company_number"`
	CompanyName   string    `json:"company_name,omitempty"`
	Type          AlertType `json:"type"`
	Severity      Severity  `json:"severity"`
	Message       string    `json:"message"`
	Read          bool      `json:"read"`
	CreatedAt     time.Time `json:"created_at"`
}
