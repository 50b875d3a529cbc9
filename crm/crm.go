// Package crm holds the contacts, deals and campaigns a tenant works with.
package crm

import (
	"fmt"
	"strings"
	"time"

	"github.com/jrsteele09/go-ukci-client/internal/errors"
	"github.com/jrsteele09/go-ukci-client/internal/utils"
)

type Contact struct {
	ID            string    `json:"id"`
	TenantID      string    `json:"-"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	JobTitle      string    `json:"job_title,omitempty"`
	CompanyNumber string    `json:"company_number,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func (c *Contact) Validate() error {
	if strings.TrimSpace(c.FirstName) == "" && strings.TrimSpace(c.LastName) == "" {
		return fmt.Errorf("%w: contact name is required", errors.ErrInvalidRequest)
	}
	if c.Email != "" && !strings.Contains(c.Email, "@") {
		return fmt.Errorf("%w: contact email %q is not valid", errors.ErrInvalidRequest, c.Email)
	}
	return nil
}

// ContactUpdate is a partial update; nil fields are left alone.
type ContactUpdate struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	JobTitle  *string `json:"job_title,omitempty"`
}

// Apply returns a copy of c with the non-nil fields of u applied.
func (u ContactUpdate) Apply(c Contact) Contact {
	if u.FirstName != nil {
		c.FirstName = utils.Value(u.FirstName)
	}
	if u.LastName != nil {
		c.LastName = utils.Value(u.LastName)
	}
	if u.Email != nil {
		c.Email = utils.Value(u.Email)
	}
	if u.Phone != nil {
		c.Phone = utils.Value(u.Phone)
	}
	if u.JobTitle != nil {
		c.JobTitle = utils.Value(u.JobTitle)
	}
	return c
}

type DealStage string

const (
	StageLead        DealStage = "lead"
	StageQualified   DealStage = "qualified"
	StageProposal    DealStage = "proposal"
	StageNegotiation DealStage = "negotiation"
	StageWon         DealStage = "won"
	StageLost        DealStage = "lost"
)

var stages = []DealStage{StageLead, StageQualified, StageProposal, StageNegotiation, StageWon, StageLost}

func (s DealStage) Valid() bool {
	for _, stage := range stages {
		if s == stage {
			return true
		}
	}
	return false
}

// Closed reports whether the deal has left the pipeline.
func (s DealStage) Closed() bool {
	return s == StageWon || s == StageLost
}

type Deal struct {
	ID            string    `json:"id"`
	TenantID      string    `json:"-"`
	Title         string    `json:"title"`
	CompanyNumber string    `json:"company_number,omitempty"`
	ContactID     string    `json:"contact_id,omitempty"`
	ValuePence    int64     `json:"value_pence"`
	Stage         DealStage `json:"stage"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (d *Deal) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("%w: deal title is required", errors.ErrInvalidRequest)
	}
	if d.ValuePence < 0 {
		return fmt.Errorf("%w: deal value cannot be negative", errors.ErrInvalidRequest)
	}
	if !d.Stage.Valid() {
		return fmt.Errorf("%w: unknown deal stage %q", errors.ErrInvalidRequest, d.Stage)
	}
	return nil
}

// StageUpdate moves a deal through the pipeline.
type StageUpdate struct {
	Stage DealStage `json:"stage"`
}

type CampaignStatus string

const (
	CampaignDraft     CampaignStatus = "draft"
	CampaignScheduled CampaignStatus = "scheduled"
	CampaignSent      CampaignStatus = "sent"
)

type Campaign struct {
	ID         string         `json:"id"`
	TenantID   string         `json:"-"`
	Name       string         `json:"name"`
	Subject    string         `json:"subject"`
	Status     CampaignStatus `json:"status"`
	Recipients []string       `json:"recipients,omitempty"` // contact ids
	SentAt     *time.Time     `json:"sent_at,omitempty"`
}

// CanSend reports whether the campaign may be sent now.
func (c *Campaign) CanSend() error {
	if c.Status == CampaignSent {
		return fmt.Errorf("%w: campaign %q has already been sent", errors.ErrInvalidRequest, c.Name)
	}
	if len(c.Recipients) == 0 {
		return fmt.Errorf("%w: campaign %q has no recipients", errors.ErrInvalidRequest, c.Name)
	}
	return nil
}

// MarkSent stamps the campaign as sent at t.
func (c *Campaign) MarkSent(t time.Time) {
	c.Status = CampaignSent
	c.SentAt = utils.Ptr(t)
}
