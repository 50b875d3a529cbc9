package fakecrmrepo

import (
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-ukci-client/crm"
)

var _ crm.Repo = (*FakeCRMRepo)(nil)

var errNotFound = errors.New("not found")

type FakeCRMRepo struct {
	contacts  map[string]*crm.Contact
	deals     map[string]*crm.Deal
	campaigns map[string]*crm.Campaign
	lock      sync.RWMutex
}

func NewFakeCRMRepo() *FakeCRMRepo {
	return &FakeCRMRepo{
		contacts:  make(map[string]*crm.Contact),
		deals:     make(map[string]*crm.Deal),
		campaigns: make(map[string]*crm.Campaign),
	}
}

func (r *FakeCRMRepo) ListContacts(tenantID string) ([]*crm.Contact, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	out := make([]*crm.Contact, 0)
	for _, c := range r.contacts {
		if c.TenantID == tenantID {
			copied := *c
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstName < out[j].FirstName
	})
	return out, nil
}

func (r *FakeCRMRepo) GetContact(tenantID, id string) (*crm.Contact, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	c, ok := r.contacts[id]
	if !ok || c.TenantID != tenantID {
		return nil, errNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *FakeCRMRepo) UpsertContact(contact *crm.Contact) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}
	copied := *contact
	r.contacts[contact.ID] = &copied
	return nil
}

func (r *FakeCRMRepo) DeleteContact(tenantID, id string) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	c, ok := r.contacts[id]
	if !ok || c.TenantID != tenantID {
		return errNotFound
	}
	delete(r.contacts, id)
	return nil
}

func (r *FakeCRMRepo) ListDeals(tenantID string) ([]*crm.Deal, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	out := make([]*crm.Deal, 0)
	for _, d := range r.deals {
		if d.TenantID == tenantID {
			copied := *d
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (r *FakeCRMRepo) GetDeal(tenantID, id string) (*crm.Deal, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	d, ok := r.deals[id]
	if !ok || d.TenantID != tenantID {
		return nil, errNotFound
	}
	copied := *d
	return &copied, nil
}

func (r *FakeCRMRepo) UpsertDeal(deal *crm.Deal) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if deal.ID == "" {
		deal.ID = uuid.New().String()
	}
	copied := *deal
	r.deals[deal.ID] = &copied
	return nil
}

func (r *FakeCRMRepo) ListCampaigns(tenantID string) ([]*crm.Campaign, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	out := make([]*crm.Campaign, 0)
	for _, c := range r.campaigns {
		if c.TenantID == tenantID {
			copied := *c
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *FakeCRMRepo) GetCampaign(tenantID, id string) (*crm.Campaign, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	c, ok := r.campaigns[id]
	if !ok || c.TenantID != tenantID {
		return nil, errNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *FakeCRMRepo) UpsertCampaign(campaign *crm.Campaign) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if campaign.ID == "" {
		campaign.ID = uuid.New().String()
	}
	copied := *campaign
	r.campaigns[campaign.ID] = &copied
	return nil
}
