package crm

// Repo stores CRM records per tenant.
type Repo interface {
	ListContacts(tenantID string) ([]*Contact, error)
	GetContact(tenantID, id string) (*Contact, error)
	UpsertContact(contact *Contact) error
	DeleteContact(tenantID, id string) error

	ListDeals(tenantID string) ([]*Deal, error)
	GetDeal(tenantID, id string) (*Deal, error)
	UpsertDeal(deal *Deal) error

	ListCampaigns(tenantID string) ([]*Campaign, error)
	GetCampaign(tenantID, id string) (*Campaign, error)
	UpsertCampaign(campaign *Campaign) error
}
