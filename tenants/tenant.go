package tenants

// SubscriptionTier gates which intelligence features a tenant can use.
type SubscriptionTier string

const (
	TierStarter      SubscriptionTier = "starter"
	TierProfessional SubscriptionTier = "professional"
	TierEnterprise   SubscriptionTier = "enterprise"
)

// Tenant is the organisational account a user belongs to.
type Tenant struct {
	ID               string           `json:"id,omitempty"`
	Name             string           `json:"name,omitempty"`
	SubscriptionTier SubscriptionTier `json:"subscription_tier,omitempty"`
	Settings         map[string]any   `json:"settings,omitempty"`
}

// MonitoringLimit is how many companies the tier may monitor. Zero means unlimited.
func (t *Tenant) MonitoringLimit() int {
	if t == nil {
		return 0
	}
	switch t.SubscriptionTier {
	case TierStarter:
		return 10
	case TierProfessional:
		return 100
	default:
		return 0
	}
}
