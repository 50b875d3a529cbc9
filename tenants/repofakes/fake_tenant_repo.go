package tenantrepofakes

import (
	"sync"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-ukci-client/internal/errors"
	"github.com/jrsteele09/go-ukci-client/tenants"
)

var _ tenants.Repo = (*FakeTenantRepo)(nil)

// FakeTenantRepo stores organisations by ID. Tenants without an ID get a generated one.
type FakeTenantRepo struct {
	tenants map[string]tenants.Tenant
	lock    sync.RWMutex
}

func NewFakeTenantRepo() *FakeTenantRepo {
	return &FakeTenantRepo{
		tenants: make(map[string]tenants.Tenant),
	}
}

func (tr *FakeTenantRepo) Upsert(tenant *tenants.Tenant) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()
	if tenant.ID == "" {
		tenant.ID = uuid.New().String()
	}
	tr.tenants[tenant.ID] = *tenant
	return nil
}

func (tr *FakeTenantRepo) Get(tenantID string) (*tenants.Tenant, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()
	tenant, ok := tr.tenants[tenantID]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "[FakeTenantRepo.Get] %s", tenantID)
	}
	return &tenant, nil
}
