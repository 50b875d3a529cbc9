package fakecompanyrepo

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-ukci-client/companies"
)

var (
	_ companies.CompanyRepo    = (*FakeCompanyRepo)(nil)
	_ companies.MonitoringRepo = (*FakeMonitoringRepo)(nil)
	_ companies.AlertRepo      = (*FakeAlertRepo)(nil)
)

type FakeCompanyRepo struct {
	companies map[string]*companies.Company
	lock      sync.RWMutex
}

func NewFakeCompanyRepo() *FakeCompanyRepo {
	return &FakeCompanyRepo{
		companies: make(map[string]*companies.Company),
	}
}

func (cr *FakeCompanyRepo) Upsert(company *companies.Company) error {
	if company.Number == "" {
		return errors.New("company number required")
	}
	cr.lock.Lock()
	defer cr.lock.Unlock()
	cr.companies[strings.ToUpper(company.Number)] = company
	return nil
}

func (cr *FakeCompanyRepo) Get(number string) (*companies.Company, error) {
	cr.lock.RLock()
	defer cr.lock.RUnlock()
	company, ok := cr.companies[strings.ToUpper(number)]
	if !ok {
		return nil, errors.New("not found")
	}
	copied := *company
	return &copied, nil
}

func (cr *FakeCompanyRepo) Search(query string, limit int) ([]*companies.Company, error) {
	cr.lock.RLock()
	defer cr.lock.RUnlock()

	matches := make([]*companies.Company, 0)
	for _, company := range cr.companies {
		if company.Matches(query) {
			copied := *company
			matches = append(matches, &copied)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Name < matches[j].Name })
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

type FakeMonitoringRepo struct {
	monitored map[string]map[string]bool // tenant id to company numbers
	lock      sync.RWMutex
}

func NewFakeMonitoringRepo() *FakeMonitoringRepo {
	return &FakeMonitoringRepo{
		monitored: make(map[string]map[string]bool),
	}
}

func (mr *FakeMonitoringRepo) SetMonitored(tenantID, number string, monitored bool) error {
	mr.lock.Lock()
	defer mr.lock.Unlock()
	numbers, ok := mr.monitored[tenantID]
	if !ok {
		numbers = make(map[string]bool)
		mr.monitored[tenantID] = numbers
	}
	if monitored {
		numbers[strings.ToUpper(number)] = true
	} else {
		delete(numbers, strings.ToUpper(number))
	}
	return nil
}

func (mr *FakeMonitoringRepo) IsMonitored(tenantID, number string) bool {
	mr.lock.RLock()
	defer mr.lock.RUnlock()
	return mr.monitored[tenantID][strings.ToUpper(number)]
}

func (mr *FakeMonitoringRepo) List(tenantID string) ([]string, error) {
	mr.lock.RLock()
	defer mr.lock.RUnlock()
	numbers := make([]string, 0, len(mr.monitored[tenantID]))
	for number := range mr.monitored[tenantID] {
		numbers = append(numbers, number)
	}
	sort.Strings(numbers)
	return numbers, nil
}

type FakeAlertRepo struct {
	alerts []*companies.Alert
	lock   sync.RWMutex
}

func NewFakeAlertRepo() *FakeAlertRepo {
	return &FakeAlertRepo{}
}

func (ar *FakeAlertRepo) Add(alert *companies.Alert) error {
	ar.lock.Lock()
	defer ar.lock.Unlock()
	if alert.ID == "" {
		alert.ID = uuid.New().String()
	}
	if alert.CreatedAt.IsZero() {
		alert.CreatedAt = time.Now().UTC()
	}
	ar.alerts = append(ar.alerts, alert)
	return nil
}

// List returns the tenant's alerts, newest first.
func (ar *FakeAlertRepo) List(tenantID string, unreadOnly bool) ([]*companies.Alert, error) {
	ar.lock.RLock()
	defer ar.lock.RUnlock()
	out := make([]*companies.Alert, 0)
	for _, alert := range ar.alerts {
		if alert.TenantID != tenantID || (unreadOnly && alert.Read) {
			continue
		}
		copied := *alert
		out = append(out, &copied)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (ar *FakeAlertRepo) MarkRead(tenantID, alertID string) (*companies.Alert, error) {
	ar.lock.Lock()
	defer ar.lock.Unlock()
	for _, alert := range ar.alerts {
		if alert.ID == alertID && alert.TenantID == tenantID {
			alert.Read = true
			copied := *alert
			return &copied, nil
		}
	}
	return nil, errors.New("not found")
}
