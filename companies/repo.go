package companies

type CompanyRepo interface {
	Upsert(company *Company) error
	Get(number string) (*Company, error)
	Search(query string, limit int) ([]*Company, error)
}

// MonitoringRepo tracks which companies each tenant watches.
type MonitoringRepo interface {
	SetMonitored(tenantID, number string, monitored bool) error
	IsMonitored(tenantID, number string) bool
	List(tenantID string) ([]string, error)
}

type AlertRepo interface {
	Add(alert *Alert) error
	List(tenantID string, unreadOnly bool) ([]*Alert, error)
	MarkRead(tenantID, alertID string) (*Alert, error)
}
