package domain

import "time"

// ReportData é o agregado somente-leitura de um período
type ReportData struct {
	PeriodStart        time.Time `json:"period_start"`
	PeriodEnd          time.Time `json:"period_end"`
	CampaignsCreated   int       `json:"campaigns_created"`
	CampaignsCompleted int       `json:"campaigns_completed"`
	MetricsTracked     int       `json:"metrics_tracked"`
	PatternsLearned    int       `json:"patterns_learned"`
}

// ReportSnapshot é um agregado periódico persistido pelo agendador
type ReportSnapshot struct {
	SnapshotID  string     `json:"snapshot_id"`
	WindowLabel string     `json:"window_label"`
	Report      ReportData `json:"report"`
	GeneratedAt time.Time  `json:"generated_at"`
}

// ServiceDescription é o metadado estático retornado pela operação describe
type ServiceDescription struct {
	Service         string    `json:"service"`
	Version         string    `json:"version"`
	Protocol        string    `json:"protocol"`
	CoreActions     []string  `json:"core_actions"`
	ExtendedActions []string  `json:"extended_actions"`
	Timestamp       time.Time `json:"timestamp"`
}
