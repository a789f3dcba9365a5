package domain

import "time"

// CampaignMetric é uma amostra numérica de performance de uma campanha
type CampaignMetric struct {
	MetricID     string     `json:"metric_id"`
	LedgerID     string     `json:"ledger_id"`
	MetricType   string     `json:"metric_type"`
	MetricValue  float64    `json:"metric_value"`
	Source       string     `json:"source"`
	TrackedAt    time.Time  `json:"tracked_at"`
	CampaignDate *time.Time `json:"campaign_date,omitempty"`
	Metadata     Metadata   `json:"metadata"`
}

// PerformanceHistory agrega a página de métricas retornada.
// A média cobre apenas a página retornada, não o histórico completo.
type PerformanceHistory struct {
	MetricType   string           `json:"metric_type"`
	Metrics      []CampaignMetric `json:"metrics"`
	Count        int              `json:"count"`
	AverageValue float64          `json:"average_value"`
	OldestAt     *time.Time       `json:"oldest_at,omitempty"`
	NewestAt     *time.Time       `json:"newest_at,omitempty"`
}
