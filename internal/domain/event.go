package domain

import "time"

// Tipos de evento gravados pelo próprio dispatcher
const (
	EventCampaignCreated   = "campaign_created"
	EventStatusChanged     = "status_changed"
	EventProgressUpdate    = "progress_update"
	EventMetricsStored     = "metrics_stored"
	EventAssetAttached     = "asset_attached"
	EventExternalExecution = "external_execution"
	EventExternalSync      = "external_status_synced"
)

// CampaignEvent é um registro de auditoria append-only; nunca é
// alterado ou removido diretamente pelo dispatcher
type CampaignEvent struct {
	EventID   string    `json:"event_id"`
	LedgerID  string    `json:"ledger_id"`
	EventType string    `json:"event_type"`
	AgentName string    `json:"agent_name"`
	Data      Metadata  `json:"data"`
	CreatedAt time.Time `json:"created_at"`
}

// EventFilter restringe a listagem de eventos
type EventFilter struct {
	LedgerID  string
	EventType string
	Limit     uint64
}
