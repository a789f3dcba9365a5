package domain

import "time"

// Status canônicos do ciclo de vida de uma campanha
const (
	StatusIntake       = "intake"
	StatusAssetsReady  = "assets_ready"
	StatusContentDraft = "content_draft"
	StatusScheduled    = "scheduled"
	StatusExecuting    = "executing"
	StatusTracking     = "tracking"
	StatusAnalyzing    = "analyzing"
	StatusComplete     = "complete"
	StatusPaused       = "paused"
	StatusFailed       = "failed"
)

// CampaignStatuses lista os dez status canônicos, na ordem do ciclo de vida
var CampaignStatuses = []string{
	StatusIntake,
	StatusAssetsReady,
	StatusContentDraft,
	StatusScheduled,
	StatusExecuting,
	StatusTracking,
	StatusAnalyzing,
	StatusComplete,
	StatusPaused,
	StatusFailed,
}

// IsValidStatus verifica se o status pertence à enumeração canônica
func IsValidStatus(status string) bool {
	for _, s := range CampaignStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Campaign é a raiz do agregado: eventos, métricas e assets referenciam
// o ledger_id com delete-cascade delegado ao banco
type Campaign struct {
	LedgerID    string    `json:"ledger_id"`
	ProjectName string    `json:"project_name"`
	BriefRef    string    `json:"brief_ref,omitempty"`
	Status      string    `json:"status"`
	OwnerName   string    `json:"owner_name,omitempty"`
	OwnerEmail  string    `json:"owner_email,omitempty"`
	Channels    []string  `json:"channels"`
	Metadata    Metadata  `json:"metadata"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
