package domain

import "time"

// CampaignAsset vincula um asset externo (criativo, arte, vídeo) a uma campanha
type CampaignAsset struct {
	AssetID    string    `json:"asset_id"`
	LedgerID   string    `json:"ledger_id"`
	ExternalID string    `json:"external_id"`
	URL        string    `json:"url,omitempty"`
	AssetType  string    `json:"asset_type,omitempty"`
	Channels   []string  `json:"channels"`
	AttachedBy string    `json:"attached_by,omitempty"`
	Metadata   Metadata  `json:"metadata"`
	CreatedAt  time.Time `json:"created_at"`
}
