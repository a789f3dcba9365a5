package dispatching

import (
	"context"
	"time"

	"github.com/vfg2006/campaign-ledger-api/internal/domain"
	"github.com/vfg2006/campaign-ledger-api/pkg/utils"
)

var (
	assetIDKeys    = []string{"asset_id", "assetId", "external_id", "externalId"}
	assetURLKeys   = []string{"url", "asset_url", "assetUrl"}
	assetTypeKeys  = []string{"asset_type", "assetType", "type"}
	attachedByKeys = []string{"attached_by", "attachedBy", "agent_name", "agentName", "agent"}
)

func (s *Service) attachAsset(ctx context.Context, params Params) (any, error) {
	const action = "attach_asset"

	ledgerID, err := s.requireLedgerID(params, action)
	if err != nil {
		return nil, err
	}

	externalID, err := requireString(params, assetIDKeys, action, "asset_id")
	if err != nil {
		return nil, err
	}

	asset := &domain.CampaignAsset{
		AssetID:    utils.GenerateRecordID(utils.PrefixAsset),
		LedgerID:   ledgerID,
		ExternalID: externalID,
		URL:        optionalString(params, assetURLKeys),
		AssetType:  optionalString(params, assetTypeKeys),
		Channels:   NormalizeChannels(pickParam(params, channelsKeys)),
		AttachedBy: optionalString(params, attachedByKeys),
		Metadata:   NormalizeMetadata(params),
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.assets.Insert(ctx, asset); err != nil {
		return nil, newStoreError(action, err)
	}

	s.logEvent(ctx, action, ledgerID, domain.EventAssetAttached,
		s.actorName(params), domain.Metadata{
			"asset_id":   asset.AssetID,
			"asset_type": asset.AssetType,
			"channels":   asset.Channels,
		})

	return asset, nil
}

func (s *Service) listCampaignAssets(ctx context.Context, params Params) (any, error) {
	const action = "list_campaign_assets"

	ledgerID, err := s.requireLedgerID(params, action)
	if err != nil {
		return nil, err
	}

	assets, err := s.assets.ListByCampaign(ctx, ledgerID, normalizeLimit(params, defaultListLimit))
	if err != nil {
		return nil, newStoreError(action, err)
	}

	return assets, nil
}
