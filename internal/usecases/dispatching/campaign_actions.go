package dispatching

import (
	"context"
	"fmt"
	"time"

	"github.com/vfg2006/campaign-ledger-api/internal/domain"
	"github.com/vfg2006/campaign-ledger-api/pkg/utils"
)

var (
	actionTypeKeys  = []string{"action_type", "actionType", "type"}
	payloadKeys     = []string{"payload", "details", "data"}
	eventTypeKeys   = []string{"event_type", "eventType", "type"}
	progressKeys    = []string{"progress_data", "progressData", "progress", "metadata", "meta"}
	toolKeys        = []string{"tool", "tool_name", "toolName", "executed_by", "executedBy"}
	externalKeys    = []string{"external_status", "externalStatus"}
	currentMetaKeys = []string{"current_metadata", "currentMetadata", "metadata", "meta"}
)

func (s *Service) createCampaign(ctx context.Context, params Params) (any, error) {
	const action = "create_campaign"

	projectName, err := requireString(params, projectNameKeys, action, "project_name")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	campaign := &domain.Campaign{
		LedgerID:    utils.GenerateLedgerID(),
		ProjectName: projectName,
		BriefRef:    optionalString(params, briefRefKeys),
		Status:      NormalizeStatus(pickParam(params, statusKeys), domain.StatusIntake),
		OwnerName:   optionalString(params, ownerNameKeys),
		OwnerEmail:  optionalString(params, ownerEmailKeys),
		Channels:    NormalizeChannels(pickParam(params, channelsKeys)),
		Metadata:    NormalizeMetadata(params),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.campaigns.Insert(ctx, campaign); err != nil {
		return nil, newStoreError(action, err)
	}

	s.logEvent(ctx, action, campaign.LedgerID, domain.EventCampaignCreated,
		s.actorName(params), domain.Metadata{
			"project_name": campaign.ProjectName,
			"status":       campaign.Status,
			"channels":     campaign.Channels,
		})

	return campaign, nil
}

func (s *Service) getCampaign(ctx context.Context, params Params) (any, error) {
	const action = "get_campaign"

	ledgerID, err := s.requireLedgerID(params, action)
	if err != nil {
		return nil, err
	}

	campaign, err := s.campaigns.GetByLedgerID(ctx, ledgerID)
	if err != nil {
		return nil, newStoreError(action, err)
	}
	if campaign == nil {
		return nil, newValidation(action, "ledger_id", fmt.Sprintf("campaign %q not found", ledgerID))
	}

	return campaign, nil
}

func (s *Service) listCampaigns(ctx context.Context, params Params) (any, error) {
	const action = "list_campaigns"

	// Filtro de status opcional; valor não reconhecido vira "sem filtro"
	status := NormalizeStatus(pickParam(params, statusKeys), "")
	limit := normalizeLimit(params, defaultListLimit)

	campaigns, err := s.campaigns.List(ctx, status, limit)
	if err != nil {
		return nil, newStoreError(action, err)
	}

	return campaigns, nil
}

func (s *Service) updateCampaignStatus(ctx context.Context, params Params) (any, error) {
	const action = "update_campaign_status"

	ledgerID, err := s.requireLedgerID(params, action)
	if err != nil {
		return nil, err
	}

	rawStatus := pickParam(params, statusKeys)
	if rawStatus == nil {
		return nil, newMissingParameter(action, "status")
	}

	// Sem default aqui: status inválido falha a chamada
	status, err := normalizeStatusStrict(action, rawStatus)
	if err != nil {
		return nil, err
	}

	campaign, err := s.campaigns.GetByLedgerID(ctx, ledgerID)
	if err != nil {
		return nil, newStoreError(action, err)
	}
	if campaign == nil {
		return nil, newValidation(action, "ledger_id", fmt.Sprintf("campaign %q not found", ledgerID))
	}

	// Overwrite opcional: quando enviado, o mapa inteiro é substituído
	var metadata *domain.Metadata
	if raw, ok := pickParam(params, metadataKeys).(map[string]any); ok {
		md := domain.Metadata(raw)
		metadata = &md
	}

	now := time.Now().UTC()
	if err := s.campaigns.UpdateStatus(ctx, ledgerID, status, metadata, now); err != nil {
		return nil, newStoreError(action, err)
	}

	s.logEvent(ctx, action, ledgerID, domain.EventStatusChanged,
		s.actorName(params), domain.Metadata{
			"from":   campaign.Status,
			"to":     status,
			"reason": optionalString(params, reasonKeys),
		})

	return map[string]any{
		"ledger_id":  ledgerID,
		"status":     status,
		"updated_at": now,
	}, nil
}

func (s *Service) deleteCampaign(ctx context.Context, params Params) (any, error) {
	const action = "delete_campaign"

	ledgerID, err := s.requireLedgerID(params, action)
	if err != nil {
		return nil, err
	}

	// Dependentes caem via cascade na integridade referencial do banco
	if err := s.campaigns.Delete(ctx, ledgerID); err != nil {
		return nil, newStoreError(action, err)
	}

	return map[string]any{
		"ledger_id": ledgerID,
		"deleted":   true,
	}, nil
}

func (s *Service) logAgentAction(ctx context.Context, params Params) (any, error) {
	const action = "log_agent_action"

	ledgerID, err := s.requireLedgerID(params, action)
	if err != nil {
		return nil, err
	}

	actionType, err := requireString(params, actionTypeKeys, action, "action_type")
	if err != nil {
		return nil, err
	}

	agentName, err := requireString(params, agentNameKeys, action, "agent_name")
	if err != nil {
		return nil, err
	}

	// Aqui o evento é a escrita primária: falha propaga ao chamador
	event := &domain.CampaignEvent{
		EventID:   utils.GenerateRecordID(utils.PrefixEvent),
		LedgerID:  ledgerID,
		EventType: actionType,
		AgentName: agentName,
		Data:      domain.CoerceMetadata(pickParam(params, payloadKeys)),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.events.Insert(ctx, event); err != nil {
		return nil, newStoreError(action, err)
	}

	return event, nil
}

func (s *Service) getCampaignEvents(ctx context.Context, params Params) (any, error) {
	const action = "get_campaign_events"

	ledgerID, err := s.requireLedgerID(params, action)
	if err != nil {
		return nil, err
	}

	events, err := s.events.List(ctx, domain.EventFilter{
		LedgerID:  ledgerID,
		EventType: optionalString(params, eventTypeKeys),
		Limit:     normalizeLimit(params, defaultListLimit),
	})
	if err != nil {
		return nil, newStoreError(action, err)
	}

	return events, nil
}

// updateExecutionProgress sobrescreve o metadata inteiro da campanha com
// os dados de progresso enviados (substituição total, sem merge): o
// chamador precisa reenviar o metadata completo a cada chamada.
func (s *Service) updateExecutionProgress(ctx context.Context, params Params) (any, error) {
	const action = "update_execution_progress"

	ledgerID, err := s.requireLedgerID(params, action)
	if err != nil {
		return nil, err
	}

	progress := domain.CoerceMetadata(pickParam(params, progressKeys))

	now := time.Now().UTC()
	if err := s.campaigns.ReplaceMetadata(ctx, ledgerID, progress, now); err != nil {
		return nil, newStoreError(action, err)
	}

	s.logEvent(ctx, action, ledgerID, domain.EventProgressUpdate,
		s.actorName(params), progress)

	return map[string]any{
		"ledger_id": ledgerID,
		"metadata":  progress,
	}, nil
}

func (s *Service) logExternalExecution(ctx context.Context, params Params) (any, error) {
	const action = "log_external_execution"

	ledgerID, err := s.requireLedgerID(params, action)
	if err != nil {
		return nil, err
	}

	data := domain.CoerceMetadata(pickParam(params, payloadKeys))
	if tool := optionalString(params, toolKeys); tool != "" {
		data["tool"] = tool
	}

	// Execuções externas são registradas pelo mecanismo genérico de eventos
	event := &domain.CampaignEvent{
		EventID:   utils.GenerateRecordID(utils.PrefixEvent),
		LedgerID:  ledgerID,
		EventType: domain.EventExternalExecution,
		AgentName: s.actorName(params),
		Data:      data,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.events.Insert(ctx, event); err != nil {
		return nil, newStoreError(action, err)
	}

	return event, nil
}

func (s *Service) getExternalExecutions(ctx context.Context, params Params) (any, error) {
	const action = "get_external_executions"

	events, err := s.events.List(ctx, domain.EventFilter{
		LedgerID:  NormalizeLedgerID(params),
		EventType: domain.EventExternalExecution,
		Limit:     normalizeLimit(params, defaultListLimit),
	})
	if err != nil {
		return nil, newStoreError(action, err)
	}

	return events, nil
}

// syncExternalStatus grava o snapshot de metadata enviado pelo chamador
// acrescido do status externo e do timestamp de sync. O merge é raso e
// last-write-wins: alterações concorrentes entre a leitura do chamador
// e esta escrita são silenciosamente sobrescritas.
func (s *Service) syncExternalStatus(ctx context.Context, params Params) (any, error) {
	const action = "sync_external_status"

	ledgerID, err := s.requireLedgerID(params, action)
	if err != nil {
		return nil, err
	}

	externalStatus, err := requireString(params, externalKeys, action, "external_status")
	if err != nil {
		return nil, err
	}

	current := domain.CoerceMetadata(pickParam(params, currentMetaKeys))

	now := time.Now().UTC()
	merged := make(domain.Metadata, len(current)+2)
	for key, value := range current {
		merged[key] = value
	}
	merged["external_status"] = externalStatus
	merged["last_sync"] = now.Format(time.RFC3339)

	if err := s.campaigns.ReplaceMetadata(ctx, ledgerID, merged, now); err != nil {
		return nil, newStoreError(action, err)
	}

	s.logEvent(ctx, action, ledgerID, domain.EventExternalSync,
		s.actorName(params), domain.Metadata{
			"external_status": externalStatus,
		})

	return map[string]any{
		"ledger_id": ledgerID,
		"metadata":  merged,
	}, nil
}

// requireLedgerID resolve a identidade da campanha entre os aliases aceitos
func (s *Service) requireLedgerID(params Params, action string) (string, error) {
	ledgerID := NormalizeLedgerID(params)
	if ledgerID == "" {
		return "", newMissingParameter(action, "ledger_id")
	}
	return ledgerID, nil
}

// actorName resolve o agente da mutação; "system" quando ausente
func (s *Service) actorName(params Params) string {
	if agent := optionalString(params, agentNameKeys); agent != "" {
		return agent
	}
	return "system"
}
