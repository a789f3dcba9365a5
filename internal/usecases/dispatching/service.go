// Package dispatching implementa o roteador de actions: normaliza os
// parâmetros, valida os campos obrigatórios e delega a persistência ao
// banco externo, devolvendo um envelope uniforme de sucesso/erro.
package dispatching

import (
	"context"
	"sort"
	"time"

	"github.com/vfg2006/campaign-ledger-api/infrastructure/repository"
	"github.com/vfg2006/campaign-ledger-api/internal/config"
	"github.com/vfg2006/campaign-ledger-api/internal/domain"
	"github.com/vfg2006/campaign-ledger-api/pkg/log"
	"github.com/vfg2006/campaign-ledger-api/pkg/utils"
)

const protocolName = "mcp"

// HandlerFunc é a assinatura de um handler de action
type HandlerFunc func(ctx context.Context, params Params) (any, error)

// Dispatcher é a interface consumida pela camada HTTP
type Dispatcher interface {
	Dispatch(ctx context.Context, action string, params Params) (any, error)
	Describe() domain.ServiceDescription
}

type Service struct {
	campaigns repository.CampaignRepository
	events    repository.EventRepository
	metrics   repository.MetricRepository
	patterns  repository.PatternRepository
	assets    repository.AssetRepository

	serviceName    string
	serviceVersion string

	core     map[string]HandlerFunc
	extended map[string]HandlerFunc
}

// Option configura extensões do dispatcher na construção
type Option func(*Service)

// WithExtendedAction registra uma action específica do deployment.
// O conjunto estendido é por instância: nada de estado global mutável.
func WithExtendedAction(name string, handler HandlerFunc) Option {
	return func(s *Service) {
		s.extended[name] = handler
	}
}

func NewService(
	campaignRepo repository.CampaignRepository,
	eventRepo repository.EventRepository,
	metricRepo repository.MetricRepository,
	patternRepo repository.PatternRepository,
	assetRepo repository.AssetRepository,
	cfg *config.Config,
	opts ...Option,
) *Service {
	s := &Service{
		campaigns:      campaignRepo,
		events:         eventRepo,
		metrics:        metricRepo,
		patterns:       patternRepo,
		assets:         assetRepo,
		serviceName:    cfg.App.ServiceName,
		serviceVersion: cfg.App.ServiceVersion,
		extended:       make(map[string]HandlerFunc),
	}

	s.core = map[string]HandlerFunc{
		"create_campaign":           s.createCampaign,
		"get_campaign":              s.getCampaign,
		"list_campaigns":            s.listCampaigns,
		"update_campaign_status":    s.updateCampaignStatus,
		"delete_campaign":           s.deleteCampaign,
		"log_agent_action":          s.logAgentAction,
		"get_campaign_events":       s.getCampaignEvents,
		"update_execution_progress": s.updateExecutionProgress,
		"store_metrics":             s.storeMetrics,
		"get_campaign_metrics":      s.getCampaignMetrics,
		"get_performance_history":   s.getPerformanceHistory,
		"store_learned_pattern":     s.storeLearnedPattern,
		"get_learned_patterns":      s.getLearnedPatterns,
		"update_learned_pattern":    s.updateLearnedPattern,
		"generate_report_data":      s.generateReportData,
		"generate_weekly_summary":   s.generateWeeklySummary,
		"attach_asset":              s.attachAsset,
		"list_campaign_assets":      s.listCampaignAssets,
		"log_external_execution":    s.logExternalExecution,
		"get_external_executions":   s.getExternalExecutions,
		"sync_external_status":      s.syncExternalStatus,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Dispatch resolve a action no registro e executa o handler até o fim.
// Cada invocação é cronometrada; o tempo é apenas observabilidade e
// nunca altera comportamento ou formato da resposta.
func (s *Service) Dispatch(ctx context.Context, action string, params Params) (any, error) {
	if action == "" {
		return nil, newMissingAction()
	}

	handler, ok := s.core[action]
	if !ok {
		handler, ok = s.extended[action]
	}
	if !ok {
		return nil, newUnknownAction(action, s.allActionNames())
	}

	if params == nil {
		params = Params{}
	}

	startTime := time.Now()
	result, err := handler(ctx, params)
	duration := time.Since(startTime)

	logger := log.ForContext(ctx).WithFields(log.Fields{
		"action":      action,
		"duration_ms": duration.Milliseconds(),
	})

	if err != nil {
		logger.WithError(err).Warn("dispatch: action failed")
		return nil, err
	}

	logger.Info("dispatch: action completed")
	return result, nil
}

// Describe retorna o metadado estático do serviço, sem efeitos colaterais
func (s *Service) Describe() domain.ServiceDescription {
	return domain.ServiceDescription{
		Service:         s.serviceName,
		Version:         s.serviceVersion,
		Protocol:        protocolName,
		CoreActions:     sortedNames(s.core),
		ExtendedActions: sortedNames(s.extended),
		Timestamp:       time.Now().UTC(),
	}
}

func (s *Service) allActionNames() []string {
	names := make([]string, 0, len(s.core)+len(s.extended))
	for name := range s.core {
		names = append(names, name)
	}
	for name := range s.extended {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedNames(handlers map[string]HandlerFunc) []string {
	names := make([]string, 0, len(handlers))
	for name := range handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// logEvent grava o evento de auditoria secundário de uma mutação.
// A trilha é best-effort: falha aqui é registrada para o operador e
// engolida, nunca desfaz nem falha a escrita primária.
func (s *Service) logEvent(ctx context.Context, action, ledgerID, eventType, agentName string, data domain.Metadata) {
	event := &domain.CampaignEvent{
		EventID:   utils.GenerateRecordID(utils.PrefixEvent),
		LedgerID:  ledgerID,
		EventType: eventType,
		AgentName: agentName,
		Data:      data,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.events.Insert(ctx, event); err != nil {
		log.ForContext(ctx).WithFields(log.Fields{
			"action":       action,
			"ledger_id":    ledgerID,
			"event_type":   eventType,
			"audit_logged": false,
		}).WithError(err).Warn("dispatch: audit event write failed")
	}
}
