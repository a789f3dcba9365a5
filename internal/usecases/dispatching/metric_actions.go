package dispatching

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/vfg2006/campaign-ledger-api/infrastructure/repository"
	"github.com/vfg2006/campaign-ledger-api/internal/domain"
	"github.com/vfg2006/campaign-ledger-api/pkg/utils"
)

var (
	metricsKeys      = []string{"metrics", "metric"}
	metricTypeKeys   = []string{"metric_type", "metricType", "type"}
	metricValueKeys  = []string{"metric_value", "metricValue", "value"}
	metricSourceKeys = []string{"source", "metric_source", "metricSource"}
	campaignDateKeys = []string{"campaign_date", "campaignDate", "date"}
)

// storeMetrics valida o lote inteiro antes de qualquer escrita: uma
// métrica inválida falha a chamada toda, sem inserção parcial
func (s *Service) storeMetrics(ctx context.Context, params Params) (any, error) {
	const action = "store_metrics"

	rawMetrics, err := metricListFromParams(params, action)
	if err != nil {
		return nil, err
	}

	// Métrica sem ledger próprio herda o ledger do lote
	batchLedgerID := NormalizeLedgerID(params)

	now := time.Now().UTC()
	metrics := make([]domain.CampaignMetric, 0, len(rawMetrics))
	typeSet := make(map[string]struct{})

	for i, raw := range rawMetrics {
		entry, ok := raw.(map[string]any)
		if !ok {
			return nil, newValidation(action, "metrics", fmt.Sprintf("metric at position %d is not an object", i))
		}
		entryParams := Params(entry)

		ledgerID := NormalizeLedgerID(entryParams)
		if ledgerID == "" {
			ledgerID = batchLedgerID
		}
		if ledgerID == "" {
			return nil, newMissingParameter(action, "ledger_id")
		}

		metricType, err := requireString(entryParams, metricTypeKeys, action, "metric_type")
		if err != nil {
			return nil, err
		}

		rawValue := pickParam(entryParams, metricValueKeys)
		if rawValue == nil {
			return nil, newMissingParameter(action, "metric_value")
		}
		value, ok := asFloat(rawValue)
		if !ok || !isFinite(value) {
			return nil, newValidation(action, "metric_value", fmt.Sprintf(
				"metric %q has a non-finite or non-numeric value", metricType,
			))
		}

		source, err := requireString(entryParams, metricSourceKeys, action, "source")
		if err != nil {
			return nil, err
		}

		campaignDate, err := utils.ParseDate(optionalString(entryParams, campaignDateKeys))
		if err != nil {
			return nil, newValidation(action, "campaign_date", fmt.Sprintf(
				"invalid campaign_date for metric %q: %s", metricType, err.Error(),
			))
		}

		typeSet[metricType] = struct{}{}
		metrics = append(metrics, domain.CampaignMetric{
			MetricID:     utils.GenerateRecordID(utils.PrefixMetric),
			LedgerID:     ledgerID,
			MetricType:   metricType,
			MetricValue:  value,
			Source:       source,
			TrackedAt:    now,
			CampaignDate: campaignDate,
			Metadata:     NormalizeMetadata(entryParams),
		})
	}

	if err := s.metrics.InsertBatch(ctx, metrics); err != nil {
		return nil, newStoreError(action, err)
	}

	metricTypes := make([]string, 0, len(typeSet))
	for metricType := range typeSet {
		metricTypes = append(metricTypes, metricType)
	}
	sort.Strings(metricTypes)

	eventLedgerID := batchLedgerID
	if eventLedgerID == "" {
		eventLedgerID = metrics[0].LedgerID
	}

	s.logEvent(ctx, action, eventLedgerID, domain.EventMetricsStored,
		s.actorName(params), domain.Metadata{
			"count":        len(metrics),
			"metric_types": metricTypes,
		})

	return map[string]any{
		"stored":       len(metrics),
		"metric_types": metricTypes,
	}, nil
}

func (s *Service) getCampaignMetrics(ctx context.Context, params Params) (any, error) {
	const action = "get_campaign_metrics"

	ledgerID, err := s.requireLedgerID(params, action)
	if err != nil {
		return nil, err
	}

	metrics, err := s.metrics.List(ctx, repository.MetricFilter{
		LedgerID:   ledgerID,
		MetricType: optionalString(params, metricTypeKeys),
		Limit:      normalizeLimit(params, defaultListLimit),
	})
	if err != nil {
		return nil, newStoreError(action, err)
	}

	return metrics, nil
}

// getPerformanceHistory calcula a média aritmética sobre a página
// retornada (da mais recente para a mais antiga), não sobre o histórico
// completo: paginar muda a média reportada, e isso é contrato.
func (s *Service) getPerformanceHistory(ctx context.Context, params Params) (any, error) {
	const action = "get_performance_history"

	metricType, err := requireString(params, metricTypeKeys, action, "metric_type")
	if err != nil {
		return nil, err
	}

	metrics, err := s.metrics.List(ctx, repository.MetricFilter{
		LedgerID:   NormalizeLedgerID(params),
		MetricType: metricType,
		Limit:      normalizeLimit(params, defaultListLimit),
	})
	if err != nil {
		return nil, newStoreError(action, err)
	}

	history := domain.PerformanceHistory{
		MetricType: metricType,
		Metrics:    metrics,
		Count:      len(metrics),
	}

	if len(metrics) > 0 {
		var sum float64
		for _, metric := range metrics {
			sum += metric.MetricValue
		}
		history.AverageValue = utils.RoundWithTwoDecimalPlace(sum / float64(len(metrics)))

		// Página ordenada da mais recente para a mais antiga
		newest := metrics[0].TrackedAt
		oldest := metrics[len(metrics)-1].TrackedAt
		history.NewestAt = &newest
		history.OldestAt = &oldest
	}

	return history, nil
}

// metricListFromParams aceita um objeto único ou uma lista de métricas
func metricListFromParams(params Params, action string) ([]any, error) {
	raw := pickParam(params, metricsKeys)
	if raw == nil {
		return nil, newMissingParameter(action, "metrics")
	}

	switch v := raw.(type) {
	case []any:
		if len(v) == 0 {
			return nil, newMissingParameter(action, "metrics")
		}
		return v, nil
	case map[string]any:
		return []any{v}, nil
	default:
		return nil, newValidation(action, "metrics", "metrics must be an object or a list of objects")
	}
}
