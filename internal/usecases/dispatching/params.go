package dispatching

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vfg2006/campaign-ledger-api/internal/domain"
	"github.com/vfg2006/campaign-ledger-api/pkg/log"
)

// Params é o saco de parâmetros livre recebido no envelope da requisição
type Params map[string]any

// defaultListLimit vale para todas as leituras paginadas
const defaultListLimit = 50

// Tabelas de aliases por campo lógico. Chamadores antigos usam grafias
// alternativas (campaignId vs ledger_id); a ordem declara a prioridade
// e o primeiro alias presente vence de forma determinística.
var (
	ledgerIDKeys    = []string{"ledger_id", "ledgerId", "campaign_id", "campaignId"}
	projectNameKeys = []string{"project_name", "projectName", "name"}
	briefRefKeys    = []string{"brief_ref", "briefRef", "brief"}
	statusKeys      = []string{"status", "new_status", "newStatus"}
	ownerNameKeys   = []string{"owner_name", "ownerName", "owner"}
	ownerEmailKeys  = []string{"owner_email", "ownerEmail", "email"}
	channelsKeys    = []string{"channels", "channel"}
	metadataKeys    = []string{"metadata", "meta"}
	agentNameKeys   = []string{"agent_name", "agentName", "agent"}
	reasonKeys      = []string{"reason", "status_reason", "statusReason"}
	limitKeys       = []string{"limit", "max_results", "maxResults"}
	startDateKeys   = []string{"start_date", "startDate", "from"}
	endDateKeys     = []string{"end_date", "endDate", "to"}
)

// Aliases históricos de status aceitos antes da enumeração canônica
var statusAliases = map[string]string{
	"draft":     domain.StatusContentDraft,
	"ready":     domain.StatusAssetsReady,
	"assets":    domain.StatusAssetsReady,
	"live":      domain.StatusExecuting,
	"analysis":  domain.StatusAnalyzing,
	"completed": domain.StatusComplete,
}

// pickParam retorna o valor do primeiro alias presente que não seja
// nulo nem string vazia; nil quando nenhum candidato resolve
func pickParam(params Params, keys []string) any {
	for _, key := range keys {
		value, ok := params[key]
		if !ok || value == nil {
			continue
		}
		if s, isString := value.(string); isString && s == "" {
			continue
		}
		return value
	}
	return nil
}

// stringValue converte valores escalares em string; mapas e listas viram vazio
func stringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

// requireString resolve os aliases e falha com MissingParameter quando
// nenhum deles carrega um valor utilizável
func requireString(params Params, keys []string, action, label string) (string, error) {
	value := strings.TrimSpace(stringValue(pickParam(params, keys)))
	if value == "" {
		return "", newMissingParameter(action, label)
	}
	return value, nil
}

func optionalString(params Params, keys []string) string {
	return strings.TrimSpace(stringValue(pickParam(params, keys)))
}

// NormalizeLedgerID resolve a identidade da campanha entre os aliases aceitos
func NormalizeLedgerID(params Params) string {
	return optionalString(params, ledgerIDKeys)
}

// NormalizeMetadata resolve o campo de metadata; qualquer forma que não
// seja um mapa real vira um mapa vazio
func NormalizeMetadata(params Params) domain.Metadata {
	return domain.CoerceMetadata(pickParam(params, metadataKeys))
}

// NormalizeChannels aceita lista de strings, string separada por vírgula
// ou ausência; qualquer outra forma resulta em lista vazia
func NormalizeChannels(value any) []string {
	switch v := value.(type) {
	case []string:
		return cleanChannels(v)
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, stringValue(item))
		}
		return cleanChannels(parts)
	case string:
		return cleanChannels(strings.Split(v, ","))
	default:
		return []string{}
	}
}

func cleanChannels(parts []string) []string {
	channels := make([]string, 0, len(parts))
	for _, part := range parts {
		if channel := strings.TrimSpace(part); channel != "" {
			channels = append(channels, channel)
		}
	}
	return channels
}

// NormalizeStatus casa o valor contra a tabela de aliases e depois contra
// a enumeração canônica, sem diferenciar maiúsculas. Entrada não vazia e
// não reconhecida cai no default com um diagnóstico; entrada vazia retorna
// o default em silêncio.
func NormalizeStatus(value any, fallback string) string {
	raw := strings.TrimSpace(stringValue(value))
	if raw == "" {
		return fallback
	}

	lowered := strings.ToLower(raw)
	if mapped, ok := statusAliases[lowered]; ok {
		return mapped
	}
	if domain.IsValidStatus(lowered) {
		return lowered
	}

	log.L.WithFields(log.Fields{
		"status":   raw,
		"fallback": fallback,
	}).Warn("dispatch: unrecognized status, using fallback")

	return fallback
}

// normalizeStatusStrict é a variante sem default: status não mapeável
// falha a chamada em vez de cair em um valor padrão
func normalizeStatusStrict(action string, value any) (string, error) {
	raw := strings.TrimSpace(stringValue(value))
	lowered := strings.ToLower(raw)

	if mapped, ok := statusAliases[lowered]; ok {
		return mapped, nil
	}
	if domain.IsValidStatus(lowered) {
		return lowered, nil
	}

	return "", newValidation(action, "status", fmt.Sprintf(
		"invalid status %q. Valid statuses: %s", raw, strings.Join(domain.CampaignStatuses, ", "),
	))
}

// asFloat converte os formatos numéricos que chegam via JSON
func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// isFinite rejeita NaN e infinitos
func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// normalizeLimit resolve o limite de resultados; omitido, não numérico
// ou não positivo cai no default
func normalizeLimit(params Params, defaultLimit uint64) uint64 {
	value := pickParam(params, limitKeys)
	f, ok := asFloat(value)
	if !ok || f <= 0 {
		return defaultLimit
	}
	return uint64(f)
}
