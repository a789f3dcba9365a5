package dispatching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/campaign-ledger-api/internal/domain"
)

func TestPickParam(t *testing.T) {
	tests := []struct {
		name     string
		params   Params
		keys     []string
		expected any
	}{
		{
			name: "Primeiro alias presente vence mesmo com os demais preenchidos",
			params: Params{
				"ledger_id":   "cmp_1",
				"campaign_id": "cmp_2",
				"campaignId":  "cmp_3",
			},
			keys:     ledgerIDKeys,
			expected: "cmp_1",
		},
		{
			name: "Alias canônico ausente cai para o próximo da lista",
			params: Params{
				"campaignId": "cmp_3",
			},
			keys:     ledgerIDKeys,
			expected: "cmp_3",
		},
		{
			name: "Valor nulo é tratado como ausente",
			params: Params{
				"ledger_id":   nil,
				"campaign_id": "cmp_2",
			},
			keys:     ledgerIDKeys,
			expected: "cmp_2",
		},
		{
			name: "String vazia é tratada como ausente",
			params: Params{
				"ledger_id":   "",
				"campaign_id": "cmp_2",
			},
			keys:     ledgerIDKeys,
			expected: "cmp_2",
		},
		{
			name:     "Nenhum alias presente resolve para nil",
			params:   Params{"outro_campo": "x"},
			keys:     ledgerIDKeys,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, pickParam(tt.params, tt.keys))
		})
	}
}

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		fallback string
		expected string
	}{
		{
			name:     "Valor vazio retorna o default em silêncio",
			value:    "",
			fallback: domain.StatusIntake,
			expected: domain.StatusIntake,
		},
		{
			name:     "Alias histórico mapeia para o status canônico",
			value:    "draft",
			fallback: domain.StatusIntake,
			expected: domain.StatusContentDraft,
		},
		{
			name:     "Alias completed mapeia para complete",
			value:    "completed",
			fallback: domain.StatusIntake,
			expected: domain.StatusComplete,
		},
		{
			name:     "Status canônico passa direto",
			value:    "executing",
			fallback: domain.StatusIntake,
			expected: domain.StatusExecuting,
		},
		{
			name:     "Comparação não diferencia maiúsculas",
			value:    "LIVE",
			fallback: domain.StatusIntake,
			expected: domain.StatusExecuting,
		},
		{
			name:     "Valor não reconhecido cai no default",
			value:    "banana",
			fallback: domain.StatusIntake,
			expected: domain.StatusIntake,
		},
		{
			name:     "Default vazio vira sem filtro para listagens",
			value:    "banana",
			fallback: "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeStatus(tt.value, tt.fallback))
		})
	}
}

func TestNormalizeStatusStrict(t *testing.T) {
	t.Run("Alias histórico resolve para o canônico", func(t *testing.T) {
		status, err := normalizeStatusStrict("update_campaign_status", "ready")
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusAssetsReady, status)
	})

	t.Run("Status inválido falha com a enumeração na mensagem", func(t *testing.T) {
		_, err := normalizeStatusStrict("update_campaign_status", "banana")
		assert.Error(t, err)
		assert.Equal(t, KindValidation, KindOf(err))
		assert.Contains(t, err.Error(), domain.StatusIntake)
		assert.Contains(t, err.Error(), domain.StatusFailed)
	})
}

func TestNormalizeChannels(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected []string
	}{
		{
			name:     "Lista de strings passa limpa",
			value:    []any{"instagram", "tiktok"},
			expected: []string{"instagram", "tiktok"},
		},
		{
			name:     "String separada por vírgula é quebrada e aparada",
			value:    "instagram, tiktok , ,email",
			expected: []string{"instagram", "tiktok", "email"},
		},
		{
			name:     "Entradas vazias da lista são descartadas",
			value:    []any{"instagram", "", "  "},
			expected: []string{"instagram"},
		},
		{
			name:     "Forma não reconhecida vira lista vazia",
			value:    42.0,
			expected: []string{},
		},
		{
			name:     "Ausência vira lista vazia",
			value:    nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeChannels(tt.value))
		})
	}
}

func TestNormalizeMetadata(t *testing.T) {
	t.Run("Mapa real passa como metadata", func(t *testing.T) {
		metadata := NormalizeMetadata(Params{"metadata": map[string]any{"k": "v"}})
		assert.Equal(t, domain.Metadata{"k": "v"}, metadata)
	})

	t.Run("Alias meta também resolve", func(t *testing.T) {
		metadata := NormalizeMetadata(Params{"meta": map[string]any{"k": "v"}})
		assert.Equal(t, domain.Metadata{"k": "v"}, metadata)
	})

	t.Run("Escalar vira mapa vazio", func(t *testing.T) {
		metadata := NormalizeMetadata(Params{"metadata": "not-a-map"})
		assert.NotNil(t, metadata)
		assert.Empty(t, metadata)
	})
}

func TestNormalizeLimit(t *testing.T) {
	tests := []struct {
		name     string
		params   Params
		expected uint64
	}{
		{
			name:     "Omitido cai no default",
			params:   Params{},
			expected: defaultListLimit,
		},
		{
			name:     "Número JSON é aceito",
			params:   Params{"limit": 10.0},
			expected: 10,
		},
		{
			name:     "Alias max_results também resolve",
			params:   Params{"max_results": 25.0},
			expected: 25,
		},
		{
			name:     "Valor não positivo cai no default",
			params:   Params{"limit": -3.0},
			expected: defaultListLimit,
		},
		{
			name:     "Valor não numérico cai no default",
			params:   Params{"limit": "muitos"},
			expected: defaultListLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeLimit(tt.params, defaultListLimit))
		})
	}
}
