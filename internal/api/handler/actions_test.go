package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/campaign-ledger-api/internal/domain"
	"github.com/vfg2006/campaign-ledger-api/internal/usecases/dispatching"
)

// stubDispatcher devolve respostas fixas para exercitar a camada HTTP
type stubDispatcher struct {
	result any
	err    error

	lastAction string
	lastParams dispatching.Params
}

func (s *stubDispatcher) Dispatch(ctx context.Context, action string, params dispatching.Params) (any, error) {
	s.lastAction = action
	s.lastParams = params
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubDispatcher) Describe() domain.ServiceDescription {
	return domain.ServiceDescription{
		Service:     "campaign-ledger-api",
		Version:     "test",
		Protocol:    "mcp",
		CoreActions: []string{"create_campaign"},
		Timestamp:   time.Date(2025, 8, 30, 12, 0, 0, 0, time.UTC),
	}
}

func TestDispatchAction(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		dispatcher     *stubDispatcher
		expectedStatus int
		validate       func(t *testing.T, recorder *httptest.ResponseRecorder, dispatcher *stubDispatcher)
	}{
		{
			name: "Sucesso devolve envelope com success true e os dados",
			body: `{"action":"get_campaign","params":{"ledger_id":"cmp_1"}}`,
			dispatcher: &stubDispatcher{
				result: map[string]any{"ledger_id": "cmp_1"},
			},
			expectedStatus: http.StatusOK,
			validate: func(t *testing.T, recorder *httptest.ResponseRecorder, dispatcher *stubDispatcher) {
				assert.Equal(t, "get_campaign", dispatcher.lastAction)
				assert.Equal(t, "cmp_1", dispatcher.lastParams["ledger_id"])

				var envelope SuccessEnvelope
				assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
				assert.True(t, envelope.Success)
				assert.NotNil(t, envelope.Data)
			},
		},
		{
			name: "Params fora do formato de mapa viram mapa vazio e a action executa",
			body: `{"action":"get_campaign","params":"not-a-map"}`,
			dispatcher: &stubDispatcher{
				result: map[string]any{"ledger_id": "cmp_1"},
			},
			expectedStatus: http.StatusOK,
			validate: func(t *testing.T, recorder *httptest.ResponseRecorder, dispatcher *stubDispatcher) {
				assert.Equal(t, "get_campaign", dispatcher.lastAction)
				assert.NotNil(t, dispatcher.lastParams)
				assert.Empty(t, dispatcher.lastParams)
				assert.Contains(t, recorder.Body.String(), `"success":true`)
			},
		},
		{
			name: "Params ausente também vira mapa vazio",
			body: `{"action":"get_campaign"}`,
			dispatcher: &stubDispatcher{
				result: map[string]any{"ledger_id": "cmp_1"},
			},
			expectedStatus: http.StatusOK,
			validate: func(t *testing.T, recorder *httptest.ResponseRecorder, dispatcher *stubDispatcher) {
				assert.Equal(t, "get_campaign", dispatcher.lastAction)
				assert.NotNil(t, dispatcher.lastParams)
				assert.Empty(t, dispatcher.lastParams)
			},
		},
		{
			name:           "Corpo malformado devolve 400 com envelope de falha",
			body:           `{"action": not-json`,
			dispatcher:     &stubDispatcher{},
			expectedStatus: http.StatusBadRequest,
			validate: func(t *testing.T, recorder *httptest.ResponseRecorder, dispatcher *stubDispatcher) {
				// A requisição nunca chega ao dispatcher
				assert.Empty(t, dispatcher.lastAction)
				assert.Contains(t, recorder.Body.String(), `"success":false`)
				assert.Contains(t, recorder.Body.String(), "invalid request body")
			},
		},
		{
			name: "Falha interna do handler devolve 500 com envelope de falha",
			body: `{"action":"get_campaign","params":{}}`,
			dispatcher: &stubDispatcher{
				err: assert.AnError,
			},
			expectedStatus: http.StatusInternalServerError,
			validate: func(t *testing.T, recorder *httptest.ResponseRecorder, dispatcher *stubDispatcher) {
				assert.Contains(t, recorder.Body.String(), `"success":false`)
				assert.Contains(t, recorder.Body.String(), `"error"`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodPost, "/v1/actions", strings.NewReader(tt.body))
			recorder := httptest.NewRecorder()

			DispatchAction(tt.dispatcher).ServeHTTP(recorder, request)

			assert.Equal(t, tt.expectedStatus, recorder.Code)
			assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
			tt.validate(t, recorder, tt.dispatcher)
		})
	}
}

func TestDescribeService(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/v1/actions", nil)
	recorder := httptest.NewRecorder()

	DescribeService(&stubDispatcher{}).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var description domain.ServiceDescription
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &description))
	assert.Equal(t, "campaign-ledger-api", description.Service)
	assert.Equal(t, "mcp", description.Protocol)
	assert.Equal(t, []string{"create_campaign"}, description.CoreActions)
}
