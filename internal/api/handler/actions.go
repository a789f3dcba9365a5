package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/campaign-ledger-api/internal/usecases/dispatching"
	"github.com/vfg2006/campaign-ledger-api/pkg/apiErrors"
	"github.com/vfg2006/campaign-ledger-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ActionRequest é o envelope de entrada do dispatcher. Params é
// decodificado de forma leniente: qualquer forma que não seja um mapa
// vira um mapa vazio, e a action ainda executa.
type ActionRequest struct {
	Action string `json:"action"`
	Params any    `json:"params"`
}

func (r ActionRequest) params() dispatching.Params {
	if m, ok := r.Params.(map[string]any); ok {
		return dispatching.Params(m)
	}
	return dispatching.Params{}
}

// SuccessEnvelope é o corpo uniforme de sucesso
type SuccessEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// DispatchAction decodifica o envelope, despacha a action e devolve o
// envelope uniforme de sucesso/erro
func DispatchAction(service dispatching.Dispatcher) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var request ActionRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			logger.WithError(err).Warn("actions: malformed request envelope")
			apiErrors.WriteFailure(w, apiErrors.ErrInvalidRequest, "invalid request body")
			return
		}

		result, err := service.Dispatch(r.Context(), request.Action, request.params())
		if err != nil {
			apiErrors.WriteFailure(w, codeForError(err), err.Error())
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(SuccessEnvelope{Success: true, Data: result}); err != nil {
			logger.WithError(err).Error("actions: failed to encode response")
		}
	})
}

// DescribeService responde o metadado estático do serviço
func DescribeService(service dispatching.Dispatcher) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(service.Describe()); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("actions: failed to encode description")
		}
	})
}

// codeForError traduz a variante do erro para o código HTTP do envelope:
// problemas de forma da requisição são 4xx, falhas internas de handler 5xx
func codeForError(err error) string {
	switch dispatching.KindOf(err) {
	case dispatching.KindInvalidRequest:
		return apiErrors.ErrInvalidRequest
	case dispatching.KindUnknownAction:
		return apiErrors.ErrUnknownAction
	case dispatching.KindMissingParameter:
		return apiErrors.ErrMissingParameter
	case dispatching.KindValidation:
		return apiErrors.ErrValidation
	case dispatching.KindStore:
		return apiErrors.ErrStoreOperation
	default:
		return apiErrors.ErrInternalServer
	}
}
