package apiErrors

import (
	"encoding/json"
	"net/http"
)

// Códigos de erro do dispatcher
const (
	// Erros de envelope da requisição (4xx)
	ErrInvalidRequest = "REQ_001" // Envelope malformado (sem action, corpo inválido)
	ErrUnknownAction  = "REQ_002" // Action não registrada

	// Erros internos dos handlers (5xx)
	ErrMissingParameter = "ACT_001" // Parâmetro obrigatório ausente
	ErrValidation       = "ACT_002" // Campo resolvido falhou em uma checagem semântica
	ErrStoreOperation   = "STO_001" // O banco externo rejeitou ou falhou a operação
	ErrInternalServer   = "SRV_001" // Erro interno do servidor
)

// Mapeamento de códigos de erro para status HTTP.
// Problemas de forma da requisição são 400; falhas internas de handler são 500.
var httpStatusMap = map[string]int{
	ErrInvalidRequest:   http.StatusBadRequest,
	ErrUnknownAction:    http.StatusBadRequest,
	ErrMissingParameter: http.StatusInternalServerError,
	ErrValidation:       http.StatusInternalServerError,
	ErrStoreOperation:   http.StatusInternalServerError,
	ErrInternalServer:   http.StatusInternalServerError,
}

// FailureEnvelope é o corpo uniforme de falha retornado ao chamador
type FailureEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// StatusForCode resolve o status HTTP de um código de erro
func StatusForCode(code string) int {
	if status, exists := httpStatusMap[code]; exists {
		return status
	}
	return http.StatusInternalServerError
}

// WriteFailure escreve o envelope de falha padronizado na resposta HTTP
func WriteFailure(w http.ResponseWriter, code string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusForCode(code))
	_ = json.NewEncoder(w).Encode(FailureEnvelope{
		Success: false,
		Error:   message,
	})
}
