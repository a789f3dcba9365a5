package apiErrors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusForCode(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected int
	}{
		{"Envelope malformado é 400", ErrInvalidRequest, http.StatusBadRequest},
		{"Action desconhecida é 400", ErrUnknownAction, http.StatusBadRequest},
		{"Parâmetro ausente é 500", ErrMissingParameter, http.StatusInternalServerError},
		{"Falha de validação é 500", ErrValidation, http.StatusInternalServerError},
		{"Falha de store é 500", ErrStoreOperation, http.StatusInternalServerError},
		{"Código desconhecido cai em 500", "XYZ_999", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusForCode(tt.code))
		})
	}
}

func TestWriteFailure(t *testing.T) {
	recorder := httptest.NewRecorder()

	WriteFailure(recorder, ErrUnknownAction, "unknown action \"frobnicate\"")

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":false,"error":"unknown action \"frobnicate\""}`, recorder.Body.String())
}
