package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCors(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name           string
		allowedOrigins []string
		origin         string
		method         string
		expectedOrigin string
		expectedStatus int
	}{
		{
			name:           "Allow-list vazia é permissiva",
			allowedOrigins: nil,
			origin:         "https://painel.example.com",
			method:         http.MethodPost,
			expectedOrigin: "*",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Origem declarada na allow-list é ecoada",
			allowedOrigins: []string{"https://painel.example.com"},
			origin:         "https://painel.example.com",
			method:         http.MethodPost,
			expectedOrigin: "https://painel.example.com",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Origem fora da allow-list recebe null",
			allowedOrigins: []string{"https://painel.example.com"},
			origin:         "https://intruso.example.com",
			method:         http.MethodPost,
			expectedOrigin: "null",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Preflight responde 204 sem chegar ao handler",
			allowedOrigins: nil,
			origin:         "https://painel.example.com",
			method:         http.MethodOptions,
			expectedOrigin: "*",
			expectedStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(tt.method, "/v1/actions", nil)
			request.Header.Set("Origin", tt.origin)
			recorder := httptest.NewRecorder()

			Cors(tt.allowedOrigins)(okHandler).ServeHTTP(recorder, request)

			assert.Equal(t, tt.expectedStatus, recorder.Code)
			assert.Equal(t, tt.expectedOrigin, recorder.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "GET, POST, OPTIONS", recorder.Header().Get("Access-Control-Allow-Methods"))
			assert.NotEmpty(t, recorder.Header().Get("Access-Control-Max-Age"))

			if tt.method == http.MethodOptions {
				assert.Empty(t, recorder.Body.String())
			}
		})
	}
}
