package middleware

import (
	"net/http"
)

// Cors aplica os cabeçalhos cross-origin. Com allow-list vazia o acesso
// é permissivo ("*"); com allow-list configurada, uma origem declarada
// que não bate recebe "null" (negação explícita).
func Cors(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			switch {
			case len(allowedOrigins) == 0:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case isOriginAllowed(origin, allowedOrigins):
				w.Header().Set("Access-Control-Allow-Origin", origin)
			default:
				w.Header().Set("Access-Control-Allow-Origin", "null")
			}

			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-Requested-With")
			w.Header().Set("Access-Control-Max-Age", "86400")

			// Preflight do navegador: sem corpo e sem lógica de negócio
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isOriginAllowed(origin string, allowedOrigins []string) bool {
	if origin == "" {
		return false
	}
	for _, allowedOrigin := range allowedOrigins {
		if origin == allowedOrigin {
			return true
		}
	}
	return false
}
