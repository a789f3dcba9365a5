package handler

import (
	"net/http"

	"github.com/vfg2006/campaign-ledger-api/internal/api/handler/router"
	"github.com/vfg2006/campaign-ledger-api/internal/usecases/dispatching"
)

// Actions expõe o endpoint único do dispatcher: POST despacha uma action,
// GET descreve o serviço. O preflight OPTIONS é respondido pelo middleware
// de CORS, sem lógica de negócio.
func Actions(service dispatching.Dispatcher) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/actions",
			Method:  http.MethodPost,
			Handler: DispatchAction(service),
		},
		{
			Path:    "/v1/actions",
			Method:  http.MethodGet,
			Handler: DescribeService(service),
		},
	}
}

// Healthcheck é um alias simples do describe
func Healthcheck(service dispatching.Dispatcher) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: DescribeService(service),
		},
	}
}
