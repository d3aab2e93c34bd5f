package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog/log"
)

func RecoverPanic(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Interface("panic", r).
				Str("path", req.Request.URL.Path).
				Str("request_id", RequestIDFrom(req)).
				Bytes("stack", debug.Stack()).
				Msg("Recovered from panic")

			WriteError(resp, http.StatusInternalServerError, ErrorResponse{
				Error:   CodeInternal,
				Message: "internal server error",
			})
		}
	}()

	chain.ProcessFilter(req, resp)
}
