package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

var errRateLimited = errors.New("too many requests, please retry later")

// NewLimiter keeps per-client counters in process memory.
func NewLimiter(requests int64, period time.Duration) *limiter.Limiter {
	return limiter.New(memory.NewStore(), limiter.Rate{
		Period: period,
		Limit:  requests,
	})
}

// RateLimit rejects callers that exceed l with 429 RATE_LIMIT_EXCEEDED. A
// failing store lets the request through.
func RateLimit(l *limiter.Limiter, logger *zerolog.Logger) restful.FilterFunction {
	return func(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
		key := l.GetIPKey(req.Request)

		lctx, err := l.Get(req.Request.Context(), key)
		if err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("rate limiter unavailable")
			chain.ProcessFilter(req, resp)
			return
		}

		resp.AddHeader("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
		resp.AddHeader("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
		resp.AddHeader("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))

		if lctx.Reached {
			logger.Warn().Str("key", key).Int64("limit", lctx.Limit).Msg("rate limit exceeded")
			HandleError(resp, errRateLimited, http.StatusTooManyRequests)
			return
		}

		chain.ProcessFilter(req, resp)
	}
}
