package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/walletkeeper/internal/common"
	"github.com/dmitrijs2005/walletkeeper/internal/logging"
	"github.com/dmitrijs2005/walletkeeper/internal/server/auth"
	"github.com/go-chi/chi/v5/middleware"
)

// Authenticate rejects requests without a valid bearer token and stores the
// token's principal in the request context for downstream handlers.
//
// Missing, malformed, expired and tampered tokens all get the same 401 body.
// The actual reason is only logged at debug level.
func Authenticate(verifier auth.TokenVerifier, logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token, ok := auth.BearerToken(r.Header.Get(common.AuthorizationHeaderName))
			if !ok {
				logger.Debug(ctx, "request rejected", "reason", "missing bearer token", "path", r.URL.Path)
				unauthorized(w)
				return
			}

			p, err := verifier.Verify(token)
			if err != nil {
				reason := "invalid token"
				if errors.Is(err, common.ErrTokenExpired) {
					reason = "token expired"
				}
				logger.Debug(ctx, "request rejected", "reason", reason, "path", r.URL.Path)
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(ctx, p)))
		})
	}
}

// requestLogger logs one line per request once the response is written. The
// request id is attached to the request context, so everything logged while
// serving the request carries it.
func requestLogger(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if id := middleware.GetReqID(ctx); id != "" {
				ctx = logging.ContextWith(ctx, "request_id", id)
			}

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r.WithContext(ctx))

			logger.Info(ctx, "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
			)
		})
	}
}
