package grpc

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/walletkeeper/internal/common"
	"github.com/dmitrijs2005/walletkeeper/internal/logging"
	"github.com/dmitrijs2005/walletkeeper/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// healthServicePrefix covers every method of grpc.health.v1.Health.
const healthServicePrefix = "/grpc.health.v1.Health/"

// errUnauthenticated is returned for every rejected call, whatever the reason.
var errUnauthenticated = status.Error(codes.Unauthenticated, "unauthorized")

type authenticator struct {
	verifier auth.TokenVerifier
	logger   logging.Logger
}

// authenticate checks the bearer token in the incoming metadata and returns
// ctx with the principal attached.
func (a authenticator) authenticate(ctx context.Context, method string) (context.Context, error) {
	if strings.HasPrefix(method, healthServicePrefix) {
		return ctx, nil
	}

	var header string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(strings.ToLower(common.AuthorizationHeaderName)); len(values) > 0 {
			header = values[0]
		}
	}

	token, ok := auth.BearerToken(header)
	if !ok {
		a.logger.Debug(ctx, "call rejected", "reason", "missing bearer token", "method", method)
		return nil, errUnauthenticated
	}

	p, err := a.verifier.Verify(token)
	if err != nil {
		reason := "invalid token"
		if errors.Is(err, common.ErrTokenExpired) {
			reason = "token expired"
		}
		a.logger.Debug(ctx, "call rejected", "reason", reason, "method", method)
		return nil, errUnauthenticated
	}

	return auth.WithPrincipal(ctx, p), nil
}

// AuthInterceptor requires a valid "authorization: Bearer <token>" entry in
// the call metadata. Health-check methods are exempt.
func AuthInterceptor(verifier auth.TokenVerifier, logger logging.Logger) grpc.UnaryServerInterceptor {
	a := authenticator{verifier: verifier, logger: logger}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		ctx, err := a.authenticate(ctx, info.FullMethod)
		if err != nil {
			return nil, err
		}
		return handler(ctx, req)
	}
}

// StreamAuthInterceptor is AuthInterceptor for streaming calls.
func StreamAuthInterceptor(verifier auth.TokenVerifier, logger logging.Logger) grpc.StreamServerInterceptor {
	a := authenticator{verifier: verifier, logger: logger}
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		ctx, err := a.authenticate(ss.Context(), info.FullMethod)
		if err != nil {
			return err
		}
		return handler(srv, &authStream{ServerStream: ss, ctx: ctx})
	}
}

type authStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *authStream) Context() context.Context { return s.ctx }
