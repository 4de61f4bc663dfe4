package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"clinicbook/backend/internal/auth"
	"clinicbook/backend/internal/domain"
)

type TokenVerifier interface {
	Verify(token string) (domain.Caller, error)
}

// AuthInterceptor resolves the caller from "authorization: Bearer <token>"
// metadata. Methods listed in public may be called anonymously; a token
// presented to them is still verified.
func AuthInterceptor(verifier TokenVerifier, public ...string) grpc.UnaryServerInterceptor {
	open := make(map[string]struct{}, len(public))
	for _, m := range public {
		open[m] = struct{}{}
	}

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		_, isPublic := open[info.FullMethod]

		header := authorization(ctx)
		if header == "" {
			if isPublic {
				return handler(ctx, req)
			}
			return nil, status.Error(codes.Unauthenticated, "authentication required")
		}

		token, err := auth.BearerToken(header)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "authorization must be a bearer token")
		}
		caller, err := verifier.Verify(token)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}
		return handler(auth.WithCaller(ctx, caller), req)
	}
}

// RequestTimeoutInterceptor applies timeout to calls that arrive without a
// deadline.
func RequestTimeoutInterceptor(timeout time.Duration) grpc.UnaryServerInterceptor {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if _, ok := ctx.Deadline(); ok {
			return handler(ctx, req)
		}
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		return handler(ctx, req)
	}
}

func authorization(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get("authorization")
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// PublicMethods need no caller.
var PublicMethods = []string{
	ListAvailableSlotsMethod,
	healthpb.Health_Check_FullMethodName,
}
