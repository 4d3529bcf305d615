package infra

import (
	"context"
	"encoding/json"
	"net/http"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/s21platform/skills-messenger/internal/config"
	"github.com/s21platform/skills-messenger/internal/pkg/validator"
)

// HeaderUserUUID is set by the platform gateway after it has authenticated the caller.
const HeaderUserUUID = "X-User-Uuid"

func AuthInterceptorHTTP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userUUID := r.Header.Get(HeaderUserUUID)
		if userUUID == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "failed to find uuid"})
			return
		}

		ctx := context.WithValue(r.Context(), config.KeyUUID, validator.Canonical(userUUID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func AuthInterceptorGRPC(ctx context.Context, req interface{}, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil, status.Errorf(codes.Unauthenticated, "no info in metadata")
	}

	userIDs, ok := md["uuid"]
	if !ok || len(userIDs) != 1 || userIDs[0] == "" {
		return nil, status.Errorf(codes.Unauthenticated, "failed to find uuid")
	}

	ctx = context.WithValue(ctx, config.KeyUUID, validator.Canonical(userIDs[0]))
	return handler(ctx, req)
}
