package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/veciplaza/veciplaza-backend/api/responses"
	"github.com/veciplaza/veciplaza-backend/pkg/enums"
	pkgerrors "github.com/veciplaza/veciplaza-backend/pkg/errors"
	"github.com/veciplaza/veciplaza-backend/pkg/logger"
)

type contextKey string

const (
	ctxActorID  contextKey = "actor_id"
	ctxRole     contextKey = "actor_role"
	ctxBodegaID contextKey = "bodega_id"
)

const (
	actorRoleHeader = "X-Actor-Role"
	actorIDHeader   = "X-Actor-Id"
	bodegaIDHeader  = "X-Bodega-Id"
)

// Actor reads the identity headers into the request context. Identity is
// header-declared: the gateway in front of the API is responsible for
// authenticating the caller before these headers reach us.
func Actor(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			rawRole := strings.TrimSpace(r.Header.Get(actorRoleHeader))
			if rawRole != "" {
				role, err := enums.ParseActorRole(rawRole)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown actor role").WithDetails(map[string]any{"role": rawRole}))
					return
				}
				ctx = context.WithValue(ctx, ctxRole, role)
				if logg != nil {
					ctx = logg.WithActorRole(ctx, role.String())
				}
			}

			if rawID := strings.TrimSpace(r.Header.Get(actorIDHeader)); rawID != "" {
				actorID, err := uuid.Parse(rawID)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "actor id must be a uuid"))
					return
				}
				ctx = context.WithValue(ctx, ctxActorID, actorID)
				if logg != nil {
					ctx = logg.WithActorID(ctx, actorID.String())
				}
			}

			if rawBodega := strings.TrimSpace(r.Header.Get(bodegaIDHeader)); rawBodega != "" {
				bodegaID, err := uuid.Parse(rawBodega)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "bodega id must be a uuid"))
					return
				}
				ctx = context.WithValue(ctx, ctxBodegaID, bodegaID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects requests whose declared role is not in the allowed set.
func RequireRole(logg *logger.Logger, allowed ...enums.ActorRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			role, ok := RoleFromContext(ctx)
			if !ok {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "actor role required"))
				return
			}
			for _, candidate := range allowed {
				if role == candidate {
					next.ServeHTTP(w, r)
					return
				}
			}
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "role not allowed for this resource"))
		})
	}
}

// RequireActorID rejects requests that did not declare an actor identifier.
func RequireActorID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := ActorIDFromContext(r.Context()); !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "actor id required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithActor injects the role and actor identifier into the context.
func WithActor(ctx context.Context, role enums.ActorRole, actorID uuid.UUID) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxRole, role)
	return context.WithValue(ctx, ctxActorID, actorID)
}

// WithBodegaID injects the bodega identifier into the context.
func WithBodegaID(ctx context.Context, bodegaID uuid.UUID) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxBodegaID, bodegaID)
}

func RoleFromContext(ctx context.Context) (enums.ActorRole, bool) {
	if ctx == nil {
		return "", false
	}
	role, ok := ctx.Value(ctxRole).(enums.ActorRole)
	return role, ok
}

func ActorIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	if ctx == nil {
		return uuid.Nil, false
	}
	id, ok := ctx.Value(ctxActorID).(uuid.UUID)
	return id, ok
}

func BodegaIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	if ctx == nil {
		return uuid.Nil, false
	}
	id, ok := ctx.Value(ctxBodegaID).(uuid.UUID)
	return id, ok
}
