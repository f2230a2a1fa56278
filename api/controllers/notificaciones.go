package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/veciplaza/veciplaza-backend/api/middleware"
	"github.com/veciplaza/veciplaza-backend/api/responses"
	"github.com/veciplaza/veciplaza-backend/api/validators"
	"github.com/veciplaza/veciplaza-backend/internal/notifications"
	"github.com/veciplaza/veciplaza-backend/pkg/enums"
	pkgerrors "github.com/veciplaza/veciplaza-backend/pkg/errors"
	"github.com/veciplaza/veciplaza-backend/pkg/logger"
)

func notificationActor(r *http.Request) (enums.ActorRole, uuid.UUID, error) {
	role, ok := middleware.RoleFromContext(r.Context())
	if !ok {
		return "", uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "actor role required")
	}
	actorID, ok := middleware.ActorIDFromContext(r.Context())
	if !ok {
		return "", uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "actor id required")
	}
	return role, actorID, nil
}

// ListNotificaciones returns the actor's inbox, newest first.
func ListNotificaciones(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role, actorID, err := notificationActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := validators.ParseCursorParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		onlyUnread, err := validators.ParseQueryBool(r, "solo_no_leidas", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), role, actorID, onlyUnread, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func CountNotificacionesNoLeidas(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role, actorID, err := notificationActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		count, err := svc.UnreadCount(r.Context(), role, actorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]int64{"no_leidas": count})
	}
}

func MarkNotificacionLeida(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role, actorID, err := notificationActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		notificacionID, err := validators.PathUUID(r, "notificacionId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.MarkRead(r.Context(), role, actorID, notificacionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "leida"})
	}
}

func MarkTodasNotificacionesLeidas(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role, actorID, err := notificationActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		count, err := svc.MarkAllRead(r.Context(), role, actorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]int64{"marcadas": count})
	}
}
