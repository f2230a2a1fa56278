package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/veciplaza/veciplaza-backend/api/middleware"
	"github.com/veciplaza/veciplaza-backend/api/responses"
	"github.com/veciplaza/veciplaza-backend/api/validators"
	"github.com/veciplaza/veciplaza-backend/internal/settings"
	pkgerrors "github.com/veciplaza/veciplaza-backend/pkg/errors"
	"github.com/veciplaza/veciplaza-backend/pkg/logger"
)

func ListAjustes(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ajustes, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, ajustes)
	}
}

func GetAjuste(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clave := chi.URLParam(r, "clave")

		ajuste, err := svc.Get(r.Context(), clave)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, ajuste)
	}
}

type setAjusteRequest struct {
	Valor string `json:"valor" validate:"required"`
}

func SetAjuste(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		adminID, ok := middleware.ActorIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "actor id required"))
			return
		}
		clave := chi.URLParam(r, "clave")

		var req setAjusteRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ajuste, err := svc.Set(r.Context(), adminID, clave, req.Valor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, ajuste)
	}
}

// GetIAAsistente reports whether the AI shopping assistant is switched on.
func GetIAAsistente(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		enabled, err := svc.IAAsistenteEnabled(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"habilitado": enabled})
	}
}

type setIAAsistenteRequest struct {
	Habilitado *bool `json:"habilitado" validate:"required"`
}

func SetIAAsistente(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		adminID, ok := middleware.ActorIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "actor id required"))
			return
		}

		var req setIAAsistenteRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetIAAsistente(r.Context(), adminID, *req.Habilitado); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"habilitado": *req.Habilitado})
	}
}
