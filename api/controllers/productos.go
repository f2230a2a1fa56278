package controllers

import (
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/veciplaza/veciplaza-backend/api/middleware"
	"github.com/veciplaza/veciplaza-backend/api/responses"
	"github.com/veciplaza/veciplaza-backend/api/validators"
	"github.com/veciplaza/veciplaza-backend/internal/productos"
	"github.com/veciplaza/veciplaza-backend/pkg/enums"
	pkgerrors "github.com/veciplaza/veciplaza-backend/pkg/errors"
	"github.com/veciplaza/veciplaza-backend/pkg/logger"
)

const maxImportBodyBytes = 5 << 20

// SearchProductos is the catalog browse endpoint for one bodega.
func SearchProductos(svc productos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodegaID, err := validators.PathUUID(r, "bodegaId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := validators.ParseCursorParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		// Tenderos only browse the live catalog; the owning bodega and
		// admins also see deactivated entries.
		role, _ := middleware.RoleFromContext(r.Context())
		onlyActive := role != enums.ActorRoleAdmin
		if role == enums.ActorRoleBodega {
			if own, ok := middleware.BodegaIDFromContext(r.Context()); ok && own == bodegaID {
				onlyActive = false
			}
		}

		filters := productos.Filters{
			Query:      strings.TrimSpace(r.URL.Query().Get("q")),
			Categoria:  strings.TrimSpace(r.URL.Query().Get("categoria")),
			OnlyActive: onlyActive,
		}

		list, err := svc.Search(r.Context(), bodegaID, filters, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func GetProducto(svc productos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productoID, err := validators.PathUUID(r, "productoId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		producto, err := svc.Get(r.Context(), productoID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, producto)
	}
}

func requireOwnBodega(r *http.Request) (uuid.UUID, error) {
	bodegaID, ok := middleware.BodegaIDFromContext(r.Context())
	if !ok {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "bodega id required")
	}
	return bodegaID, nil
}

func CreateProducto(svc productos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodegaID, err := requireOwnBodega(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var input productos.CreateInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		producto, err := svc.Create(r.Context(), bodegaID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, producto)
	}
}

func UpdateProducto(svc productos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodegaID, err := requireOwnBodega(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productoID, err := validators.PathUUID(r, "productoId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var input productos.UpdateInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		producto, err := svc.Update(r.Context(), bodegaID, productoID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, producto)
	}
}

func DeleteProducto(svc productos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodegaID, err := requireOwnBodega(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productoID, err := validators.PathUUID(r, "productoId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), bodegaID, productoID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "eliminado"})
	}
}

// ImportProductos ingests a CSV catalog, either as the multipart field
// "archivo" or as a raw text/csv body.
func ImportProductos(svc productos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodegaID, err := requireOwnBodega(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var reader io.Reader
		contentType := r.Header.Get("Content-Type")
		switch {
		case strings.HasPrefix(contentType, "multipart/form-data"):
			if err := r.ParseMultipartForm(maxImportBodyBytes); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart body"))
				return
			}
			file, _, err := r.FormFile("archivo")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "archivo field required"))
				return
			}
			defer file.Close()
			reader = file
		default:
			reader = http.MaxBytesReader(w, r.Body, maxImportBodyBytes)
		}

		report, err := svc.ImportCSV(r.Context(), bodegaID, reader)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}
