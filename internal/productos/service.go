package productos

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veciplaza/veciplaza-backend/pkg/db/models"
	"github.com/veciplaza/veciplaza-backend/pkg/enums"
	pkgerrors "github.com/veciplaza/veciplaza-backend/pkg/errors"
	"github.com/veciplaza/veciplaza-backend/pkg/outbox"
	"github.com/veciplaza/veciplaza-backend/pkg/pagination"
)

// csvHeader is the required first row of a catalog import file.
var csvHeader = []string{"nombre", "categoria", "precio_cop", "puntos_base", "stock", "sinonimos"}

const maxImportRows = 5_000

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Service covers bodega catalog management.
type Service interface {
	Create(ctx context.Context, bodegaID uuid.UUID, input CreateInput) (*models.Producto, error)
	Get(ctx context.Context, productoID uuid.UUID) (*models.Producto, error)
	Update(ctx context.Context, bodegaID, productoID uuid.UUID, input UpdateInput) (*models.Producto, error)
	Delete(ctx context.Context, bodegaID, productoID uuid.UUID) error
	Search(ctx context.Context, bodegaID uuid.UUID, filters Filters, params pagination.Params) (*ProductoList, error)
	ImportCSV(ctx context.Context, bodegaID uuid.UUID, r io.Reader) (*ImportReport, error)
}

type service struct {
	repo   Repository
	tx     txRunner
	outbox outboxPublisher
}

// NewService builds a productos service with the required dependencies.
func NewService(repo Repository, tx txRunner, outbox outboxPublisher) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("productos repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if outbox == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	return &service{repo: repo, tx: tx, outbox: outbox}, nil
}

func (s *service) Create(ctx context.Context, bodegaID uuid.UUID, input CreateInput) (*models.Producto, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}
	producto := &models.Producto{
		BodegaID:   bodegaID,
		Nombre:     strings.TrimSpace(input.Nombre),
		Categoria:  strings.TrimSpace(input.Categoria),
		PrecioCOP:  input.PrecioCOP,
		PuntosBase: input.PuntosBase,
		Sinonimos:  input.Sinonimos,
		ImagenURL:  input.ImagenURL,
		Stock:      input.Stock,
		Activo:     true,
	}
	created, err := s.repo.Create(ctx, producto)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create producto")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, productoID uuid.UUID) (*models.Producto, error) {
	producto, err := s.repo.FindByID(ctx, productoID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "producto not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load producto")
	}
	return producto, nil
}

func (s *service) Update(ctx context.Context, bodegaID, productoID uuid.UUID, input UpdateInput) (*models.Producto, error) {
	producto, err := s.owned(ctx, bodegaID, productoID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Nombre != nil {
		if strings.TrimSpace(*input.Nombre) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "nombre must not be empty")
		}
		updates["nombre"] = strings.TrimSpace(*input.Nombre)
	}
	if input.Categoria != nil {
		updates["categoria"] = strings.TrimSpace(*input.Categoria)
	}
	if input.PrecioCOP != nil {
		if *input.PrecioCOP <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "precio must be positive")
		}
		updates["precio_cop"] = *input.PrecioCOP
	}
	if input.PuntosBase != nil {
		if *input.PuntosBase < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "puntos_base must not be negative")
		}
		updates["puntos_base"] = *input.PuntosBase
	}
	if input.Sinonimos != nil {
		updates["sinonimos"] = *input.Sinonimos
	}
	if input.ImagenURL != nil {
		updates["imagen_url"] = *input.ImagenURL
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock must not be negative")
		}
		updates["stock"] = *input.Stock
	}
	if input.Activo != nil {
		updates["activo"] = *input.Activo
	}
	if len(updates) == 0 {
		return producto, nil
	}

	if err := s.repo.Update(ctx, productoID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update producto")
	}
	return s.Get(ctx, productoID)
}

func (s *service) Delete(ctx context.Context, bodegaID, productoID uuid.UUID) error {
	if _, err := s.owned(ctx, bodegaID, productoID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, productoID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete producto")
	}
	return nil
}

func (s *service) Search(ctx context.Context, bodegaID uuid.UUID, filters Filters, params pagination.Params) (*ProductoList, error) {
	list, err := s.repo.Search(ctx, bodegaID, filters, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search productos")
	}
	return list, nil
}

// ImportCSV bulk-loads a bodega catalog. Rows upsert by nombre within the
// bodega. Row-level problems are collected in the report instead of aborting
// the whole file; the import itself runs in one transaction.
func (s *service) ImportCSV(ctx context.Context, bodegaID uuid.UUID, r io.Reader) (*ImportReport, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "empty import file")
	}
	if !matchesHeader(header) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("expected header %s", strings.Join(csvHeader, ",")))
	}

	report := &ImportReport{}
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		for line := 2; ; line++ {
			record, err := reader.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				report.Errores = append(report.Errores, fmt.Sprintf("línea %d: %v", line, err))
				continue
			}
			if line-1 > maxImportRows {
				return pkgerrors.New(pkgerrors.CodeValidation,
					fmt.Sprintf("import exceeds %d rows", maxImportRows))
			}

			row, err := parseImportRow(record)
			if err != nil {
				report.Errores = append(report.Errores, fmt.Sprintf("línea %d: %v", line, err))
				continue
			}

			existing, err := repo.FindByNombre(ctx, bodegaID, row.Nombre)
			switch {
			case err == nil:
				updates := map[string]any{
					"categoria":   row.Categoria,
					"precio_cop":  row.PrecioCOP,
					"puntos_base": row.PuntosBase,
					"stock":       row.Stock,
				}
				if row.Sinonimos != nil {
					updates["sinonimos"] = *row.Sinonimos
				}
				if err := repo.Update(ctx, existing.ID, updates); err != nil {
					return err
				}
				report.Actualizados++
			case err == gorm.ErrRecordNotFound:
				producto := &models.Producto{
					BodegaID:   bodegaID,
					Nombre:     row.Nombre,
					Categoria:  row.Categoria,
					PrecioCOP:  row.PrecioCOP,
					PuntosBase: row.PuntosBase,
					Sinonimos:  row.Sinonimos,
					Stock:      row.Stock,
					Activo:     true,
				}
				if _, err := repo.Create(ctx, producto); err != nil {
					return err
				}
				report.Creados++
			default:
				return err
			}
		}

		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventProductosImportados,
			AggregateType: enums.AggregateBodega,
			AggregateID:   bodegaID,
			Data: ImportedEvent{
				BodegaID:     bodegaID,
				Creados:      report.Creados,
				Actualizados: report.Actualizados,
				Errores:      len(report.Errores),
			},
		})
	})
	if err != nil {
		if coded := pkgerrors.As(err); coded != nil {
			return nil, coded
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "import catalog")
	}
	return report, nil
}

func (s *service) owned(ctx context.Context, bodegaID, productoID uuid.UUID) (*models.Producto, error) {
	producto, err := s.Get(ctx, productoID)
	if err != nil {
		return nil, err
	}
	if producto.BodegaID != bodegaID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "producto belongs to another bodega")
	}
	return producto, nil
}

func validateCreate(input CreateInput) error {
	if strings.TrimSpace(input.Nombre) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "nombre is required")
	}
	if strings.TrimSpace(input.Categoria) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "categoria is required")
	}
	if input.PrecioCOP <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "precio must be positive")
	}
	if input.PuntosBase < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "puntos_base must not be negative")
	}
	if input.Stock < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock must not be negative")
	}
	return nil
}

type importRow struct {
	Nombre     string
	Categoria  string
	PrecioCOP  int64
	PuntosBase int64
	Stock      int
	Sinonimos  *string
}

func parseImportRow(record []string) (*importRow, error) {
	if len(record) != len(csvHeader) {
		return nil, fmt.Errorf("expected %d columns, got %d", len(csvHeader), len(record))
	}
	row := &importRow{
		Nombre:    strings.TrimSpace(record[0]),
		Categoria: strings.TrimSpace(record[1]),
	}
	if row.Nombre == "" {
		return nil, fmt.Errorf("nombre vacío")
	}
	if row.Categoria == "" {
		return nil, fmt.Errorf("categoria vacía")
	}

	precio, err := strconv.ParseInt(strings.TrimSpace(record[2]), 10, 64)
	if err != nil || precio <= 0 {
		return nil, fmt.Errorf("precio_cop inválido %q", record[2])
	}
	row.PrecioCOP = precio

	if raw := strings.TrimSpace(record[3]); raw != "" {
		puntos, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || puntos < 0 {
			return nil, fmt.Errorf("puntos_base inválido %q", record[3])
		}
		row.PuntosBase = puntos
	}

	if raw := strings.TrimSpace(record[4]); raw != "" {
		stock, err := strconv.Atoi(raw)
		if err != nil || stock < 0 {
			return nil, fmt.Errorf("stock inválido %q", record[4])
		}
		row.Stock = stock
	}

	if raw := strings.TrimSpace(record[5]); raw != "" {
		row.Sinonimos = &raw
	}
	return row, nil
}

func matchesHeader(header []string) bool {
	if len(header) != len(csvHeader) {
		return false
	}
	for i, column := range header {
		if !strings.EqualFold(strings.TrimSpace(column), csvHeader[i]) {
			return false
		}
	}
	return true
}
