package productos

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veciplaza/veciplaza-backend/pkg/db/models"
	"github.com/veciplaza/veciplaza-backend/pkg/enums"
	pkgerrors "github.com/veciplaza/veciplaza-backend/pkg/errors"
	"github.com/veciplaza/veciplaza-backend/pkg/outbox"
	"github.com/veciplaza/veciplaza-backend/pkg/pagination"
)

type stubProductosRepo struct {
	byNombre map[string]*models.Producto
	producto *models.Producto
	created  []*models.Producto
	updates  map[string]any
	deleted  []uuid.UUID
}

func (s *stubProductosRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubProductosRepo) Create(ctx context.Context, producto *models.Producto) (*models.Producto, error) {
	if producto.ID == uuid.Nil {
		producto.ID = uuid.New()
	}
	s.created = append(s.created, producto)
	return producto, nil
}

func (s *stubProductosRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Producto, error) {
	if s.producto == nil || s.producto.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.producto, nil
}

func (s *stubProductosRepo) FindByNombre(ctx context.Context, bodegaID uuid.UUID, nombre string) (*models.Producto, error) {
	if p, ok := s.byNombre[strings.ToLower(nombre)]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubProductosRepo) FindActiveByIDs(ctx context.Context, bodegaID uuid.UUID, ids []uuid.UUID) ([]models.Producto, error) {
	return nil, nil
}

func (s *stubProductosRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	s.updates = updates
	return nil
}

func (s *stubProductosRepo) Delete(ctx context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubProductosRepo) Search(ctx context.Context, bodegaID uuid.UUID, filters Filters, params pagination.Params) (*ProductoList, error) {
	return &ProductoList{}, nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubOutbox struct {
	emitted []outbox.DomainEvent
}

func (s *stubOutbox) Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error {
	s.emitted = append(s.emitted, event)
	return nil
}

func TestCreateValidatesInput(t *testing.T) {
	svc, err := NewService(&stubProductosRepo{}, stubTxRunner{}, &stubOutbox{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	cases := []CreateInput{
		{Nombre: "", Categoria: "granos", PrecioCOP: 100},
		{Nombre: "Arroz", Categoria: "", PrecioCOP: 100},
		{Nombre: "Arroz", Categoria: "granos", PrecioCOP: 0},
		{Nombre: "Arroz", Categoria: "granos", PrecioCOP: 100, PuntosBase: -1},
		{Nombre: "Arroz", Categoria: "granos", PrecioCOP: 100, Stock: -2},
	}
	for i, input := range cases {
		_, err := svc.Create(context.Background(), uuid.New(), input)
		coded := pkgerrors.As(err)
		if coded == nil || coded.Code() != pkgerrors.CodeValidation {
			t.Errorf("case %d: expected VALIDATION, got %v", i, err)
		}
	}
}

func TestUpdateEnforcesBodegaOwnership(t *testing.T) {
	owner := uuid.New()
	repo := &stubProductosRepo{producto: &models.Producto{
		ID:       uuid.New(),
		BodegaID: owner,
		Nombre:   "Arroz x25",
	}}
	svc, _ := NewService(repo, stubTxRunner{}, &stubOutbox{})

	precio := int64(12_000)
	_, err := svc.Update(context.Background(), uuid.New(), repo.producto.ID, UpdateInput{PrecioCOP: &precio})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected FORBIDDEN for foreign bodega, got %v", err)
	}

	if _, err := svc.Update(context.Background(), owner, repo.producto.ID, UpdateInput{PrecioCOP: &precio}); err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if repo.updates["precio_cop"] != precio {
		t.Fatalf("expected precio update, got %v", repo.updates)
	}
}

func TestImportCSVUpsertsAndEmits(t *testing.T) {
	bodegaID := uuid.New()
	existing := &models.Producto{ID: uuid.New(), BodegaID: bodegaID, Nombre: "Panela", PrecioCOP: 4_000}
	repo := &stubProductosRepo{byNombre: map[string]*models.Producto{"panela": existing}}
	ob := &stubOutbox{}
	svc, _ := NewService(repo, stubTxRunner{}, ob)

	file := strings.Join([]string{
		"nombre,categoria,precio_cop,puntos_base,stock,sinonimos",
		"Arroz x25,granos,10000,0,40,arroz blanco",
		"Panela,endulzantes,4500,2,100,",
		"SinPrecio,granos,abc,0,1,",
	}, "\n")

	report, err := svc.ImportCSV(context.Background(), bodegaID, strings.NewReader(file))
	if err != nil {
		t.Fatalf("ImportCSV: %v", err)
	}
	if report.Creados != 1 || report.Actualizados != 1 {
		t.Fatalf("expected 1 creado and 1 actualizado, got %+v", report)
	}
	if len(report.Errores) != 1 || !strings.Contains(report.Errores[0], "línea 4") {
		t.Fatalf("expected one row error on line 4, got %v", report.Errores)
	}
	if len(repo.created) != 1 || repo.created[0].Nombre != "Arroz x25" {
		t.Fatalf("expected Arroz created, got %+v", repo.created)
	}
	if repo.updates["precio_cop"] != int64(4_500) {
		t.Fatalf("expected Panela repriced, got %v", repo.updates)
	}
	if len(ob.emitted) != 1 || ob.emitted[0].EventType != enums.EventProductosImportados {
		t.Fatalf("expected productos.importados event, got %+v", ob.emitted)
	}
}

func TestImportCSVRejectsBadHeader(t *testing.T) {
	svc, _ := NewService(&stubProductosRepo{}, stubTxRunner{}, &stubOutbox{})

	_, err := svc.ImportCSV(context.Background(), uuid.New(), strings.NewReader("nombre,precio\nArroz,100"))
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION for bad header, got %v", err)
	}
}
