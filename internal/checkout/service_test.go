package checkout

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veciplaza/veciplaza-backend/internal/cart"
	"github.com/veciplaza/veciplaza-backend/internal/coupons"
	"github.com/veciplaza/veciplaza-backend/internal/orders"
	"github.com/veciplaza/veciplaza-backend/pkg/db/models"
	"github.com/veciplaza/veciplaza-backend/pkg/enums"
	pkgerrors "github.com/veciplaza/veciplaza-backend/pkg/errors"
	"github.com/veciplaza/veciplaza-backend/pkg/logger"
	"github.com/veciplaza/veciplaza-backend/pkg/outbox"
	"github.com/veciplaza/veciplaza-backend/pkg/pagination"
)

type stubPedidosRepo struct {
	created *models.Pedido
}

func (s *stubPedidosRepo) WithTx(tx *gorm.DB) orders.Repository { return s }

func (s *stubPedidosRepo) Create(ctx context.Context, pedido *models.Pedido) (*models.Pedido, error) {
	pedido.ID = uuid.New()
	pedido.NumeroPedido = 1042
	s.created = pedido
	return pedido, nil
}

func (s *stubPedidosRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Pedido, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubPedidosRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return nil
}

func (s *stubPedidosRepo) ListByTendero(ctx context.Context, tenderoID uuid.UUID, params pagination.Params, filters orders.Filters) (*orders.PedidoList, error) {
	return &orders.PedidoList{}, nil
}

func (s *stubPedidosRepo) ListByBodega(ctx context.Context, bodegaID uuid.UUID, params pagination.Params, filters orders.Filters) (*orders.PedidoList, error) {
	return &orders.PedidoList{}, nil
}

type stubCartReader struct {
	view    *cart.View
	cleared int
}

func (s *stubCartReader) Get(ctx context.Context, tenderoID, bodegaID uuid.UUID) (*cart.View, error) {
	return s.view, nil
}

func (s *stubCartReader) Clear(ctx context.Context, tenderoID, bodegaID uuid.UUID) error {
	s.cleared++
	return nil
}

type stubProductFinder struct {
	productos []models.Producto
}

func (s *stubProductFinder) FindActiveByIDs(ctx context.Context, bodegaID uuid.UUID, ids []uuid.UUID) ([]models.Producto, error) {
	return s.productos, nil
}

type stubCouponValidator struct {
	result coupons.Result
}

func (s *stubCouponValidator) ValidateAt(ctx context.Context, code string, bodegaID uuid.UUID, subtotalCOP int64) (coupons.Result, error) {
	return s.result, nil
}

type stubNotifier struct {
	calls int
}

func (s *stubNotifier) PedidoCreado(ctx context.Context, tx *gorm.DB, pedidoID, bodegaID uuid.UUID, numeroPedido int64) error {
	s.calls++
	return nil
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

type fixture struct {
	svc      Service
	pedidos  *stubPedidosRepo
	cart     *stubCartReader
	cupones  *stubCouponValidator
	notifier *stubNotifier
	outbox   *stubOutbox
}

func newFixture(t *testing.T, view *cart.View, productos []models.Producto, result coupons.Result) *fixture {
	t.Helper()
	f := &fixture{
		pedidos:  &stubPedidosRepo{},
		cart:     &stubCartReader{view: view},
		cupones:  &stubCouponValidator{result: result},
		notifier: &stubNotifier{},
		outbox:   &stubOutbox{},
	}
	logg := logger.New(logger.Options{ServiceName: "checkout-test", Output: io.Discard})
	svc, err := NewService(f.pedidos, f.cart, &stubProductFinder{productos: productos}, f.cupones, f.notifier, stubTxRunner{}, f.outbox, logg)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	f.svc = svc
	return f
}

func cartFixture(bodegaID uuid.UUID) (*cart.View, []models.Producto) {
	arroz := models.Producto{ID: uuid.New(), BodegaID: bodegaID, Nombre: "Arroz x25", PrecioCOP: 10_000, PuntosBase: 0, Activo: true}
	panela := models.Producto{ID: uuid.New(), BodegaID: bodegaID, Nombre: "Panela", PrecioCOP: 5_000, PuntosBase: 2, Activo: true}
	view := &cart.View{
		BodegaID: bodegaID,
		Items: []cart.Line{
			{ProductoID: arroz.ID, Nombre: arroz.Nombre, PrecioCOP: arroz.PrecioCOP, Cantidad: 3, SubtotalCOP: 30_000},
			{ProductoID: panela.ID, Nombre: panela.Nombre, PrecioCOP: panela.PrecioCOP, Cantidad: 2, SubtotalCOP: 10_000},
		},
		SubtotalCOP: 40_000,
	}
	return view, []models.Producto{arroz, panela}
}

func TestSubmitCreatesPedidoAndClearsCart(t *testing.T) {
	bodegaID := uuid.New()
	view, productos := cartFixture(bodegaID)
	f := newFixture(t, view, productos, coupons.Result{})

	pedido, err := f.svc.Submit(context.Background(), Input{TenderoID: uuid.New(), BodegaID: bodegaID})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if pedido.Estado != enums.PedidoEstadoNuevo {
		t.Fatalf("expected estado nuevo, got %s", pedido.Estado)
	}
	if pedido.TotalOriginalCOP != 40_000 || pedido.TotalCOP != 40_000 || pedido.DescuentoCOP != 0 {
		t.Fatalf("unexpected totals %+v", pedido)
	}
	if len(pedido.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(pedido.Items))
	}
	if pedido.Items[1].PuntosBase != 2 {
		t.Fatalf("expected puntos_base snapshot, got %+v", pedido.Items[1])
	}
	if f.cart.cleared != 1 {
		t.Fatalf("expected cart cleared once, got %d", f.cart.cleared)
	}
	if f.notifier.calls != 1 {
		t.Fatalf("expected bodega notified, got %d", f.notifier.calls)
	}
	if len(f.outbox.emitted) != 1 || f.outbox.emitted[0].EventType != enums.EventPedidoCreado {
		t.Fatalf("expected pedido.creado event, got %+v", f.outbox.emitted)
	}
}

func TestSubmitAppliesCoupon(t *testing.T) {
	bodegaID := uuid.New()
	view, productos := cartFixture(bodegaID)
	cupon := &models.Cupon{ID: uuid.New(), Codigo: "VECI10", Tipo: enums.CuponTipoPorcentaje, Valor: 10}
	f := newFixture(t, view, productos, coupons.Result{OK: true, DescuentoCOP: 4_000, Cupon: cupon})

	pedido, err := f.svc.Submit(context.Background(), Input{
		TenderoID:   uuid.New(),
		BodegaID:    bodegaID,
		CuponCodigo: "VECI10",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if pedido.DescuentoCOP != 4_000 || pedido.TotalCOP != 36_000 {
		t.Fatalf("unexpected totals %+v", pedido)
	}
	if pedido.CuponID == nil || *pedido.CuponID != cupon.ID {
		t.Fatalf("expected cupon linked, got %+v", pedido.CuponID)
	}
	if len(f.outbox.emitted) != 2 || f.outbox.emitted[1].EventType != enums.EventCuponRedimido {
		t.Fatalf("expected cupon.redimido event, got %+v", f.outbox.emitted)
	}
}

func TestSubmitRejectsInvalidCoupon(t *testing.T) {
	bodegaID := uuid.New()
	view, productos := cartFixture(bodegaID)
	f := newFixture(t, view, productos, coupons.Result{OK: false, Reason: "Cupón vencido"})

	_, err := f.svc.Submit(context.Background(), Input{
		TenderoID:   uuid.New(),
		BodegaID:    bodegaID,
		CuponCodigo: "VIEJO",
	})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeCoupon {
		t.Fatalf("expected COUPON error, got %v", err)
	}
	if coded.Message() != "Cupón vencido" {
		t.Fatalf("expected reason surfaced, got %q", coded.Message())
	}
	if f.pedidos.created != nil {
		t.Fatalf("expected no pedido created")
	}
	if f.cart.cleared != 0 {
		t.Fatalf("expected cart kept on failure")
	}
}

func TestSubmitRejectsEmptyCart(t *testing.T) {
	bodegaID := uuid.New()
	f := newFixture(t, &cart.View{BodegaID: bodegaID}, nil, coupons.Result{})

	_, err := f.svc.Submit(context.Background(), Input{TenderoID: uuid.New(), BodegaID: bodegaID})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION for empty cart, got %v", err)
	}
}

func TestSubmitConflictsOnMissingProducto(t *testing.T) {
	bodegaID := uuid.New()
	view, productos := cartFixture(bodegaID)
	// second producto vanished from the catalog between cart and checkout
	f := newFixture(t, view, productos[:1], coupons.Result{})

	_, err := f.svc.Submit(context.Background(), Input{TenderoID: uuid.New(), BodegaID: bodegaID})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
}
