package checkout

import (
	"context"
	"fmt"

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
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// CartReader loads and clears the tendero's cart at one bodega.
type CartReader interface {
	Get(ctx context.Context, tenderoID, bodegaID uuid.UUID) (*cart.View, error)
	Clear(ctx context.Context, tenderoID, bodegaID uuid.UUID) error
}

// ProductFinder resolves the catalog rows the pedido snapshots.
type ProductFinder interface {
	FindActiveByIDs(ctx context.Context, bodegaID uuid.UUID, ids []uuid.UUID) ([]models.Producto, error)
}

// CouponValidator previews a coupon against the cart subtotal.
type CouponValidator interface {
	ValidateAt(ctx context.Context, code string, bodegaID uuid.UUID, subtotalCOP int64) (coupons.Result, error)
}

// Notifier tells the bodega a pedido arrived.
type Notifier interface {
	PedidoCreado(ctx context.Context, tx *gorm.DB, pedidoID, bodegaID uuid.UUID, numeroPedido int64) error
}

// Service turns carts into pedidos.
type Service interface {
	Submit(ctx context.Context, input Input) (*models.Pedido, error)
}

type service struct {
	pedidos  orders.Repository
	cart     CartReader
	products ProductFinder
	cupones  CouponValidator
	notifier Notifier
	tx       txRunner
	outbox   outboxPublisher
	logg     *logger.Logger
}

// NewService builds a checkout service with the required dependencies.
func NewService(pedidos orders.Repository, cartSvc CartReader, products ProductFinder, cupones CouponValidator, notifier Notifier, tx txRunner, outbox outboxPublisher, logg *logger.Logger) (Service, error) {
	if pedidos == nil {
		return nil, fmt.Errorf("pedidos repository required")
	}
	if cartSvc == nil {
		return nil, fmt.Errorf("cart reader required")
	}
	if products == nil {
		return nil, fmt.Errorf("product finder required")
	}
	if cupones == nil {
		return nil, fmt.Errorf("coupon validator required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if outbox == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		pedidos:  pedidos,
		cart:     cartSvc,
		products: products,
		cupones:  cupones,
		notifier: notifier,
		tx:       tx,
		outbox:   outbox,
		logg:     logg,
	}, nil
}

// Submit snapshots the cart into a pedido in estado nuevo. Catalog prices at
// submit time win over anything the cart displayed earlier, so a repriced
// producto charges its current price.
func (s *service) Submit(ctx context.Context, input Input) (*models.Pedido, error) {
	if input.TenderoID == uuid.Nil || input.BodegaID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tendero and bodega ids required")
	}

	view, err := s.cart.Get(ctx, input.TenderoID, input.BodegaID)
	if err != nil {
		return nil, err
	}
	if len(view.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	var pedido *models.Pedido
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		ids := make([]uuid.UUID, 0, len(view.Items))
		for _, line := range view.Items {
			ids = append(ids, line.ProductoID)
		}
		productos, err := s.products.FindActiveByIDs(ctx, input.BodegaID, ids)
		if err != nil {
			return err
		}
		byID := make(map[uuid.UUID]models.Producto, len(productos))
		for _, p := range productos {
			byID[p.ID] = p
		}

		var totalOriginal int64
		items := make([]models.PedidoItem, 0, len(view.Items))
		for _, line := range view.Items {
			producto, ok := byID[line.ProductoID]
			if !ok {
				return pkgerrors.New(pkgerrors.CodeConflict, "producto no longer available").
					WithDetails(map[string]any{"producto_id": line.ProductoID})
			}
			subtotal := producto.PrecioCOP * int64(line.Cantidad)
			totalOriginal += subtotal
			productoID := producto.ID
			items = append(items, models.PedidoItem{
				ProductoID:        &productoID,
				Nombre:            producto.Nombre,
				PrecioUnitarioCOP: producto.PrecioCOP,
				Cantidad:          line.Cantidad,
				PuntosBase:        producto.PuntosBase,
				SubtotalCOP:       subtotal,
			})
		}

		var descuento int64
		var cuponID *uuid.UUID
		var cuponCodigo *string
		if input.CuponCodigo != "" {
			result, err := s.cupones.ValidateAt(ctx, input.CuponCodigo, input.BodegaID, totalOriginal)
			if err != nil {
				return err
			}
			if !result.OK {
				return pkgerrors.New(pkgerrors.CodeCoupon, result.Reason)
			}
			descuento = result.DescuentoCOP
			cuponID = &result.Cupon.ID
			cuponCodigo = &result.Cupon.Codigo
		}

		pedido = &models.Pedido{
			TenderoID:        input.TenderoID,
			BodegaID:         input.BodegaID,
			Estado:           enums.PedidoEstadoNuevo,
			TotalOriginalCOP: totalOriginal,
			DescuentoCOP:     descuento,
			TotalCOP:         totalOriginal - descuento,
			CuponID:          cuponID,
			CuponCodigo:      cuponCodigo,
			Notas:            input.Notas,
			Items:            items,
		}
		created, err := s.pedidos.WithTx(tx).Create(ctx, pedido)
		if err != nil {
			return err
		}
		pedido = created

		actor := &outbox.ActorRef{ActorID: input.TenderoID, Role: enums.ActorRoleTendero.String()}
		err = s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventPedidoCreado,
			AggregateType: enums.AggregatePedido,
			AggregateID:   pedido.ID,
			Actor:         actor,
			Data: PedidoCreadoEvent{
				PedidoID:         pedido.ID,
				NumeroPedido:     pedido.NumeroPedido,
				TenderoID:        pedido.TenderoID,
				BodegaID:         pedido.BodegaID,
				TotalOriginalCOP: pedido.TotalOriginalCOP,
				DescuentoCOP:     pedido.DescuentoCOP,
				TotalCOP:         pedido.TotalCOP,
				TotalItems:       len(pedido.Items),
			},
		})
		if err != nil {
			return err
		}

		if cuponID != nil {
			err = s.outbox.Emit(ctx, tx, outbox.DomainEvent{
				EventType:     enums.EventCuponRedimido,
				AggregateType: enums.AggregatePedido,
				AggregateID:   pedido.ID,
				Actor:         actor,
				Data: CuponRedimidoEvent{
					CuponID:      *cuponID,
					Codigo:       *cuponCodigo,
					PedidoID:     pedido.ID,
					TenderoID:    pedido.TenderoID,
					BodegaID:     pedido.BodegaID,
					DescuentoCOP: descuento,
				},
			})
			if err != nil {
				return err
			}
		}

		return s.notifier.PedidoCreado(ctx, tx, pedido.ID, pedido.BodegaID, pedido.NumeroPedido)
	})
	if err != nil {
		if coded := pkgerrors.As(err); coded != nil {
			return nil, coded
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "submitting checkout")
	}

	// the pedido is committed; a stale cart is annoying but recoverable
	if err := s.cart.Clear(ctx, input.TenderoID, input.BodegaID); err != nil {
		s.logg.Error(ctx, "clearing cart after checkout", err)
	}
	return pedido, nil
}
