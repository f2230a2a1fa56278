package loyalty

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veciplaza/veciplaza-backend/pkg/db/models"
	"github.com/veciplaza/veciplaza-backend/pkg/enums"
	pkgerrors "github.com/veciplaza/veciplaza-backend/pkg/errors"
	"github.com/veciplaza/veciplaza-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// PuntosNotifier tells the tendero their points landed.
type PuntosNotifier interface {
	PuntosAcreditados(ctx context.Context, tx *gorm.DB, pedidoID, tenderoID uuid.UUID, numeroPedido, puntos int64) error
}

// Service defines loyalty ledger operations.
type Service interface {
	AccrueOnDelivery(ctx context.Context, tx *gorm.DB, pedidoID, tenderoID uuid.UUID) (int64, error)
	Balance(ctx context.Context, tenderoID uuid.UUID) (*Saldo, error)
	Movimientos(ctx context.Context, tenderoID uuid.UUID, params pagination.Params) (*MovimientoList, error)
	Redeem(ctx context.Context, input RedeemInput) (*Saldo, error)
}

type service struct {
	repo     Repository
	tx       txRunner
	notifier PuntosNotifier
}

// NewService builds a loyalty service with the required dependencies. The
// notifier may be nil (accruals then stay silent).
func NewService(repo Repository, tx txRunner, notifier PuntosNotifier) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("loyalty repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx, notifier: notifier}, nil
}

// AccrueOnDelivery computes and credits the points earned by a delivered
// pedido. Runs inside the caller's transaction and is idempotent: an existing
// acreditacion movement for the pedido short-circuits with its point value.
func (s *service) AccrueOnDelivery(ctx context.Context, tx *gorm.DB, pedidoID, tenderoID uuid.UUID) (int64, error) {
	if pedidoID == uuid.Nil || tenderoID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "pedido and tendero ids required")
	}
	repo := s.repo.WithTx(tx)

	if existing, err := repo.FindAcreditacion(ctx, pedidoID); err == nil {
		return existing.Puntos, nil
	} else if err != gorm.ErrRecordNotFound {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check existing acreditacion")
	}

	pedido, err := repo.FindPedido(ctx, pedidoID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, pkgerrors.New(pkgerrors.CodeNotFound, "pedido not found")
		}
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load pedido")
	}

	puntos := PuntosPedido(lineEntries(pedido.Items), pedido.TotalCOP)
	if puntos <= 0 {
		return 0, nil
	}

	mov := &models.MovimientoPuntos{
		TenderoID: tenderoID,
		PedidoID:  &pedido.ID,
		Puntos:    puntos,
		Motivo:    enums.MovimientoMotivoAcreditacionPedido,
	}
	if err := repo.InsertMovimiento(ctx, mov); err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert movimiento")
	}
	if err := repo.AdjustSaldo(ctx, tenderoID, puntos); err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "credit saldo")
	}
	if s.notifier != nil {
		if err := s.notifier.PuntosAcreditados(ctx, tx, pedido.ID, tenderoID, pedido.NumeroPedido, puntos); err != nil {
			return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "notify puntos")
		}
	}
	return puntos, nil
}

func (s *service) Balance(ctx context.Context, tenderoID uuid.UUID) (*Saldo, error) {
	if tenderoID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tendero id required")
	}
	tendero, err := s.repo.FindTendero(ctx, tenderoID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "tendero not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tendero")
	}
	return &Saldo{TenderoID: tendero.ID, PuntosSaldo: tendero.PuntosSaldo}, nil
}

func (s *service) Movimientos(ctx context.Context, tenderoID uuid.UUID, params pagination.Params) (*MovimientoList, error) {
	if tenderoID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tendero id required")
	}
	list, err := s.repo.ListMovimientos(ctx, tenderoID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list movimientos")
	}
	return list, nil
}

// Redeem debits points from a tendero. The balance never goes negative.
func (s *service) Redeem(ctx context.Context, input RedeemInput) (*Saldo, error) {
	if input.TenderoID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tendero id required")
	}
	if input.Puntos <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "puntos must be positive")
	}

	var saldo *Saldo
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		tendero, err := repo.FindTendero(ctx, input.TenderoID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "tendero not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tendero")
		}
		if tendero.PuntosSaldo < input.Puntos {
			return pkgerrors.New(pkgerrors.CodeConflict, "insufficient puntos").
				WithDetails(map[string]any{"saldo": tendero.PuntosSaldo, "solicitado": input.Puntos})
		}

		mov := &models.MovimientoPuntos{
			TenderoID: input.TenderoID,
			Puntos:    -input.Puntos,
			Motivo:    enums.MovimientoMotivoRedencion,
			Detalle:   input.Detalle,
		}
		if err := repo.InsertMovimiento(ctx, mov); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert movimiento")
		}
		if err := repo.AdjustSaldo(ctx, input.TenderoID, -input.Puntos); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "debit saldo")
		}

		saldo = &Saldo{TenderoID: input.TenderoID, PuntosSaldo: tendero.PuntosSaldo - input.Puntos}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saldo, nil
}

func lineEntries(items []models.PedidoItem) []LineEntry {
	entries := make([]LineEntry, 0, len(items))
	for _, item := range items {
		precio := item.PrecioUnitarioCOP
		qty := int64(item.Cantidad)
		entry := LineEntry{
			PrecioUnitarioCOP: &precio,
			Cantidad:          &qty,
		}
		if item.PuntosBase > 0 {
			base := item.PuntosBase
			entry.PuntosBase = &base
		}
		entries = append(entries, entry)
	}
	return entries
}
