package settings

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veciplaza/veciplaza-backend/pkg/db/models"
	"github.com/veciplaza/veciplaza-backend/pkg/enums"
	pkgerrors "github.com/veciplaza/veciplaza-backend/pkg/errors"
	"github.com/veciplaza/veciplaza-backend/pkg/outbox"
)

// ClaveIAAsistente toggles the vision-AI shopping assistant platform-wide.
const ClaveIAAsistente = "ia_asistente"

// knownClaves guards against typo'd settings keys from the admin surface.
var knownClaves = map[string]struct{}{
	ClaveIAAsistente: {},
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// AjusteActualizadoEvent is the outbox payload emitted when an admin changes
// a platform setting.
type AjusteActualizadoEvent struct {
	Clave string `json:"clave"`
	Valor string `json:"valor"`
}

// Service covers admin-managed platform settings.
type Service interface {
	Get(ctx context.Context, clave string) (*models.AjustePlataforma, error)
	List(ctx context.Context) ([]models.AjustePlataforma, error)
	Set(ctx context.Context, adminID uuid.UUID, clave, valor string) (*models.AjustePlataforma, error)
	IAAsistenteEnabled(ctx context.Context) (bool, error)
	SetIAAsistente(ctx context.Context, adminID uuid.UUID, enabled bool) error
}

type service struct {
	repo   Repository
	tx     txRunner
	outbox outboxPublisher
}

// NewService builds a settings service with the required dependencies.
func NewService(repo Repository, tx txRunner, outbox outboxPublisher) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("ajustes repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if outbox == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	return &service{repo: repo, tx: tx, outbox: outbox}, nil
}

func (s *service) Get(ctx context.Context, clave string) (*models.AjustePlataforma, error) {
	ajuste, err := s.repo.Find(ctx, clave)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ajuste not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ajuste")
	}
	return ajuste, nil
}

func (s *service) List(ctx context.Context) ([]models.AjustePlataforma, error) {
	ajustes, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list ajustes")
	}
	return ajustes, nil
}

func (s *service) Set(ctx context.Context, adminID uuid.UUID, clave, valor string) (*models.AjustePlataforma, error) {
	clave = strings.TrimSpace(clave)
	if _, ok := knownClaves[clave]; !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown ajuste clave").
			WithDetails(map[string]any{"clave": clave})
	}
	if clave == ClaveIAAsistente {
		if _, err := strconv.ParseBool(valor); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "valor must be a boolean")
		}
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Upsert(ctx, clave, valor); err != nil {
			return err
		}
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventAjusteActualizado,
			AggregateType: enums.AggregatePlataforma,
			AggregateID:   uuid.NewSHA1(uuid.NameSpaceOID, []byte(clave)),
			Actor: &outbox.ActorRef{
				ActorID: adminID,
				Role:    enums.ActorRoleAdmin.String(),
			},
			Data: AjusteActualizadoEvent{Clave: clave, Valor: valor},
		})
	})
	if err != nil {
		if coded := pkgerrors.As(err); coded != nil {
			return nil, coded
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store ajuste")
	}
	return s.Get(ctx, clave)
}

// IAAsistenteEnabled reads the toggle. A missing row means disabled.
func (s *service) IAAsistenteEnabled(ctx context.Context) (bool, error) {
	ajuste, err := s.repo.Find(ctx, ClaveIAAsistente)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ajuste")
	}
	enabled, err := strconv.ParseBool(ajuste.Valor)
	if err != nil {
		return false, nil
	}
	return enabled, nil
}

func (s *service) SetIAAsistente(ctx context.Context, adminID uuid.UUID, enabled bool) error {
	_, err := s.Set(ctx, adminID, ClaveIAAsistente, strconv.FormatBool(enabled))
	return err
}
