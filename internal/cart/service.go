package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/veciplaza/veciplaza-backend/internal/coupons"
	"github.com/veciplaza/veciplaza-backend/pkg/db/models"
	pkgerrors "github.com/veciplaza/veciplaza-backend/pkg/errors"
	pkgredis "github.com/veciplaza/veciplaza-backend/pkg/redis"
)

const maxCantidadPorItem = 999

type store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(tenderoID, bodegaID string) string
}

// ProductFinder resolves catalog products for cart enrichment.
type ProductFinder interface {
	FindActiveByIDs(ctx context.Context, bodegaID uuid.UUID, ids []uuid.UUID) ([]models.Producto, error)
}

// CouponQuoter previews a coupon against a subtotal.
type CouponQuoter interface {
	ValidateAt(ctx context.Context, code string, bodegaID uuid.UUID, subtotalCOP int64) (coupons.Result, error)
}

// Service keeps one cart per tendero and bodega in Redis.
type Service interface {
	Get(ctx context.Context, tenderoID, bodegaID uuid.UUID) (*View, error)
	AddItem(ctx context.Context, tenderoID, bodegaID uuid.UUID, input ItemInput) (*View, error)
	UpdateItem(ctx context.Context, tenderoID, bodegaID, productoID uuid.UUID, cantidad int) (*View, error)
	RemoveItem(ctx context.Context, tenderoID, bodegaID, productoID uuid.UUID) (*View, error)
	Clear(ctx context.Context, tenderoID, bodegaID uuid.UUID) error
	Quote(ctx context.Context, tenderoID, bodegaID uuid.UUID, cuponCodigo string) (*Quote, error)
}

type service struct {
	store    store
	products ProductFinder
	cupones  CouponQuoter
	ttl      time.Duration
}

// NewService builds a cart service. The coupon quoter may be nil (quotes then
// skip coupon previews).
func NewService(store store, products ProductFinder, cupones CouponQuoter, ttl time.Duration) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if products == nil {
		return nil, fmt.Errorf("product finder required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("cart ttl must be positive")
	}
	return &service{store: store, products: products, cupones: cupones, ttl: ttl}, nil
}

func (s *service) Get(ctx context.Context, tenderoID, bodegaID uuid.UUID) (*View, error) {
	stored, err := s.load(ctx, tenderoID, bodegaID)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, stored)
}

func (s *service) AddItem(ctx context.Context, tenderoID, bodegaID uuid.UUID, input ItemInput) (*View, error) {
	if input.ProductoID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "producto id required")
	}
	if input.Cantidad <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cantidad must be positive")
	}

	productos, err := s.products.FindActiveByIDs(ctx, bodegaID, []uuid.UUID{input.ProductoID})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load producto")
	}
	if len(productos) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "producto not found in bodega")
	}

	stored, err := s.load(ctx, tenderoID, bodegaID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range stored.Items {
		if stored.Items[i].ProductoID == input.ProductoID {
			stored.Items[i].Cantidad += input.Cantidad
			if stored.Items[i].Cantidad > maxCantidadPorItem {
				stored.Items[i].Cantidad = maxCantidadPorItem
			}
			found = true
			break
		}
	}
	if !found {
		stored.Items = append(stored.Items, storedItem{ProductoID: input.ProductoID, Cantidad: input.Cantidad})
	}

	if err := s.save(ctx, tenderoID, stored); err != nil {
		return nil, err
	}
	return s.render(ctx, stored)
}

func (s *service) UpdateItem(ctx context.Context, tenderoID, bodegaID, productoID uuid.UUID, cantidad int) (*View, error) {
	if cantidad < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cantidad must not be negative")
	}
	if cantidad > maxCantidadPorItem {
		cantidad = maxCantidadPorItem
	}

	stored, err := s.load(ctx, tenderoID, bodegaID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range stored.Items {
		if stored.Items[i].ProductoID == productoID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "producto not in cart")
	}

	if cantidad == 0 {
		stored.Items = append(stored.Items[:idx], stored.Items[idx+1:]...)
	} else {
		stored.Items[idx].Cantidad = cantidad
	}

	if err := s.save(ctx, tenderoID, stored); err != nil {
		return nil, err
	}
	return s.render(ctx, stored)
}

func (s *service) RemoveItem(ctx context.Context, tenderoID, bodegaID, productoID uuid.UUID) (*View, error) {
	return s.UpdateItem(ctx, tenderoID, bodegaID, productoID, 0)
}

func (s *service) Clear(ctx context.Context, tenderoID, bodegaID uuid.UUID) error {
	key := s.store.CartKey(tenderoID.String(), bodegaID.String())
	if err := s.store.Del(ctx, key); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

func (s *service) Quote(ctx context.Context, tenderoID, bodegaID uuid.UUID, cuponCodigo string) (*Quote, error) {
	view, err := s.Get(ctx, tenderoID, bodegaID)
	if err != nil {
		return nil, err
	}

	quote := &Quote{
		BodegaID:         view.BodegaID,
		Items:            view.Items,
		TotalOriginalCOP: view.SubtotalCOP,
		TotalCOP:         view.SubtotalCOP,
	}
	if cuponCodigo == "" || s.cupones == nil {
		return quote, nil
	}

	result, err := s.cupones.ValidateAt(ctx, cuponCodigo, bodegaID, view.SubtotalCOP)
	if err != nil {
		return nil, err
	}
	quote.CuponCodigo = cuponCodigo
	quote.CuponOK = result.OK
	quote.CuponReason = result.Reason
	if result.OK {
		quote.DescuentoCOP = result.DescuentoCOP
		quote.TotalCOP = view.SubtotalCOP - result.DescuentoCOP
	}
	return quote, nil
}

func (s *service) load(ctx context.Context, tenderoID, bodegaID uuid.UUID) (*storedCart, error) {
	key := s.store.CartKey(tenderoID.String(), bodegaID.String())
	raw, err := s.store.Get(ctx, key)
	if err != nil {
		if pkgredis.IsNil(err) {
			return &storedCart{BodegaID: bodegaID}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	var stored storedCart
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		// corrupted entry, start fresh
		return &storedCart{BodegaID: bodegaID}, nil
	}
	stored.BodegaID = bodegaID
	return &stored, nil
}

func (s *service) save(ctx context.Context, tenderoID uuid.UUID, stored *storedCart) error {
	key := s.store.CartKey(tenderoID.String(), stored.BodegaID.String())
	if len(stored.Items) == 0 {
		if err := s.store.Del(ctx, key); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
		}
		return nil
	}

	stored.UpdatedAt = time.Now()
	payload, err := json.Marshal(stored)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := s.store.Set(ctx, key, payload, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return nil
}

// render joins stored lines against the current catalog. Products that have
// been deactivated or removed since the cart was built are skipped.
func (s *service) render(ctx context.Context, stored *storedCart) (*View, error) {
	view := &View{BodegaID: stored.BodegaID, Items: []Line{}, UpdatedAt: stored.UpdatedAt}
	if len(stored.Items) == 0 {
		return view, nil
	}

	ids := make([]uuid.UUID, 0, len(stored.Items))
	for _, item := range stored.Items {
		ids = append(ids, item.ProductoID)
	}
	productos, err := s.products.FindActiveByIDs(ctx, stored.BodegaID, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load productos")
	}
	byID := make(map[uuid.UUID]models.Producto, len(productos))
	for _, p := range productos {
		byID[p.ID] = p
	}

	for _, item := range stored.Items {
		producto, ok := byID[item.ProductoID]
		if !ok {
			continue
		}
		subtotal := producto.PrecioCOP * int64(item.Cantidad)
		view.Items = append(view.Items, Line{
			ProductoID:  producto.ID,
			Nombre:      producto.Nombre,
			PrecioCOP:   producto.PrecioCOP,
			Cantidad:    item.Cantidad,
			SubtotalCOP: subtotal,
		})
		view.SubtotalCOP += subtotal
	}
	return view, nil
}
