package loyalty

import "math"

// ProductoRef carries the catalog fields relevant to points. Pointers mark
// absent fields: imported data is ragged and prices show up under different
// names depending on the source.
type ProductoRef struct {
	PrecioCOP         *int64
	PrecioUnitarioCOP *int64
	PuntosBase        *int64
}

// LineEntry is one order line as the checkout layer hands it over.
type LineEntry struct {
	Producto          *ProductoRef
	PrecioCOP         *int64
	PrecioUnitarioCOP *int64
	Quantity          *int64
	Cantidad          *int64
	PuntosBase        *int64
}

// pointsDivisor awards 1 point per 10,000 COP actually paid.
const pointsDivisor = 10_000

// PuntosPedido computes the loyalty points earned by an order.
//
// Lines with a positive puntos_base (on the line or its product) grant a flat
// puntos_base * qty regardless of discounts. Every other line contributes its
// list-price subtotal to a proportional pool, which is scaled by the ratio of
// the amount actually paid to the undiscounted list total, then converted at 1
// point per 10,000 COP. Both results floor to whole points.
func PuntosPedido(items []LineEntry, totalFinalCOP int64) int64 {
	if totalFinalCOP < 0 {
		totalFinalCOP = 0
	}

	var (
		puntosFijos   int64
		totalLista    int64
		valorBasePool int64
	)

	for _, item := range items {
		precio := item.resolvePrecio()
		qty := item.resolveCantidad()
		subtotal := precio * qty
		totalLista += subtotal

		if base := item.resolvePuntosBase(); base > 0 {
			puntosFijos += base * qty
			continue
		}
		valorBasePool += subtotal
	}

	if totalLista == 0 {
		return puntosFijos
	}

	factorPago := float64(totalFinalCOP) / float64(totalLista)
	valorPagado := float64(valorBasePool) * factorPago
	puntosPool := math.Floor(valorPagado / pointsDivisor)

	return puntosFijos + int64(puntosPool)
}

// resolvePrecio picks the unit price. Product-level prices win over line-level
// ones, precio_cop wins over precio_unitario_cop. Negatives coerce to 0.
func (e LineEntry) resolvePrecio() int64 {
	candidates := []*int64{}
	if e.Producto != nil {
		candidates = append(candidates, e.Producto.PrecioCOP, e.Producto.PrecioUnitarioCOP)
	}
	candidates = append(candidates, e.PrecioCOP, e.PrecioUnitarioCOP)

	for _, c := range candidates {
		if c == nil {
			continue
		}
		if *c < 0 {
			return 0
		}
		return *c
	}
	return 0
}

func (e LineEntry) resolveCantidad() int64 {
	for _, c := range []*int64{e.Quantity, e.Cantidad} {
		if c == nil {
			continue
		}
		if *c < 0 {
			return 0
		}
		return *c
	}
	return 0
}

func (e LineEntry) resolvePuntosBase() int64 {
	if e.PuntosBase != nil && *e.PuntosBase > 0 {
		return *e.PuntosBase
	}
	if e.Producto != nil && e.Producto.PuntosBase != nil && *e.Producto.PuntosBase > 0 {
		return *e.Producto.PuntosBase
	}
	return 0
}
