package loyalty

import "testing"

func i64(v int64) *int64 { return &v }

func TestPuntosPedidoEmptyOrder(t *testing.T) {
	if got := PuntosPedido(nil, 0); got != 0 {
		t.Fatalf("expected 0 points for empty order, got %d", got)
	}
	if got := PuntosPedido([]LineEntry{}, 50_000); got != 0 {
		t.Fatalf("expected 0 points for empty items, got %d", got)
	}
}

func TestPuntosPedidoProportionalNoDiscount(t *testing.T) {
	items := []LineEntry{
		{PrecioCOP: i64(10_000), Quantity: i64(2)},
	}
	// 20,000 paid / 10,000 = 2 points
	if got := PuntosPedido(items, 20_000); got != 2 {
		t.Fatalf("expected 2 points, got %d", got)
	}
}

func TestPuntosPedidoProportionalHalvedByDiscount(t *testing.T) {
	items := []LineEntry{
		{PrecioCOP: i64(10_000), Quantity: i64(2)},
	}
	// paid half the list total, so points halve too
	if got := PuntosPedido(items, 10_000); got != 1 {
		t.Fatalf("expected 1 point, got %d", got)
	}
}

func TestPuntosPedidoFixedOverrideIgnoresTotal(t *testing.T) {
	items := []LineEntry{
		{Producto: &ProductoRef{PuntosBase: i64(5)}, Quantity: i64(3)},
	}
	if got := PuntosPedido(items, 0); got != 15 {
		t.Fatalf("expected 15 points from puntos_base override, got %d", got)
	}
}

func TestPuntosPedidoOverrideLinesExcludedFromPool(t *testing.T) {
	items := []LineEntry{
		{Producto: &ProductoRef{PrecioCOP: i64(30_000), PuntosBase: i64(2)}, Cantidad: i64(1)},
		{PrecioCOP: i64(20_000), Cantidad: i64(1)},
	}
	// totalLista = 50,000, pool = 20,000, paid in full:
	// factor = 1.0, pool points = floor(20,000/10,000) = 2, plus 2 fixed
	if got := PuntosPedido(items, 50_000); got != 4 {
		t.Fatalf("expected 4 points, got %d", got)
	}
}

func TestPuntosPedidoPriceFieldPriority(t *testing.T) {
	items := []LineEntry{
		{
			Producto:          &ProductoRef{PrecioCOP: i64(10_000), PrecioUnitarioCOP: i64(99)},
			PrecioCOP:         i64(77),
			PrecioUnitarioCOP: i64(55),
			Quantity:          i64(1),
		},
	}
	if got := PuntosPedido(items, 10_000); got != 1 {
		t.Fatalf("product precio_cop should win the priority chain, got %d points", got)
	}

	items = []LineEntry{
		{
			Producto:          &ProductoRef{PrecioUnitarioCOP: i64(20_000)},
			PrecioCOP:         i64(77),
			PrecioUnitarioCOP: i64(55),
			Quantity:          i64(1),
		},
	}
	if got := PuntosPedido(items, 20_000); got != 2 {
		t.Fatalf("product precio_unitario_cop should win over line prices, got %d points", got)
	}

	items = []LineEntry{
		{PrecioUnitarioCOP: i64(30_000), Cantidad: i64(1)},
	}
	if got := PuntosPedido(items, 30_000); got != 3 {
		t.Fatalf("line precio_unitario_cop should apply last, got %d points", got)
	}
}

func TestPuntosPedidoQuantityFallsBackToCantidad(t *testing.T) {
	items := []LineEntry{
		{PrecioCOP: i64(10_000), Cantidad: i64(3)},
	}
	if got := PuntosPedido(items, 30_000); got != 3 {
		t.Fatalf("expected cantidad fallback to yield 3 points, got %d", got)
	}
}

func TestPuntosPedidoMissingFieldsCoerceToZero(t *testing.T) {
	items := []LineEntry{
		{Quantity: i64(5)},            // no price anywhere
		{PrecioCOP: i64(10_000)},      // no quantity
		{PrecioCOP: i64(-500), Quantity: i64(2)},  // negative price
		{PrecioCOP: i64(10_000), Quantity: i64(-3)}, // negative quantity
	}
	if got := PuntosPedido(items, 100_000); got != 0 {
		t.Fatalf("expected 0 points from degenerate lines, got %d", got)
	}
}

func TestPuntosPedidoZeroTotalFinalKeepsOnlyFixed(t *testing.T) {
	items := []LineEntry{
		{PrecioCOP: i64(50_000), Quantity: i64(2)},
		{PuntosBase: i64(4), Quantity: i64(2)},
	}
	if got := PuntosPedido(items, 0); got != 8 {
		t.Fatalf("expected only fixed points when nothing was paid, got %d", got)
	}
}

func TestPuntosPedidoNegativeTotalFinalCoercesToZero(t *testing.T) {
	items := []LineEntry{
		{PrecioCOP: i64(50_000), Quantity: i64(1)},
	}
	if got := PuntosPedido(items, -10_000); got != 0 {
		t.Fatalf("expected 0 points for negative total, got %d", got)
	}
}

func TestPuntosPedidoFloorsFractionalPoints(t *testing.T) {
	items := []LineEntry{
		{PrecioCOP: i64(19_999), Quantity: i64(1)},
	}
	if got := PuntosPedido(items, 19_999); got != 1 {
		t.Fatalf("expected floor to 1 point, got %d", got)
	}

	items = []LineEntry{
		{PrecioCOP: i64(9_999), Quantity: i64(1)},
	}
	if got := PuntosPedido(items, 9_999); got != 0 {
		t.Fatalf("expected floor to 0 points, got %d", got)
	}
}
