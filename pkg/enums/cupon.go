package enums

import "fmt"

// CuponTipo distinguishes flat-amount coupons from percentage coupons.
type CuponTipo string

const (
	CuponTipoFijo       CuponTipo = "fixed"
	CuponTipoPorcentaje CuponTipo = "percent"
)

var validCuponTipos = []CuponTipo{
	CuponTipoFijo,
	CuponTipoPorcentaje,
}

// String implements fmt.Stringer.
func (c CuponTipo) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CuponTipo.
func (c CuponTipo) IsValid() bool {
	for _, candidate := range validCuponTipos {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCuponTipo converts raw input into a CuponTipo.
func ParseCuponTipo(value string) (CuponTipo, error) {
	for _, candidate := range validCuponTipos {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cupon tipo %q", value)
}
