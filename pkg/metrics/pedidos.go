package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PedidoMetrics records order lifecycle activity.
type PedidoMetrics struct {
	transitions *prometheus.CounterVec
	rejected    *prometheus.CounterVec
	puntos      prometheus.Counter
	cupones     *prometheus.CounterVec
}

// NewPedidoMetrics registers the order metrics on the provided registerer.
func NewPedidoMetrics(reg prometheus.Registerer) *PedidoMetrics {
	if reg == nil {
		return &PedidoMetrics{}
	}
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pedido_transitions_total",
		Help: "Order state transitions applied, by from and to state.",
	}, []string{"from", "to"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pedido_transitions_rejected_total",
		Help: "Order state transitions rejected, by from and to state.",
	}, []string{"from", "to"})
	puntos := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "puntos_acreditados_total",
		Help: "Loyalty points credited to tenderos.",
	})
	cupones := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cupones_validaciones_total",
		Help: "Coupon validation outcomes.",
	}, []string{"outcome"})
	reg.MustRegister(transitions, rejected, puntos, cupones)
	return &PedidoMetrics{
		transitions: transitions,
		rejected:    rejected,
		puntos:      puntos,
		cupones:     cupones,
	}
}

// IncTransition records an applied state change.
func (m *PedidoMetrics) IncTransition(from, to string) {
	if m == nil || m.transitions == nil {
		return
	}
	m.transitions.WithLabelValues(from, to).Inc()
}

// IncRejected records a refused state change.
func (m *PedidoMetrics) IncRejected(from, to string) {
	if m == nil || m.rejected == nil {
		return
	}
	m.rejected.WithLabelValues(from, to).Inc()
}

// AddPuntos records credited loyalty points.
func (m *PedidoMetrics) AddPuntos(puntos int64) {
	if m == nil || m.puntos == nil || puntos <= 0 {
		return
	}
	m.puntos.Add(float64(puntos))
}

// IncCuponValidation records a coupon validation outcome ("valid" or "rejected").
func (m *PedidoMetrics) IncCuponValidation(outcome string) {
	if m == nil || m.cupones == nil {
		return
	}
	if outcome == "" {
		outcome = "unknown"
	}
	m.cupones.WithLabelValues(outcome).Inc()
}
