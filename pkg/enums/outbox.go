package enums

// OutboxEventType names the domain events the platform emits.
type OutboxEventType string

const (
	EventPedidoCreado        OutboxEventType = "pedido.creado"
	EventPedidoEstadoCambio  OutboxEventType = "pedido.estado_cambio"
	EventPedidoCancelado     OutboxEventType = "pedido.cancelado"
	EventPuntosAcreditados   OutboxEventType = "puntos.acreditados"
	EventEntregaIncidencia   OutboxEventType = "entrega.incidencia"
	EventCuponRedimido       OutboxEventType = "cupon.redimido"
	EventAjusteActualizado   OutboxEventType = "ajuste.actualizado"
	EventProductosImportados OutboxEventType = "productos.importados"
)

// OutboxAggregateType names the aggregate an outbox event belongs to.
type OutboxAggregateType string

const (
	AggregatePedido     OutboxAggregateType = "pedido"
	AggregateEntrega    OutboxAggregateType = "entrega"
	AggregateTendero    OutboxAggregateType = "tendero"
	AggregateBodega     OutboxAggregateType = "bodega"
	AggregatePlataforma OutboxAggregateType = "plataforma"
)
