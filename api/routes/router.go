package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/veciplaza/veciplaza-backend/api/controllers"
	"github.com/veciplaza/veciplaza-backend/api/middleware"
	"github.com/veciplaza/veciplaza-backend/internal/bodegas"
	"github.com/veciplaza/veciplaza-backend/internal/cart"
	checkoutsvc "github.com/veciplaza/veciplaza-backend/internal/checkout"
	"github.com/veciplaza/veciplaza-backend/internal/coupons"
	"github.com/veciplaza/veciplaza-backend/internal/deliveries"
	"github.com/veciplaza/veciplaza-backend/internal/loyalty"
	"github.com/veciplaza/veciplaza-backend/internal/notifications"
	"github.com/veciplaza/veciplaza-backend/internal/orders"
	"github.com/veciplaza/veciplaza-backend/internal/productos"
	"github.com/veciplaza/veciplaza-backend/internal/settings"
	"github.com/veciplaza/veciplaza-backend/internal/tenderos"
	"github.com/veciplaza/veciplaza-backend/pkg/config"
	"github.com/veciplaza/veciplaza-backend/pkg/db"
	"github.com/veciplaza/veciplaza-backend/pkg/enums"
	"github.com/veciplaza/veciplaza-backend/pkg/logger"
	"github.com/veciplaza/veciplaza-backend/pkg/metrics"
	pkgredis "github.com/veciplaza/veciplaza-backend/pkg/redis"
)

type Services struct {
	Bodegas        bodegas.Service
	Tenderos       tenderos.Service
	Productos      productos.Service
	Cart           cart.Service
	Checkout       checkoutsvc.Service
	Pedidos        orders.Service
	Entregas       deliveries.Service
	Cupones        coupons.Service
	Loyalty        loyalty.Service
	Notificaciones notifications.Service
	Ajustes        settings.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	cacheP pkgredis.Pinger,
	httpMetrics *metrics.HTTPMetrics,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if httpMetrics != nil {
		r.Use(httpMetrics.Middleware)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, cacheP, logg))
	})

	if httpMetrics != nil {
		r.Method(http.MethodGet, "/metrics", httpMetrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Actor(logg))

		// Public directory plus catalog browsing. Tenderos register here.
		r.Get("/bodegas", controllers.ListBodegas(svcs.Bodegas, logg))
		r.Get("/bodegas/{bodegaId}", controllers.GetBodega(svcs.Bodegas, logg))
		r.Get("/bodegas/{bodegaId}/productos", controllers.SearchProductos(svcs.Productos, logg))
		r.Get("/productos/{productoId}", controllers.GetProducto(svcs.Productos, logg))
		r.Post("/tenderos", controllers.RegisterTendero(svcs.Tenderos, logg))
		r.Post("/cupones/validar", controllers.ValidateCupon(svcs.Cupones, logg))
		r.Get("/ia-asistente", controllers.GetIAAsistente(svcs.Ajustes, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, enums.ActorRoleTendero), middleware.RequireActorID(logg))

			r.Get("/tenderos/me", controllers.GetTenderoMe(svcs.Tenderos, logg))
			r.Patch("/tenderos/me", controllers.UpdateTenderoMe(svcs.Tenderos, logg))
			r.Get("/tenderos/me/puntos", controllers.GetTenderoPuntos(svcs.Tenderos, logg))
			r.Post("/tenderos/me/puntos/canjear", controllers.RedeemPuntos(svcs.Loyalty, logg))

			r.Route("/carrito/{bodegaId}", func(r chi.Router) {
				r.Get("/", controllers.GetCart(svcs.Cart, logg))
				r.Delete("/", controllers.ClearCart(svcs.Cart, logg))
				r.Post("/items", controllers.AddCartItem(svcs.Cart, logg))
				r.Patch("/items/{productoId}", controllers.UpdateCartItem(svcs.Cart, logg))
				r.Delete("/items/{productoId}", controllers.RemoveCartItem(svcs.Cart, logg))
				r.Get("/cotizar", controllers.QuoteCart(svcs.Cart, logg))
			})

			r.Post("/checkout", controllers.SubmitCheckout(svcs.Checkout, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, enums.ActorRoleTendero, enums.ActorRoleBodega), middleware.RequireActorID(logg))

			r.Get("/pedidos", controllers.ListPedidos(svcs.Pedidos, logg))
			r.Get("/pedidos/{pedidoId}", controllers.GetPedido(svcs.Pedidos, logg))
			r.Post("/pedidos/{pedidoId}/estado", controllers.ChangePedidoEstado(svcs.Pedidos, logg))
			r.Post("/pedidos/{pedidoId}/cancelar", controllers.CancelPedido(svcs.Pedidos, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, enums.ActorRoleBodega), middleware.RequireActorID(logg))

			r.Post("/productos", controllers.CreateProducto(svcs.Productos, logg))
			r.Patch("/productos/{productoId}", controllers.UpdateProducto(svcs.Productos, logg))
			r.Delete("/productos/{productoId}", controllers.DeleteProducto(svcs.Productos, logg))
			r.Post("/productos/importar", controllers.ImportProductos(svcs.Productos, logg))

			r.Get("/cupones", controllers.ListCupones(svcs.Cupones, logg))
			r.Post("/cupones", controllers.CreateCupon(svcs.Cupones, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, enums.ActorRoleBodega, enums.ActorRoleAdmin), middleware.RequireActorID(logg))

			r.Patch("/cupones/{cuponId}", controllers.UpdateCupon(svcs.Cupones, logg))
			r.Delete("/cupones/{cuponId}", controllers.DeleteCupon(svcs.Cupones, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, enums.ActorRoleRepartidor), middleware.RequireActorID(logg))

			r.Route("/entregas", func(r chi.Router) {
				r.Get("/disponibles", controllers.ListEntregasDisponibles(svcs.Entregas, logg))
				r.Get("/asignadas", controllers.ListEntregasAsignadas(svcs.Entregas, logg))
				r.Get("/{entregaId}", controllers.GetEntrega(svcs.Entregas, logg))
				r.Post("/{entregaId}/recoger", controllers.RecogerEntrega(svcs.Entregas, svcs.Pedidos, logg))
				r.Post("/{entregaId}/entregar", controllers.EntregarEntrega(svcs.Entregas, svcs.Pedidos, logg))
				r.Post("/{entregaId}/incidencia", controllers.ReportIncidencia(svcs.Entregas, logg))
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireActorID(logg))

			r.Route("/notificaciones", func(r chi.Router) {
				r.Get("/", controllers.ListNotificaciones(svcs.Notificaciones, logg))
				r.Get("/no-leidas", controllers.CountNotificacionesNoLeidas(svcs.Notificaciones, logg))
				r.Post("/{notificacionId}/leer", controllers.MarkNotificacionLeida(svcs.Notificaciones, logg))
				r.Post("/leer-todas", controllers.MarkTodasNotificacionesLeidas(svcs.Notificaciones, logg))
			})
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Actor(logg), middleware.RequireRole(logg, enums.ActorRoleAdmin), middleware.RequireActorID(logg))

		r.Post("/bodegas", controllers.RegisterBodega(svcs.Bodegas, logg))
		r.Patch("/bodegas/{bodegaId}", controllers.UpdateBodega(svcs.Bodegas, logg))

		r.Get("/ajustes", controllers.ListAjustes(svcs.Ajustes, logg))
		r.Get("/ajustes/{clave}", controllers.GetAjuste(svcs.Ajustes, logg))
		r.Put("/ajustes/{clave}", controllers.SetAjuste(svcs.Ajustes, logg))

		r.Get("/ia-asistente", controllers.GetIAAsistente(svcs.Ajustes, logg))
		r.Put("/ia-asistente", controllers.SetIAAsistente(svcs.Ajustes, logg))
	})

	return r
}
