package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/veciplaza/veciplaza-backend/api/routes"
	"github.com/veciplaza/veciplaza-backend/internal/bodegas"
	"github.com/veciplaza/veciplaza-backend/internal/cart"
	"github.com/veciplaza/veciplaza-backend/internal/checkout"
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
	"github.com/veciplaza/veciplaza-backend/pkg/logger"
	"github.com/veciplaza/veciplaza-backend/pkg/metrics"
	"github.com/veciplaza/veciplaza-backend/pkg/migrate"
	"github.com/veciplaza/veciplaza-backend/pkg/outbox"
	"github.com/veciplaza/veciplaza-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	fail := func(what string, err error) {
		logg.Error(context.Background(), "failed to create "+what, err)
		os.Exit(1)
	}

	gdb := dbClient.DB()
	httpMetrics := metrics.NewHTTPMetrics()
	pedidoMetrics := metrics.NewPedidoMetrics(httpMetrics.Registry())
	outboxSvc := outbox.NewService(outbox.NewRepository(gdb), logg)

	productosRepo := productos.NewRepository(gdb)
	pedidosRepo := orders.NewRepository(gdb)

	notificacionesSvc, err := notifications.NewService(notifications.NewRepository(gdb))
	if err != nil {
		fail("notificaciones service", err)
	}

	loyaltySvc, err := loyalty.NewService(loyalty.NewRepository(gdb), dbClient, notificacionesSvc)
	if err != nil {
		fail("loyalty service", err)
	}

	entregasSvc, err := deliveries.NewService(deliveries.NewRepository(gdb), dbClient, outboxSvc, notificacionesSvc)
	if err != nil {
		fail("entregas service", err)
	}

	pedidosSvc, err := orders.NewService(pedidosRepo, dbClient, outboxSvc, loyaltySvc, entregasSvc, notificacionesSvc, pedidoMetrics)
	if err != nil {
		fail("pedidos service", err)
	}

	cuponesSvc, err := coupons.NewService(coupons.NewRepository(gdb), pedidoMetrics, time.Now)
	if err != nil {
		fail("cupones service", err)
	}

	productosSvc, err := productos.NewService(productosRepo, dbClient, outboxSvc)
	if err != nil {
		fail("productos service", err)
	}

	cartSvc, err := cart.NewService(redisClient, productosRepo, cuponesSvc, cfg.Cart.TTL)
	if err != nil {
		fail("cart service", err)
	}

	checkoutSvc, err := checkout.NewService(pedidosRepo, cartSvc, productosRepo, cuponesSvc, notificacionesSvc, dbClient, outboxSvc, logg)
	if err != nil {
		fail("checkout service", err)
	}

	bodegasSvc, err := bodegas.NewService(bodegas.NewRepository(gdb))
	if err != nil {
		fail("bodegas service", err)
	}

	tenderosSvc, err := tenderos.NewService(tenderos.NewRepository(gdb), loyaltySvc)
	if err != nil {
		fail("tenderos service", err)
	}

	ajustesSvc, err := settings.NewService(settings.NewRepository(gdb), dbClient, outboxSvc)
	if err != nil {
		fail("ajustes service", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, httpMetrics, routes.Services{
			Bodegas:        bodegasSvc,
			Tenderos:       tenderosSvc,
			Productos:      productosSvc,
			Cart:           cartSvc,
			Checkout:       checkoutSvc,
			Pedidos:        pedidosSvc,
			Entregas:       entregasSvc,
			Cupones:        cuponesSvc,
			Loyalty:        loyaltySvc,
			Notificaciones: notificacionesSvc,
			Ajustes:        ajustesSvc,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
