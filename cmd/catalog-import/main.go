package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/veciplaza/veciplaza-backend/internal/productos"
	"github.com/veciplaza/veciplaza-backend/pkg/config"
	"github.com/veciplaza/veciplaza-backend/pkg/db"
	"github.com/veciplaza/veciplaza-backend/pkg/logger"
	"github.com/veciplaza/veciplaza-backend/pkg/migrate"
	"github.com/veciplaza/veciplaza-backend/pkg/outbox"
)

// catalog-import loads a bodega's catalog from a CSV file, the same format
// the importar endpoint accepts.
func main() {
	logg := logger.New(logger.Options{ServiceName: "catalog-import"})

	_ = godotenv.Load()

	bodegaFlag := flag.String("bodega-id", "", "bodega uuid that owns the catalog")
	fileFlag := flag.String("file", "", "path to the CSV file")
	flag.Parse()

	if *bodegaFlag == "" || *fileFlag == "" {
		fmt.Fprintln(os.Stderr, "usage: catalog-import -bodega-id <uuid> -file <catalog.csv>")
		os.Exit(1)
	}

	bodegaID, err := uuid.Parse(*bodegaFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -bodega-id: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "catalog-import",
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

	outboxSvc := outbox.NewService(outbox.NewRepository(dbClient.DB()), logg)
	svc, err := productos.NewService(productos.NewRepository(dbClient.DB()), dbClient, outboxSvc)
	if err != nil {
		logg.Error(context.Background(), "failed to create productos service", err)
		os.Exit(1)
	}

	file, err := os.Open(*fileFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open %s: %v\n", *fileFlag, err)
		os.Exit(1)
	}
	defer file.Close()

	report, err := svc.ImportCSV(context.Background(), bodegaID, file)
	if err != nil {
		logg.Error(context.Background(), "import failed", err)
		os.Exit(1)
	}

	fmt.Printf("creados: %d\nactualizados: %d\n", report.Creados, report.Actualizados)
	for _, line := range report.Errores {
		fmt.Println("error:", line)
	}
	if len(report.Errores) > 0 {
		os.Exit(2)
	}
}
