package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPedidosMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_pedidos.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no pedidos migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TYPE pedido_estado AS ENUM ('nuevo', 'aceptado', 'preparando', 'listo', 'en_camino', 'entregado', 'cancelado')",
		"CREATE TABLE IF NOT EXISTS pedidos",
		"CHECK (descuento_cop <= total_original_cop)",
		"CHECK (total_cop = total_original_cop - descuento_cop)",
		"FOREIGN KEY (pedido_id) REFERENCES pedidos(id) ON DELETE CASCADE",
		"CHECK (cantidad > 0)",
		"DROP TABLE IF EXISTS pedidos",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestCuponesMigrationEnforcesCaseInsensitiveCodes(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_cupones.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no cupones migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TYPE cupon_tipo AS ENUM ('fixed', 'percent')",
		"CREATE UNIQUE INDEX IF NOT EXISTS ux_cupones_codigo ON cupones (lower(codigo))",
		"CHECK (tipo <> 'percent' OR valor <= 100)",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
