package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/migrate"
)

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func TestOrdersMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_orders.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no orders migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS orders",
		"FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE",
		"CHECK (status IN ('placed', 'cancelled', 'delivered'))",
		"DROP TABLE IF EXISTS orders",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestRechargeMigrationPendingDefault(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_recharge_entries.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no recharge migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"status TEXT NOT NULL DEFAULT 'pending'",
		"amount NUMERIC(14,2) NOT NULL DEFAULT 0",
		"FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}

	// Admin balance adjustments record debits as negative amounts, so the
	// column must not carry a non-negative check.
	if strings.Contains(content, "amount >= 0") {
		t.Errorf("amount column must allow negative adjustment entries")
	}
}
