// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"cotizador/internal/core/id"
	"cotizador/internal/infrastructure/storage/postgres"
	"cotizador/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Connect to database
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	poolCfg := postgres.DefaultPoolConfig(dbURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	// Seed admin user
	if err := seedAdminUser(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	// Seed demo data if requested
	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedAdminUser(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@cotizador.local"
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	// Check if admin already exists
	var existingID id.ID
	err := pool.Pool.QueryRow(ctx,
		`SELECT id FROM users WHERE email = $1 AND NOT deletion_mark`,
		adminEmail,
	).Scan(&existingID)
	if err == nil {
		log.Infow("admin user already exists", "email", adminEmail, "user_id", existingID)
		return nil
	}
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("check admin exists: %w", err)
	}

	// Hash password
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	userID := id.New()
	now := time.Now()

	// Create admin user
	_, err = pool.Pool.Exec(ctx, `
		INSERT INTO users (
			id, email, password_hash, first_name, last_name,
			is_active, is_admin, email_verified, email_verified_at, version
		)
		VALUES ($1, $2, $3, 'System', 'Admin', true, true, true, $4, 1)
	`, userID, adminEmail, string(passwordHash), now)
	if err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}

	// Assign admin role
	var adminRoleID id.ID
	err = pool.Pool.QueryRow(ctx,
		`SELECT id FROM roles WHERE code = 'admin'`,
	).Scan(&adminRoleID)
	if err != nil {
		log.Warnw("admin role not found, skipping role assignment", "error", err)
	} else {
		_, err = pool.Pool.Exec(ctx, `
			INSERT INTO user_roles (user_id, role_id, granted_by)
			VALUES ($1, $2, NULL)
			ON CONFLICT (user_id, role_id) DO NOTHING
		`, userID, adminRoleID)
		if err != nil {
			log.Warnw("failed to assign admin role", "error", err)
		}
	}

	log.Infow("admin user created",
		"email", adminEmail,
		"user_id", userID,
	)

	return nil
}

func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	log.Info("seeding demo data...")

	if err := seedMaterials(ctx, pool, log); err != nil {
		return err
	}

	// 2. Service items (labor priced per hour or as a fixed charge)
	serviceItems := []struct {
		name      string
		basePrice string
		unit      string
	}{
		{"Carpintería general", "120.00", "hour"},
		{"Lacado y acabado", "150.00", "hour"},
		{"Tapizado", "95.00", "hour"},
		{"Instalación en sitio", "800.00", "fixed"},
		{"Diseño y planos", "1500.00", "fixed"},
	}

	for i, s := range serviceItems {
		price, err := decimal.NewFromString(s.basePrice)
		if err != nil {
			return fmt.Errorf("parse service price: %w", err)
		}
		code := fmt.Sprintf("SRV-%03d", i+1)
		_, err = pool.Pool.Exec(ctx, `
			INSERT INTO cat_service_items (id, code, name, base_price, pricing_unit, version, deletion_mark, attributes)
			VALUES ($1, $2, $3, $4, $5, 1, false, '{}')
			ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
		`, id.New(), code, s.name, price, s.unit)
		if err != nil {
			log.Warnw("failed to seed service item", "name", s.name, "error", err)
		}
	}

	// 3. Fixed expenses feeding the dashboard overhead figure
	fixedExpenses := []struct {
		name   string
		amount string
		kind   string
	}{
		{"Renta del taller", "12000.00", "rent"},
		{"Electricidad", "2800.00", "utilities"},
		{"Agua", "450.00", "utilities"},
		{"Sueldos administrativos", "18000.00", "salaries"},
		{"Seguro del local", "1200.00", "other"},
	}

	for i, e := range fixedExpenses {
		amount, err := decimal.NewFromString(e.amount)
		if err != nil {
			return fmt.Errorf("parse expense amount: %w", err)
		}
		code := fmt.Sprintf("EXP-%03d", i+1)
		_, err = pool.Pool.Exec(ctx, `
			INSERT INTO cat_fixed_expenses (id, code, name, monthly_amount, kind, active, version, deletion_mark, attributes)
			VALUES ($1, $2, $3, $4, $5, true, 1, false, '{}')
			ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
		`, id.New(), code, e.name, amount, e.kind)
		if err != nil {
			log.Warnw("failed to seed fixed expense", "name", e.name, "error", err)
		}
	}

	// 4. Clients
	clients := []struct {
		name  string
		email string
		phone string
	}{
		{"Constructora del Valle", "compras@cdelvalle.mx", "+52 55 1234 5678"},
		{"Hotel Mirador", "mantenimiento@mirador.mx", "+52 55 8765 4321"},
		{"María Fernández", "maria.fdz@gmail.com", "+52 55 1111 2222"},
	}

	for i, c := range clients {
		code := fmt.Sprintf("CLI-%03d", i+1)
		_, err := pool.Pool.Exec(ctx, `
			INSERT INTO cat_clients (id, code, name, email, phone, version, deletion_mark, attributes)
			VALUES ($1, $2, $3, $4, $5, 1, false, '{}')
			ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
		`, id.New(), code, c.name, c.email, c.phone)
		if err != nil {
			log.Warnw("failed to seed client", "name", c.name, "error", err)
		}
	}

	// 5. Catalog products (pre-priced furniture models)
	products := []struct {
		name      string
		basePrice string
		colors    []string
		materials []string
	}{
		{"Mesa de comedor 6 plazas", "8500.00", []string{"natural", "nogal", "blanco"}, []string{"pino", "encino"}},
		{"Librero modular", "5200.00", []string{"natural", "negro"}, []string{"mdf", "pino"}},
		{"Cama queen con cabecera", "11000.00", []string{"nogal", "chocolate"}, []string{"encino", "cedro"}},
		{"Escritorio ejecutivo", "6800.00", []string{"natural", "negro", "blanco"}, []string{"mdf", "encino"}},
	}

	for i, p := range products {
		price, err := decimal.NewFromString(p.basePrice)
		if err != nil {
			return fmt.Errorf("parse product price: %w", err)
		}
		code := fmt.Sprintf("PRD-%03d", i+1)
		_, err = pool.Pool.Exec(ctx, `
			INSERT INTO cat_products (id, code, name, base_price, available_colors, available_materials, default_dimensions, version, deletion_mark, attributes)
			VALUES ($1, $2, $3, $4, $5, $6, '{}', 1, false, '{}')
			ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
		`, id.New(), code, p.name, price, p.colors, p.materials)
		if err != nil {
			log.Warnw("failed to seed product", "name", p.name, "error", err)
		}
	}

	log.Info("demo data seeded successfully")
	return nil
}

// seedMaterials bulk-loads the material catalog through COPY.
// Skipped entirely when the table already has rows, since COPY
// cannot express ON CONFLICT.
func seedMaterials(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	var count int
	if err := pool.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM cat_materials`).Scan(&count); err != nil {
		return fmt.Errorf("count materials: %w", err)
	}
	if count > 0 {
		log.Infow("materials already present, skipping", "count", count)
		return nil
	}

	type materialSeed struct {
		name     string
		unit     string
		price    string
		category string
	}

	materials := []materialSeed{
		{"Tablón de pino 2x4", "pieza", "185.00", "wood"},
		{"Triplay de encino 18mm", "hoja", "950.00", "wood"},
		{"MDF 15mm", "hoja", "620.00", "wood"},
		{"Barniz poliuretano", "litro", "280.00", "paint"},
		{"Laca nitrocelulosa", "litro", "240.00", "paint"},
		{"Bisagra de cazoleta", "pieza", "35.00", "hardware"},
		{"Corredera telescópica 45cm", "par", "120.00", "hardware"},
		{"Tornillo 1½\" (caja 100)", "caja", "85.00", "hardware"},
		{"Tela de lino gris", "metro", "310.00", "fabric"},
		{"Espuma alta densidad 4cm", "metro", "260.00", "fabric"},
	}

	columns := []string{
		"id", "code", "name", "unit", "unit_price", "category",
		"version", "deletion_mark", "attributes",
	}

	rows := make([][]any, 0, len(materials))
	for i, m := range materials {
		price, err := decimal.NewFromString(m.price)
		if err != nil {
			return fmt.Errorf("parse material price: %w", err)
		}
		code := fmt.Sprintf("MAT-%03d", i+1)
		rows = append(rows, []any{
			id.New(), code, m.name, m.unit, price, m.category,
			1, false, []byte(`{}`),
		})
	}

	inserter := postgres.NewBatchInserter(postgres.NewTxManager(pool))
	inserted, err := inserter.CopyFromSlice(ctx, "cat_materials", columns, rows)
	if err != nil {
		return fmt.Errorf("copy materials: %w", err)
	}

	log.Infow("materials seeded", "count", inserted)
	return nil
}
