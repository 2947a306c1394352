package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/optiprice/backend-go/internal/domain"
	"github.com/optiprice/backend-go/internal/storage"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Seed the catalog database with product data",
		Commands: []*cli.Command{
			{
				Name:  "products",
				Usage: "Import products from a CSV file, upserting by name",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:    "csv",
						Usage:   "Path to the product CSV file",
						Value:   "./data/product_data.csv",
						EnvVars: []string{"SEED_CSV_PATH"},
					},
					&cli.StringFlag{
						Name:    "object-key",
						Usage:   "Object storage key to download the CSV from; omit to pick the newest CSV in the bucket",
						EnvVars: []string{"SEED_OBJECT_KEY"},
					},
					&cli.StringFlag{
						Name:    "storage-endpoint",
						Usage:   "S3-compatible storage endpoint",
						EnvVars: []string{"STORAGE_ENDPOINT"},
					},
					&cli.StringFlag{
						Name:    "storage-access-key",
						EnvVars: []string{"STORAGE_ACCESS_KEY"},
					},
					&cli.StringFlag{
						Name:    "storage-secret-key",
						EnvVars: []string{"STORAGE_SECRET_KEY"},
					},
					&cli.StringFlag{
						Name:    "storage-bucket",
						EnvVars: []string{"STORAGE_BUCKET"},
					},
					&cli.BoolFlag{
						Name:    "storage-ssl",
						Value:   true,
						EnvVars: []string{"STORAGE_USE_SSL"},
					},
				},
				Action: runProductSeeder,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runProductSeeder(c *cli.Context) error {
	ctx := c.Context
	csvPath := c.String("csv")

	if c.String("storage-endpoint") != "" {
		if err := downloadSeedFile(ctx, c, c.String("object-key"), csvPath); err != nil {
			return fmt.Errorf("failed to download seed file: %w", err)
		}
	}

	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	log.Println("Starting product seeding...")

	if err := ensureSchema(ctx, tx); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	count, err := seedProducts(ctx, tx, csvPath)
	if err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("Product seeding completed successfully (%d records)\n", count)
	return nil
}

// downloadSeedFile fetches the CSV from object storage. With no explicit key
// it lists the bucket and takes the most recently modified CSV.
func downloadSeedFile(ctx context.Context, c *cli.Context, key, destPath string) error {
	client, err := storage.NewMinioClient(storage.MinioConfig{
		Endpoint:  c.String("storage-endpoint"),
		AccessKey: c.String("storage-access-key"),
		SecretKey: c.String("storage-secret-key"),
		Bucket:    c.String("storage-bucket"),
		UseSSL:    c.Bool("storage-ssl"),
	})
	if err != nil {
		return err
	}

	if key == "" {
		objects, err := client.ListObjects(ctx, "")
		if err != nil {
			return fmt.Errorf("failed to list bucket: %w", err)
		}
		key, err = latestCSVKey(objects)
		if err != nil {
			return err
		}
		log.Printf("No object key given, using newest CSV %s\n", key)
	}

	log.Printf("Downloading %s to %s\n", key, destPath)
	return client.DownloadObject(ctx, key, destPath)
}

// latestCSVKey picks the most recently modified .csv object.
func latestCSVKey(objects []storage.ObjectInfo) (string, error) {
	var latest *storage.ObjectInfo
	for i, object := range objects {
		if !strings.HasSuffix(strings.ToLower(object.Key), ".csv") {
			continue
		}
		if latest == nil || object.LastModified.After(latest.LastModified) {
			latest = &objects[i]
		}
	}
	if latest == nil {
		return "", fmt.Errorf("no CSV objects found in bucket")
	}
	return latest.Key, nil
}

func ensureSchema(ctx context.Context, tx *sql.Tx) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS products (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			category TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			cost_price DOUBLE PRECISION NOT NULL DEFAULT 0,
			selling_price DOUBLE PRECISION NOT NULL DEFAULT 0,
			stock_available INTEGER NOT NULL DEFAULT 0,
			units_sold INTEGER NOT NULL DEFAULT 0,
			customer_rating DOUBLE PRECISION,
			historical_demand JSONB NOT NULL DEFAULT '{}',
			optimized_price DOUBLE PRECISION,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return err
	}
	return nil
}

func seedProducts(ctx context.Context, tx *sql.Tx, csvPath string) (int, error) {
	log.Printf("Seeding products from %s\n", csvPath)

	file, err := os.Open(csvPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open file %s: %w", csvPath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := map[string]int{}
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"name", "category", "cost_price", "selling_price"} {
		if _, ok := columns[required]; !ok {
			return 0, fmt.Errorf("CSV is missing required column %q", required)
		}
	}

	const query = `
		INSERT INTO products (
			name, category, description, cost_price, selling_price,
			stock_available, units_sold, customer_rating, historical_demand,
			optimized_price, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		ON CONFLICT (name) DO UPDATE SET
			category = EXCLUDED.category,
			description = EXCLUDED.description,
			cost_price = EXCLUDED.cost_price,
			selling_price = EXCLUDED.selling_price,
			stock_available = EXCLUDED.stock_available,
			units_sold = EXCLUDED.units_sold,
			customer_rating = EXCLUDED.customer_rating,
			historical_demand = EXCLUDED.historical_demand,
			optimized_price = EXCLUDED.optimized_price,
			updated_at = NOW()
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare product statement: %w", err)
	}
	defer stmt.Close()

	field := func(record []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	rowCount := 0
	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return rowCount, fmt.Errorf("failed to read CSV record: %w", err)
		}

		name := field(record, "name")
		if name == "" {
			continue
		}

		demand, err := parseDemandField(field(record, "demand_forecast"))
		if err != nil {
			log.Printf("warning: invalid demand history for %q, importing as empty: %v", name, err)
			demand = domain.HistoricalDemand{}
		}

		if _, err := stmt.ExecContext(ctx,
			name,
			field(record, "category"),
			field(record, "description"),
			parseFloatOrZero(field(record, "cost_price")),
			parseFloatOrZero(field(record, "selling_price")),
			parseIntOrZero(field(record, "stock_available")),
			parseIntOrZero(field(record, "units_sold")),
			parseNullableFloat(field(record, "customer_rating")),
			demand,
			parseNullableFloat(field(record, "optimized_price")),
		); err != nil {
			return rowCount, fmt.Errorf("failed to upsert product %q: %w", name, err)
		}

		rowCount++
		if rowCount%1000 == 0 {
			log.Printf("Seeded %d products...", rowCount)
		}
	}

	return rowCount, nil
}

// parseDemandField accepts the export format's python-style dict literal
// ({'2021': 100, ...}) as well as plain JSON.
func parseDemandField(raw string) (domain.HistoricalDemand, error) {
	if raw == "" {
		return domain.HistoricalDemand{}, nil
	}

	normalized := strings.ReplaceAll(raw, "'", `"`)
	demand := domain.ParseHistoricalDemand([]byte(normalized))
	if len(demand) == 0 && strings.Contains(raw, ":") && raw != "{}" {
		return nil, fmt.Errorf("unparseable demand history %q", raw)
	}
	return demand, nil
}

func parseFloatOrZero(value string) float64 {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return f
}

func parseIntOrZero(value string) int {
	i, err := strconv.Atoi(value)
	if err != nil {
		return int(parseFloatOrZero(value))
	}
	return i
}

func parseNullableFloat(value string) sql.NullFloat64 {
	if value == "" {
		return sql.NullFloat64{}
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: f, Valid: true}
}
