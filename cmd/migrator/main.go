// Command migrator applies the SQL migrations in MIGRATIONS_PATH against
// the database described by CONFIG_PATH. "up" (the default) applies pending
// migrations, "down" rolls everything back.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/codesye/studentcode-service/internal/config"
)

const defaultMigrationsTable = "schema_migrations"

func main() {
	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	if err := run(direction); err != nil {
		log.Fatal(err)
	}
}

func run(direction string) error {
	sourceURL, databaseURL, err := buildURLs()
	if err != nil {
		return err
	}

	m, err := migrate.New(sourceURL, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to init migrate: %v", err)
	}
	defer m.Close()

	switch direction {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	default:
		return fmt.Errorf("unknown direction '%s', want 'up' or 'down'", direction)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		log.Println("schema already up to date")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration %s failed: %v", direction, err)
	}

	log.Printf("migration %s applied", direction)

	return nil
}

func buildURLs() (string, string, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		return "", "", errors.New("CONFIG_PATH is not set")
	}

	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		return "", "", errors.New("MIGRATIONS_PATH is not set")
	}

	migrationsTable := os.Getenv("MIGRATIONS_TABLE")
	if migrationsTable == "" {
		migrationsTable = defaultMigrationsTable
	}

	var cfg config.Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return "", "", fmt.Errorf("failed to read config '%s': %v", configPath, err)
	}

	databaseURL := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable&x-migrations-table=%s",
		cfg.Postgres.Username,
		cfg.Postgres.Password,
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.Database,
		migrationsTable,
	)

	return "file://" + migrationsPath, databaseURL, nil
}
