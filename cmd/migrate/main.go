// Command migrate applies the SQL migrations in db/migrations.
// Usage: migrate [-path dir] up|down|steps N|force V|version
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"docgen/internal/config"
)

const usage = "Usage: migrate [-path dir] up|down|steps N|force V|version"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	dir := flag.String("path", "db/migrations", "directory holding the migration files")
	flag.Parse()
	args := flag.Args()
	if len(args) < 1 {
		fmt.Println(usage)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	m, err := migrate.New("file://"+*dir, cfg.DB.DSN())
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	intArg := func() (int, error) {
		if len(args) < 2 {
			return 0, fmt.Errorf("%s requires a number argument", args[0])
		}
		return strconv.Atoi(args[1])
	}

	switch args[0] {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration up failed: %w", err)
		}
		log.Println("migrations applied successfully")

	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration down failed: %w", err)
		}
		log.Println("migrations reverted successfully")

	case "steps":
		n, err := intArg()
		if err != nil {
			return err
		}
		if err := m.Steps(n); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration steps failed: %w", err)
		}
		log.Printf("applied %d migration steps", n)

	case "force":
		v, err := intArg()
		if err != nil {
			return err
		}
		if err := m.Force(v); err != nil {
			return fmt.Errorf("forcing version %d failed: %w", v, err)
		}
		log.Printf("forced version %d", v)

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}
		fmt.Printf("version: %d, dirty: %v\n", version, dirty)

	default:
		fmt.Printf("unknown command: %s\n", args[0])
		fmt.Println(usage)
		os.Exit(1)
	}
	return nil
}
