// Command importvalues loads client values from an Excel workbook into the database.
// The first sheet's header row is "client" followed by entity codes; each further
// row is a client name and that client's values. Missing clients are created.
// Usage: go run ./cmd/importvalues values.xlsx
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"docgen/internal/config"
	"docgen/internal/repository/postgres"
	"docgen/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if len(os.Args) < 2 {
		return fmt.Errorf("usage: importvalues <workbook.xlsx>")
	}
	xlsxPath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	f, err := os.Open(xlsxPath)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	svc := service.NewValueService(
		postgres.NewValueRepo(db),
		postgres.NewEntityRepo(db),
		postgres.NewClientRepo(db),
	)

	result, err := svc.ImportXLSX(context.Background(), f)
	if err != nil {
		return fmt.Errorf("import %s: %w", xlsxPath, err)
	}

	log.Printf("Imported %s: %d rows, %d clients created, %d values set",
		xlsxPath, result.Rows, result.ClientsCreated, result.ValuesSet)
	if len(result.SkippedColumns) > 0 {
		log.Printf("Skipped columns without a matching entity: %s", strings.Join(result.SkippedColumns, ", "))
	}
	return nil
}
