// Command ingest loads the customer and loan workbooks into the database.
// It is meant to be run once against a freshly migrated schema, before the
// API server starts taking traffic.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ishan22399/Credit-Approval-System/internal/adapters/database/pgsql"
	"github.com/ishan22399/Credit-Approval-System/internal/importer"
	"github.com/ishan22399/Credit-Approval-System/internal/platform/config"
	"github.com/ishan22399/Credit-Approval-System/pkg/database"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()

	customerRepo := pgsql.NewCustomerRepository(dbPool)
	loanRepo := pgsql.NewLoanRepository(dbPool)
	ing := importer.NewIngestor(customerRepo, loanRepo, logger)

	customerStats, err := ing.IngestCustomers(ctx, cfg.CustomerDataPath)
	if err != nil {
		logger.Error("Customer ingestion failed", slog.String("path", cfg.CustomerDataPath), slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Customer ingestion complete",
		slog.String("path", cfg.CustomerDataPath),
		slog.Int("created", customerStats.Created),
		slog.Int("skipped_no_id", customerStats.SkippedNoID),
		slog.Int("skipped_duplicate", customerStats.SkippedDupe),
		slog.Int("skipped_bad_write", customerStats.SkippedBadWrite),
	)

	loanStats, err := ing.IngestLoans(ctx, cfg.LoanDataPath)
	if err != nil {
		logger.Error("Loan ingestion failed", slog.String("path", cfg.LoanDataPath), slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Loan ingestion complete",
		slog.String("path", cfg.LoanDataPath),
		slog.Int("created", loanStats.Created),
		slog.Int("skipped_no_id", loanStats.SkippedNoID),
		slog.Int("skipped_duplicate", loanStats.SkippedDupe),
		slog.Int("skipped_no_owner", loanStats.SkippedNoOwner),
		slog.Int("skipped_bad_write", loanStats.SkippedBadWrite),
	)

	if err := resetSequences(ctx, dbPool); err != nil {
		logger.Error("Failed to reset ID sequences", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("ID sequences advanced past imported rows.")
}

// resetSequences advances the serial sequences past the explicit IDs written
// by the importer, so rows registered through the API do not collide.
func resetSequences(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`SELECT setval(pg_get_serial_sequence('customers', 'customer_id'), COALESCE(MAX(customer_id), 1)) FROM customers`,
		`SELECT setval(pg_get_serial_sequence('loans', 'loan_id'), COALESCE(MAX(loan_id), 1)) FROM loans`,
	}
	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
