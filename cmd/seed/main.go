package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/rbarros/pixwallet/internal/account"
	accountStore "github.com/rbarros/pixwallet/internal/account/store"
	"github.com/rbarros/pixwallet/internal/config"
	"github.com/rbarros/pixwallet/internal/database"
	ledgerStore "github.com/rbarros/pixwallet/internal/ledger/store"
	"github.com/rbarros/pixwallet/internal/transfer"
)

func main() {
	var (
		accounts = flag.Int("accounts", 10, "number of demo accounts to create")
		opening  = flag.String("opening", "100.00", "opening deposit per account")
	)

	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString(), cfg.PoolConfig())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()

	if _, err := db.ExecContext(ctx, ledgerStore.Schema); err != nil {
		slog.Error("failed to apply schema", "error", err)
		os.Exit(1)
	}

	amount, err := decimal.NewFromString(*opening)
	if err != nil {
		slog.Error("invalid opening amount", "error", err)
		os.Exit(1)
	}

	var (
		accountService  = account.NewService(accountStore.New(db))
		transferService = transfer.NewService(ledgerStore.New(db))
	)

	// Seed money flows through the transfer service like everything else;
	// there are no direct balance writes anywhere.
	for i := 0; i < *accounts; i++ {
		acc, err := accountService.Create(ctx, fmt.Sprintf("demo-%03d", i+1))
		if err != nil {
			slog.Error("failed to create account", "error", err)
			os.Exit(1)
		}

		if amount.IsPositive() {
			_, err = transferService.Deposit(ctx, transfer.DepositParams{
				AccountID:      acc.ID,
				Amount:         amount,
				Description:    "opening deposit",
				IdempotencyKey: fmt.Sprintf("seed-opening-%d", acc.ID),
			})
			if err != nil {
				slog.Error("failed to seed deposit", "account_id", acc.ID, "error", err)
				os.Exit(1)
			}
		}

		slog.Info("seeded account", "account_id", acc.ID, "name", acc.Name)
	}
}
