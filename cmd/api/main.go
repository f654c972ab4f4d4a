package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/rbarros/pixwallet/internal/account"
	accountStore "github.com/rbarros/pixwallet/internal/account/store"
	"github.com/rbarros/pixwallet/internal/balance"
	"github.com/rbarros/pixwallet/internal/config"
	"github.com/rbarros/pixwallet/internal/database"
	walletHttp "github.com/rbarros/pixwallet/internal/http"
	accountHandler "github.com/rbarros/pixwallet/internal/http/account"
	walletHandler "github.com/rbarros/pixwallet/internal/http/wallet"
	ledgerStore "github.com/rbarros/pixwallet/internal/ledger/store"
	"github.com/rbarros/pixwallet/internal/transfer"
)

func main() {
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

	ledger := ledgerStore.New(db)

	var (
		balanceService  = balance.NewService(ledger)
		transferService = transfer.NewService(ledger)
		accountService  = account.NewService(accountStore.New(db))
	)

	var (
		walletH  = walletHandler.NewHandler(balanceService, transferService)
		accountH = accountHandler.NewHandler(accountService)
	)

	router := walletHttp.New(walletH, accountH, []byte(cfg.Auth.JWTSecret), cfg.HTTP.AllowedOrigins)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
