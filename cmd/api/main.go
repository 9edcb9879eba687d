package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/nidofinanciero/nido/internal/budget"
	budgetStore "github.com/nidofinanciero/nido/internal/budget/store"
	"github.com/nidofinanciero/nido/internal/config"
	"github.com/nidofinanciero/nido/internal/database"
	"github.com/nidofinanciero/nido/internal/household"
	householdStore "github.com/nidofinanciero/nido/internal/household/store"
	nidoHttp "github.com/nidofinanciero/nido/internal/http"
	budgetHandler "github.com/nidofinanciero/nido/internal/http/budget"
	householdHandler "github.com/nidofinanciero/nido/internal/http/household"
	importHandler "github.com/nidofinanciero/nido/internal/http/importcsv"
	txHandler "github.com/nidofinanciero/nido/internal/http/transaction"
	transferHandler "github.com/nidofinanciero/nido/internal/http/transfer"
	userHandler "github.com/nidofinanciero/nido/internal/http/user"
	"github.com/nidofinanciero/nido/internal/importer"
	"github.com/nidofinanciero/nido/internal/transaction"
	txStore "github.com/nidofinanciero/nido/internal/transaction/store"
	"github.com/nidofinanciero/nido/internal/transfer"
	transferStore "github.com/nidofinanciero/nido/internal/transfer/store"
	"github.com/nidofinanciero/nido/internal/user"
	userStore "github.com/nidofinanciero/nido/internal/user/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		userService        = user.NewService(userStore.New(db), cfg.DefaultRate())
		transferService    = transfer.NewService(transferStore.New(db))
		transactionService = transaction.NewService(txStore.New(db))
		householdService   = household.NewService(householdStore.New(db), cfg.Ledger.InvitationTTL)
		budgetService      = budget.NewService(budgetStore.New(db), transactionService)
		importService      = importer.NewService()
	)

	var (
		userH      = userHandler.NewHandler(userService)
		transferH  = transferHandler.NewHandler(transferService)
		txH        = txHandler.NewHandler(transactionService, userService)
		householdH = householdHandler.NewHandler(householdService)
		budgetH    = budgetHandler.NewHandler(budgetService, userService)
		importH    = importHandler.NewHandler(importService, transactionService)
	)

	router := nidoHttp.New(nidoHttp.Config{
		JWTSecret:      []byte(cfg.Auth.JWTSecret),
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, userH, transferH, txH, householdH, budgetH, importH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
