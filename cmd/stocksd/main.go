// stocksd serves the wallet/session/trade core of the tokenized-stocks
// dashboard over HTTP.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tstocks/client-go/internal/api"
	"github.com/tstocks/client-go/internal/client"
	"github.com/tstocks/client-go/internal/config"
	"github.com/tstocks/client-go/internal/store"
	"github.com/tstocks/client-go/session"
	"github.com/tstocks/client-go/trade"
	"github.com/tstocks/client-go/wallet"

	_ "github.com/tstocks/client-go/docs"
)

// @title        Tstocks Client API
// @version      1.0
// @description  Wallet, market and trade endpoints backing the tokenized-stocks dashboard.
// @BasePath     /
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := config.Init(); err != nil {
		logger.Error("config init failed", "err", err)
		os.Exit(1)
	}

	if config.Get().PromptPassword {
		if err := config.PromptForPassword(); err != nil {
			logger.Error("password prompt failed", "err", err)
			os.Exit(1)
		}
	}

	secretStore := store.New(config.GetStorageDir(), config.GetStorageTag())
	conn := client.NewSolanaClient(config.GetSolanaRPCURL())
	feed := client.NewPriceFeedClient(config.GetPriceAPIBaseURL())
	orders := client.NewOrderAPIClient(config.GetOrderAPIBaseURL())
	accounts := client.NewAccountClient(config.GetAccountAPIBaseURL())

	sess := session.New(session.Deps{
		Store:      session.NewStore(),
		Wallets:    wallet.NewManager(secretStore),
		Reconciler: wallet.NewReconciler(conn, feed),
		Accounts:   accounts,
		Trades:     trade.NewSubmitter(orders),
		Conn:       conn,
		Interval:   config.GetRefreshInterval(),
		Jitter:     config.GetRefreshJitter(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sess.Run(ctx)

	server := &http.Server{
		Addr:    ":" + config.GetPort(),
		Handler: api.SetupRouter(sess),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", "port", config.GetPort())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}
