package api

import (
	"net/http"

	"github.com/tstocks/client-go/internal/handler"
	"github.com/tstocks/client-go/session"

	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRouter sets up router with handlers
func SetupRouter(s *session.Session) http.Handler {
	sessionHandler := handler.NewSessionHandler(s)

	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Wallet endpoints
	mux.HandleFunc("/wallet", sessionHandler.Wallet)
	mux.HandleFunc("/wallet/connect", sessionHandler.Connect)
	mux.HandleFunc("/wallet/connect/extension", sessionHandler.ConnectExtension)
	mux.HandleFunc("/wallet/import", sessionHandler.Import)
	mux.HandleFunc("/wallet/disconnect", sessionHandler.Disconnect)
	mux.HandleFunc("/wallet/export", sessionHandler.Export)
	mux.HandleFunc("/wallet/restore", sessionHandler.Restore)

	// Market and account endpoints
	mux.HandleFunc("/market/prices", sessionHandler.Prices)
	mux.HandleFunc("/account/positions", sessionHandler.Positions)
	mux.HandleFunc("/account/history", sessionHandler.History)

	// Trade endpoints
	mux.HandleFunc("/trade/spot/buy", sessionHandler.SpotBuy)
	mux.HandleFunc("/trade/spot/sell", sessionHandler.SpotSell)
	mux.HandleFunc("/trade/margin/buy", sessionHandler.MarginBuy)

	return mux
}
