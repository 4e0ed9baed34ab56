package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/splitty/splitty/internal/api"
	"github.com/splitty/splitty/internal/currency"
	"github.com/splitty/splitty/internal/middleware"
	"github.com/splitty/splitty/internal/service"
	"github.com/splitty/splitty/internal/storage/sqlite"
	"github.com/splitty/splitty/pkg/logging"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	logging.Setup()

	dbPath := getEnv("DB_PATH", "./data/splitty.db")
	ratesURL := getEnv("RATES_URL", "https://api.frankfurter.dev/v1")
	defaultCurrency := getEnv("DISPLAY_CURRENCY", "EUR")
	port := getEnv("PORT", "8080")

	store, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", dbPath)

	// Rates for past dates never change, so one process-lifetime cache in
	// front of the HTTP client is enough.
	rates := currency.NewCachedSource(currency.NewClient(ratesURL))
	converter := currency.NewConverter(rates)

	svc := service.NewEventService(store, converter)

	mux := http.NewServeMux()
	api.NewServer(svc, defaultCurrency).Register(mux)
	mux.Handle("GET /metrics", promhttp.Handler())

	handler := middleware.Logging(middleware.Metrics(middleware.CORS(mux)))

	// h2c serves HTTP/2 without TLS; TLS termination belongs to the proxy in
	// front of this server.
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	addr := ":" + port
	slog.Info("Server starting", "address", addr, "display_currency", defaultCurrency, "rates_url", ratesURL)
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
