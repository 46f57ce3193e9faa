// Command server wires the durable stores to the matching core and exposes
// the HTTP surface of spec §6.1. The HTTP layer itself is a thin adapter —
// validation, decoding and status-code mapping only — over the core
// (internal/engine, internal/service), the way the teacher's
// cmd/server/main.go stays a thin Server wrapper over internal/engine.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"order-matching-engine/internal/card"
	"order-matching-engine/internal/config"
	"order-matching-engine/internal/engine"
	"order-matching-engine/internal/logging"
	"order-matching-engine/internal/mysqlstore"
	"order-matching-engine/internal/service"
	"order-matching-engine/internal/store"
)

// server bundles the query facade and order service behind the HTTP
// handlers, mirroring the teacher's Server struct in cmd/server/main.go.
type server struct {
	orders  *service.OrderService
	queries *service.Queries
}

func main() {
	migrate := flag.Bool("migrate", false, "apply internal/mysqlstore/schema.sql before starting")
	flag.Parse()

	logging.Init(os.Getenv("DEBUG") != "")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	database, err := mysqlstore.Connect()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer database.Close()
	log.Info().Msg("database connection established")

	if *migrate {
		if err := mysqlstore.ApplySchema(context.Background(), database); err != nil {
			log.Fatal().Err(err).Msg("failed to apply schema")
		}
		log.Info().Msg("schema applied")
	}

	traderStore := mysqlstore.NewTraderStore(database)
	orderStore, err := mysqlstore.NewOrderStore(database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to prepare order store")
	}
	defer orderStore.Close()
	tradeStore, err := mysqlstore.NewTradeStore(database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to prepare trade store")
	}
	defer tradeStore.Close()

	log.Info().Msg("loading pending orders from database")
	manager, err := engine.LoadFromStore(context.Background(), orderStore)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to rehydrate order manager")
	}

	srv := &server{
		orders:  service.NewOrderService(traderStore, orderStore, tradeStore, manager),
		queries: service.NewQueries(traderStore, orderStore, tradeStore),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/traders/{id}/orders", srv.handleListOrders)
	mux.HandleFunc("POST /api/traders/{id}/orders", srv.handleCreateOrder)
	mux.HandleFunc("DELETE /api/traders/{id}/orders/{order_id}", srv.handleCancelOrderStub)
	mux.HandleFunc("GET /api/cards/{id}/trades", srv.handleListTrades)
	mux.HandleFunc("GET /api/health", srv.handleHealth)

	httpServer := &http.Server{
		Addr:    cfg.Host + ":" + cfg.Port,
		Handler: mux,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info().Str("addr", httpServer.Addr).Msg("server starting")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-stop
	log.Info().Msg("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	} else {
		log.Info().Msg("server gracefully stopped")
	}
}

// createOrderRequest is the POST body of spec §6.1.
type createOrderRequest struct {
	Side   string `json:"side"`
	Price  int32  `json:"price"`
	CardID int32  `json:"card_id"`
}

// orderResponse is the GET /api/traders/{id}/orders JSON shape. PriceDisplay
// renders alongside the raw cents so clients never have to reimplement the
// cents-to-dollars formatting themselves.
type orderResponse struct {
	ID            int64  `json:"id"`
	CardID        int32  `json:"card_id"`
	Price         int32  `json:"price"`
	PriceDisplay  string `json:"price_display"`
	Side          string `json:"side"`
	Status        string `json:"status"`
	TraderID      int64  `json:"trader_id"`
	CreatedAtUnix int64  `json:"created_at"`
}

func newOrderResponse(o store.Order) orderResponse {
	return orderResponse{
		ID:            o.ID,
		CardID:        o.CardID,
		Price:         o.Price,
		PriceDisplay:  o.PriceDisplay(),
		Side:          o.Side.String(),
		Status:        o.Status.String(),
		TraderID:      o.TraderID,
		CreatedAtUnix: o.CreatedAt.Unix(),
	}
}

// tradeResponse is the GET /api/cards/{id}/trades JSON shape.
type tradeResponse struct {
	ID            int64  `json:"id"`
	CardID        int32  `json:"card_id"`
	Price         int32  `json:"price"`
	PriceDisplay  string `json:"price_display"`
	BuyOrderID    int64  `json:"buy_order_id"`
	SellOrderID   int64  `json:"sell_order_id"`
	CreatedAtUnix int64  `json:"created_at"`
}

func newTradeResponse(t store.Trade) tradeResponse {
	return tradeResponse{
		ID:            t.ID,
		CardID:        t.CardID,
		Price:         t.Price,
		PriceDisplay:  t.PriceDisplay(),
		BuyOrderID:    t.BuyOrderID,
		SellOrderID:   t.SellOrderID,
		CreatedAtUnix: t.CreatedAt.Unix(),
	}
}

func (s *server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	traderID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid trader id", http.StatusBadRequest)
		return
	}

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	side, ok := engine.ParseSide(req.Side)
	if !ok {
		http.Error(w, `side must be "buy" or "sell"`, http.StatusBadRequest)
		return
	}
	if !card.Valid(req.CardID) {
		http.Error(w, "unknown card_id", http.StatusBadRequest)
		return
	}

	if err := s.orders.AddOrder(r.Context(), traderID, side, req.Price, req.CardID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s *server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	traderID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid trader id", http.StatusBadRequest)
		return
	}

	orders, err := s.queries.OrdersByTrader(r.Context(), traderID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := make([]orderResponse, len(orders))
	for i, o := range orders {
		resp[i] = newOrderResponse(o)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (s *server) handleListTrades(w http.ResponseWriter, r *http.Request) {
	cardID, err := strconv.ParseInt(r.PathValue("id"), 10, 32)
	if err != nil {
		http.Error(w, "invalid card id", http.StatusBadRequest)
		return
	}

	trades, err := s.queries.TradesByCard(r.Context(), int32(cardID))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := make([]tradeResponse, len(trades))
	for i, t := range trades {
		resp[i] = newTradeResponse(t)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// handleCancelOrderStub implements the deliberately unimplemented DELETE
// endpoint (spec §9's open question): it returns 204 and has no other
// effect. No cancellation semantics are inferred.
func (s *server) handleCancelOrderStub(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("alive"))
}

// writeServiceError maps the service package's sentinel errors onto the
// status codes of spec §7.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrTraderMissing):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		log.Error().Err(err).Msg("request failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
