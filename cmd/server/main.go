package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"artesanos-be/internal/cart"
	"artesanos-be/internal/config"
	"artesanos-be/internal/customer"
	"artesanos-be/internal/db"
	"artesanos-be/internal/httpx"
	"artesanos-be/internal/inventory"
	"artesanos-be/internal/logger"
	"artesanos-be/internal/metrics"
	"artesanos-be/internal/notification"
	"artesanos-be/internal/order"
	"artesanos-be/internal/product"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	engine := metrics.NewEngine()

	emitter := notification.NewEmitter(notification.Config{
		Enabled: cfg.BrokerEnabled,
		Brokers: cfg.BrokerAddrs,
		Topic:   cfg.BrokerTopic,
	}, engine)
	defer emitter.Close()

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService()
	inventoryRepo := inventory.NewRepository(database)
	inventorySvc := inventory.NewService(database, inventoryRepo)
	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(database, cartRepo, cartSvc, inventoryRepo, orderRepo, emitter, engine)
	productRepo := product.NewRepository(database)
	customerRepo := customer.NewRepository(database)

	router := httpx.NewRouter()
	(&httpx.OrdersHandler{Orders: orderSvc}).Register(router)
	(&httpx.CartsHandler{Carts: cartRepo}).Register(router)
	(&httpx.CatalogHandler{
		Products:  productRepo,
		Inventory: inventoryRepo,
		Stock:     inventorySvc,
		Customers: customerRepo,
	}).Register(router)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: router,
	}

	go func() {
		log.Printf("order engine listening on :%s", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
