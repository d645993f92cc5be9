package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"

	config "github.com/vigneshcj001/Business-Card-Scanner/configs"
	"github.com/vigneshcj001/Business-Card-Scanner/internal/cardui/backend"
	uiconfig "github.com/vigneshcj001/Business-Card-Scanner/internal/cardui/config"
	handlers "github.com/vigneshcj001/Business-Card-Scanner/internal/cardui/handlers"
	"github.com/vigneshcj001/Business-Card-Scanner/internal/cardui/service"
	"github.com/vigneshcj001/Business-Card-Scanner/internal/cardui/ws"
	log "github.com/sirupsen/logrus"
)

const SERVICE_NAME = "cardui"

func init() {
	config.Logging(SERVICE_NAME + "_service")
	config.LoadEnv(SERVICE_NAME)
	config.CreateUniqueInstance(SERVICE_NAME)
}

func main() {
	cfg := uiconfig.Load()

	client := backend.NewClient(cfg.BackendURL)
	cardService := service.NewCardService(client)
	hub := ws.NewHub()

	log.Infof("card backend set to %s", cfg.BackendURL)

	// Setup router
	r := chi.NewRouter()
	c := config.CORS()

	// Middleware. The request timeout has to outlive the 120s OCR upload
	// round trip.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(150 * time.Second))
	r.Use(c.Handler)

	// to protect the service api from any over requests
	r.Use(httprate.LimitByIP(cfg.RateLimit, 1*time.Minute))

	// Init handlers and routes
	h := handlers.NewHandler(cardService, hub)
	h.SetRoutes(r)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  180 * time.Second,
		WriteTimeout: 180 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s", SERVICE_NAME, server.Addr)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
