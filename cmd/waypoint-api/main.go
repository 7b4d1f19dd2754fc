// README: Entry point; loads config, wires providers and services, starts the HTTP server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"waypoint/internal/ai"
	"waypoint/internal/config"
	httptransport "waypoint/internal/http"
	"waypoint/internal/logging"
	gmaps "waypoint/internal/maps"
	"waypoint/internal/modules/auth"
	"waypoint/internal/modules/chat"
	"waypoint/internal/modules/places"
)

func main() {
	_ = godotenv.Load()

	log := logging.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var provider ai.Provider
	switch cfg.LLM.Provider {
	case "gemini":
		gemini, err := ai.NewGeminiProvider(ctx, cfg.LLM)
		if err != nil {
			log.Fatalf("gemini init: %v", err)
		}
		defer gemini.Close()
		provider = gemini
	default:
		openaiProvider, err := ai.NewOpenAIProvider(cfg.LLM)
		if err != nil {
			log.Fatalf("llm init: %v", err)
		}
		provider = openaiProvider
	}

	if cfg.Maps.ServerKey == "" {
		log.Fatal("GMAPS_SERVER_KEY is required")
	}
	mapsClient, err := gmaps.NewClient(cfg.Maps.ServerKey)
	if err != nil {
		log.Fatalf("maps init: %v", err)
	}

	geocoder := gmaps.NewGeocodingService(mapsClient, cfg.Maps.Timeout)
	placesSvc := places.NewService(mapsClient, cfg.Maps.EmbedKey, cfg.Maps.Timeout)
	authSvc := auth.NewService(auth.NewStore(), cfg.Auth)
	chatSvc := chat.NewService(provider, geocoder, placesSvc, log)

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Auth:           authSvc,
		Chat:           chatSvc,
		FrontendOrigin: cfg.HTTP.FrontendOrigin,
		Log:            log,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Infof("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
