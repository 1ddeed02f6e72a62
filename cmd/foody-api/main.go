// Command foody-api serves the Foody restaurant ordering API.
//
// @title        Foody API
// @version      1.0
// @description  Dine-in ordering: menu, cart, orders, bills, reviews and announcements.
// @BasePath     /
//
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/foody-app/foody-api/internal/announcement"
	"github.com/foody-app/foody-api/internal/config"
	"github.com/foody-app/foody-api/internal/db"
	"github.com/foody-app/foody-api/internal/events"
	"github.com/foody-app/foody-api/internal/live"
	"github.com/foody-app/foody-api/internal/mail"
	"github.com/foody-app/foody-api/internal/memstore"
)

func main() {
	cfg := config.Load()
	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		s    stores
		pool *pgxpool.Pool
		mc   *mongo.Client
	)
	switch cfg.StoreDriver {
	case "memory":
		log.Printf("[store] using in-memory store")
		s = memStores(memstore.New())
	case "postgres":
		var err error
		pool, err = db.Connect(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("postgres: %v", err)
		}
		if err := db.Migrate(ctx, pool); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		s = pgStores(pool)

		mc, err = announcement.Connect(ctx, cfg.MongoURI)
		if err != nil {
			log.Fatalf("mongo: %v", err)
		}
		repo := announcement.NewMongoRepo(mc.Database(cfg.MongoDB))
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Fatalf("mongo indexes: %v", err)
		}
		s.announcements = repo
	default:
		log.Fatalf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	var pub events.Publisher
	var amqpPub *events.AMQPPublisher
	if cfg.AMQPURL != "" {
		var err error
		amqpPub, err = events.DialAMQP(cfg.AMQPURL)
		if err != nil {
			log.Fatalf("amqp: %v", err)
		}
		pub = amqpPub
	}

	hub := live.NewHub(cfg.CORSOrigins)
	a := newApp(cfg, s, hub, pub, mail.LogMailer{})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           a.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("foody-api listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http: %v", err)
		}
	}()

	l, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		log.Fatalf("grpc listen: %v", err)
	}
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	gs := grpc.NewServer()
	healthpb.RegisterHealthServer(gs, hs)
	go func() {
		log.Printf("grpc health listening on %s", cfg.GRPCAddr)
		if err := gs.Serve(l); err != nil {
			log.Printf("grpc: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")
	hs.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
	hub.Close()
	gs.GracefulStop()
	if amqpPub != nil {
		amqpPub.Close()
	}
	if mc != nil {
		_ = mc.Disconnect(shutdownCtx)
	}
	if pool != nil {
		pool.Close()
	}
}
