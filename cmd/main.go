package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/amit-tzadok/LDR/database"
	grpcctx "github.com/amit-tzadok/LDR/internal/api/grpc/context"
	"github.com/amit-tzadok/LDR/internal/api/grpc/router"
	grpcServer "github.com/amit-tzadok/LDR/internal/api/grpc/server"
	"github.com/amit-tzadok/LDR/internal/config"
	"github.com/amit-tzadok/LDR/internal/invite"
	"github.com/amit-tzadok/LDR/internal/logger"
	"github.com/amit-tzadok/LDR/internal/model"
	"github.com/amit-tzadok/LDR/internal/notify"
	"github.com/amit-tzadok/LDR/internal/repository/memory"
	"github.com/amit-tzadok/LDR/internal/repository/postgres"
	"github.com/amit-tzadok/LDR/internal/server"
	"github.com/amit-tzadok/LDR/internal/service"
	storage "github.com/amit-tzadok/LDR/internal/storage/minio"
	"github.com/amit-tzadok/LDR/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

type stores struct {
	users         model.UserStore
	profiles      model.ProfileStore
	spaces        model.SpaceStore
	items         model.ItemStore
	refreshTokens model.RefreshTokenStore
	// ping is nil for the in-process store.
	ping  func(context.Context) error
	close func() error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)

	st, err := openStores(ctx, cfg.Database.DSN, logger)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer st.close()

	broker, closeBroker, err := openBroker(ctx, cfg.Redis, logger)
	if err != nil {
		logger.Fatal("failed to initialize broker", "error", err)
	}
	defer closeBroker()

	var avatars model.Storage
	if cfg.Storage.Endpoint != "" {
		client, err := storage.NewClient(ctx, storage.Options{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			UseSSL:    cfg.Storage.UseSSL,
			PublicURL: cfg.Storage.PublicURL,
		})
		if err != nil {
			logger.Fatal("failed to initialize storage client", "error", err)
		}
		avatars = client
	} else {
		logger.Warn("object storage not configured, avatar uploads disabled")
	}

	invites, err := invite.NewGenerator(cfg.Space.InviteCodeLength, cfg.Space.InviteBaseURL)
	if err != nil {
		logger.Fatal("failed to initialize invite generator", "error", err)
	}

	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	sessions := service.NewSessions(tokenManager, st.refreshTokens, cfg.JWT.RefreshTTL, logger)

	reconciler := service.NewReconciler(st.spaces, st.profiles, logger)
	scheduler := service.NewReconcileScheduler(reconciler, cfg.Reconcile.SettleDelay, logger)
	defer scheduler.Close()

	services := router.Services{
		Auth:       service.NewAuth(st.users, sessions, scheduler, logger),
		Space:      service.NewSpace(st.spaces, st.profiles, st.users, invites, broker, cfg.Space.DissolveOnLeave, logger),
		Reconciler: reconciler,
		Profile:    service.NewProfile(st.profiles, st.spaces, avatars, broker, logger),
		Item:       service.NewItem(st.items, st.spaces, broker, logger),
		Tokens:     sessions,
	}

	r := router.New(services, grpcctx.NewManager(), logger)
	grpcServer := grpcServer.NewGRPCServer(r.Register(), fmt.Sprintf(":%s", cfg.GRPC.Port))

	sl := server.NewSecurityLayer(cfg.GRPC.EnableHTTPS, cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName)

	var wg sync.WaitGroup
	if st.ping != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.WatchHealth(ctx, cfg.GRPC.HealthInterval, st.ping)
		}()
	}

	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(grpcServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")
	r.Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := grpcServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", grpcServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

// openStores connects to Postgres and applies migrations, or falls back to
// the in-process store when no DSN is configured.
func openStores(ctx context.Context, dsn string, logger *logger.Logger) (stores, error) {
	if dsn == "" {
		logger.Warn("database DSN not configured, using in-memory store")
		db := memory.NewDB()
		return stores{
			users:         memory.NewUserRepository(db),
			profiles:      memory.NewProfileRepository(db),
			spaces:        memory.NewSpaceRepository(db),
			items:         memory.NewItemRepository(db),
			refreshTokens: memory.NewRefreshTokenRepository(db),
			close:         db.Close,
		}, nil
	}

	if err := database.Migrate(ctx, dsn); err != nil {
		return stores{}, err
	}

	db, err := postgres.NewConnection(ctx, dsn)
	if err != nil {
		return stores{}, err
	}

	return stores{
		users:         postgres.NewUserRepository(db),
		profiles:      postgres.NewProfileRepository(db),
		spaces:        postgres.NewSpaceRepository(db),
		items:         postgres.NewItemRepository(db),
		refreshTokens: postgres.NewRefreshTokenRepository(db),
		ping:          db.Ping,
		close:         db.Close,
	}, nil
}

// openBroker uses Redis pub/sub when an address is configured so Watch
// streams see writes made by other server instances.
func openBroker(ctx context.Context, cfg config.Redis, logger *logger.Logger) (model.Broker, func() error, error) {
	if cfg.Addr == "" {
		b := notify.NewMemoryBroker()
		return b, b.Close, nil
	}

	b, err := notify.NewRedisBroker(ctx, cfg.Addr, cfg.Password, cfg.DB, logger)
	if err != nil {
		return nil, nil, err
	}
	return b, b.Close, nil
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
