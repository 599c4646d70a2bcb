package router

import (
	"context"
	"strings"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/amit-tzadok/LDR/internal/api/grpc/handler"
	"github.com/amit-tzadok/LDR/internal/api/grpc/middleware"
	"github.com/amit-tzadok/LDR/internal/api/grpc/proto"
	"github.com/amit-tzadok/LDR/internal/logger"
	"github.com/amit-tzadok/LDR/internal/model"
)

// Services groups the application services the router exposes.
type Services struct {
	Auth       handler.AuthService
	Space      handler.SpaceService
	Reconciler handler.Reconciler
	Profile    interface {
		handler.ProfileService
		handler.MetaBackfiller
	}
	Item   handler.ItemService
	Tokens middleware.TokenService
}

// Router wires handlers and interceptors into a gRPC server.
type Router struct {
	services       Services
	contextManager model.ContextManager
	logger         *logger.Logger
	health         *health.Server
	serviceNames   []string
}

func New(services Services, contextManager model.ContextManager, logger *logger.Logger) *Router {
	return &Router{
		services:       services,
		contextManager: contextManager,
		logger:         logger,
		health:         health.NewServer(),
	}
}

// publicPrefixes are method prefixes callable without an access token.
var publicPrefixes = []string{
	"/ldr.Auth/",
	"/grpc.health.v1.Health/",
	"/grpc.reflection.",
}

func authSkip(_ context.Context, c interceptors.CallMeta) bool {
	for _, p := range publicPrefixes {
		if strings.HasPrefix(c.FullMethod(), p) {
			return false
		}
	}
	return true
}

// Register builds the gRPC server with logging, recovery and authentication
// interceptors and all ldr services registered.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	recoverer := middleware.NewRecovery(r.logger)
	authenticate := middleware.NewAuthenticate(r.services.Tokens, r.contextManager, r.logger)

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			recovery.UnaryServerInterceptor(recoverer.Option()),
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(authSkip),
			),
		),
		grpc.ChainStreamInterceptor(
			logging.HandleStream,
			recovery.StreamServerInterceptor(recoverer.Option()),
			selector.StreamServerInterceptor(
				auth.StreamServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(authSkip),
			),
		),
	)

	proto.RegisterAuthServer(s, handler.NewAuth(r.services.Auth, r.logger))
	proto.RegisterSpacesServer(s, handler.NewSpace(r.services.Space, r.services.Reconciler, r.services.Profile, r.contextManager, r.logger))
	proto.RegisterProfilesServer(s, handler.NewProfile(r.services.Profile, r.contextManager, r.logger))
	proto.RegisterItemsServer(s, handler.NewItem(r.services.Item, r.contextManager, r.logger))

	healthpb.RegisterHealthServer(s, r.health)
	r.serviceNames = []string{""}
	for name := range s.GetServiceInfo() {
		r.serviceNames = append(r.serviceNames, name)
	}
	r.setServingStatus(healthpb.HealthCheckResponse_SERVING)
	reflection.Register(s)

	return s
}

// WatchHealth runs check every interval until ctx is done and reports every
// service as not serving while it fails. Call it after Register.
func (r *Router) WatchHealth(ctx context.Context, interval time.Duration, check func(context.Context) error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	healthy := true
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		checkCtx, cancel := context.WithTimeout(ctx, interval)
		err := check(checkCtx)
		cancel()

		switch {
		case err != nil && healthy:
			r.logger.Warn("health check failed, reporting not serving",
				"error", err)
			r.setServingStatus(healthpb.HealthCheckResponse_NOT_SERVING)
			healthy = false
		case err == nil && !healthy:
			r.logger.Info("health check recovered")
			r.setServingStatus(healthpb.HealthCheckResponse_SERVING)
			healthy = true
		}
	}
}

func (r *Router) setServingStatus(status healthpb.HealthCheckResponse_ServingStatus) {
	for _, name := range r.serviceNames {
		r.health.SetServingStatus(name, status)
	}
}

// Shutdown reports every service as not serving.
func (r *Router) Shutdown() {
	r.health.Shutdown()
}
