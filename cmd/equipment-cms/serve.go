package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/forgeline/equipment-cms/config"
	"github.com/forgeline/equipment-cms/internal/auth"
	"github.com/forgeline/equipment-cms/internal/broker"
	"github.com/forgeline/equipment-cms/internal/dashboard"
	"github.com/forgeline/equipment-cms/internal/httpx"
	"github.com/forgeline/equipment-cms/internal/metrics"
	"github.com/forgeline/equipment-cms/internal/site"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	catH "github.com/forgeline/equipment-cms/internal/category/handler"
	compH "github.com/forgeline/equipment-cms/internal/component/handler"
	editorH "github.com/forgeline/equipment-cms/internal/editor/handler"
	inqH "github.com/forgeline/equipment-cms/internal/inquiry/handler"
	inqListenerPkg "github.com/forgeline/equipment-cms/internal/inquiry/listener"
	mediaH "github.com/forgeline/equipment-cms/internal/media/handler"
	newsH "github.com/forgeline/equipment-cms/internal/news/handler"
	prodH "github.com/forgeline/equipment-cms/internal/product/handler"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the public site, the admin API and the health endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(config.LoadEnv())
		},
	}
}

func serve(cfg *config.Config) error {
	appLogger := newLogger(cfg)
	defer appLogger.Sync()

	a, err := newApp(cfg, appLogger)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	applied, err := migrateDB(ctx, a)
	if err != nil {
		return err
	}
	if len(applied) > 0 {
		appLogger.Info("Applied migrations", zap.Strings("versions", applied))
	}

	handler, err := buildRoutes(a)
	if err != nil {
		return err
	}
	httpServer := &http.Server{
		Addr:              cfg.Server.HTTPPort,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	reflection.Register(grpcServer)

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Kafka.Enabled {
		consumer := broker.NewConsumer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.InquiryTopic,
			GroupID: cfg.Kafka.GroupID,
		})
		defer consumer.Close()
		appLogger.Info("Connected to Kafka Consumer", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.InquiryTopic))

		listener := inqListenerPkg.NewInquiryListener(consumer, a.inquiries, appLogger)
		g.Go(func() error {
			listener.Start(gctx)
			return nil
		})
	}

	g.Go(func() error {
		appLogger.Info("HTTP server listening", zap.String("addr", cfg.Server.HTTPPort))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		lis, err := net.Listen("tcp", cfg.Server.GRPCPort)
		if err != nil {
			return err
		}
		appLogger.Info("gRPC health server listening", zap.String("addr", cfg.Server.GRPCPort))
		return grpcServer.Serve(lis)
	})

	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down servers...")
		healthServer.Shutdown()

		shutdownCtx, cancel := withTimeout(cfg.Server.ShutdownTimeout)
		defer cancel()
		err := httpServer.Shutdown(shutdownCtx)
		grpcServer.GracefulStop()
		return err
	})

	if err := g.Wait(); err != nil {
		appLogger.Error("Server stopped with error", zap.Error(err))
		return err
	}
	appLogger.Info("Server exiting")
	return nil
}

// buildRoutes mounts the public site at / and the admin API under /admin/,
// which requires a bearer token carrying the admin role.
func buildRoutes(a *app) (http.Handler, error) {
	cfg := a.cfg

	admin := http.NewServeMux()
	catH.NewCategoryHandler(a.categories, a.logger).Register(admin)
	compH.NewComponentHandler(a.components, a.logger).Register(admin)
	prodH.NewProductHandler(a.products, a.logger).Register(admin)
	newsH.NewNewsHandler(a.news, a.logger).Register(admin)
	inqH.NewInquiryHandler(a.inquiries, a.logger).Register(admin)
	mediaH.NewMediaHandler(a.media, cfg.Server.MaxUploadBytes, a.logger).Register(admin)
	editorH.NewEditorHandler(a.components, a.media, cfg.Server.MaxUploadBytes, a.logger).Register(admin)
	dashboard.NewHandler(dashboard.Sources{
		Products:   a.products,
		Components: a.components,
		News:       a.news,
		Inquiries:  a.inquiries,
	}, a.logger).Register(admin)

	verifier := auth.NewVerifier(cfg.JWT.SecretKey, cfg.JWT.Issuer)

	content, err := site.LoadContent(cfg.Site.ContentFile)
	if err != nil {
		return nil, err
	}
	if cfg.Site.CompanyName != "" {
		content.Company.Name = cfg.Site.CompanyName
	}
	pages, err := site.New(content, a.products, a.components, a.news, a.categories, a.logger)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	pages.Register(mux)
	trusted, err := httpx.ParseTrustedProxies(cfg.RateLimit.TrustedProxies)
	if err != nil {
		return nil, err
	}
	limiter := httpx.NewIPLimiter(cfg.RateLimit.InquiriesPerMinute, cfg.RateLimit.Burst, trusted)
	inqH.NewSubmitHandler(a.inquiries, limiter, a.logger).Register(mux)
	mux.Handle("/admin/", httpx.Chain(admin, verifier.Middleware, auth.RequireRole(cfg.JWT.AdminRole)))
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.db.PingContext(ctx); err != nil {
			httpx.WriteStatus(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.Storage.Driver == "local" || cfg.Storage.Driver == "" {
		mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Storage.LocalDir))))
	}

	return httpx.Chain(mux, httpx.Recover(a.logger), httpx.AccessLog(a.logger), metrics.Middleware), nil
}
