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
	_ "time/tzdata"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"google.golang.org/grpc"

	pb "booking-wizard/api/scheduling/v1"
	"booking-wizard/internal/availability"
	"booking-wizard/internal/calendar"
	"booking-wizard/internal/config"
	gweb "booking-wizard/internal/grpcweb"
	"booking-wizard/internal/handler"
	"booking-wizard/internal/logging"
	"booking-wizard/internal/metrics"
	"booking-wizard/internal/middleware"
	"booking-wizard/internal/scheduler"
	"booking-wizard/internal/session"
	"booking-wizard/internal/store"
	"booking-wizard/internal/web"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger := logging.New(cfg.LogLevel)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewWizardMetrics(reg)

	var hostTable availability.DayReader
	if cfg.DatabaseURL != "" {
		pool, err := openDatabase(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			fatal(logger, "db", err)
		}
		defer pool.Close()
		hostTable = store.New(pool)
	}
	src := sources(cfg, hostTable)

	sessions, closeSessions, err := openSessions(ctx, cfg, logger)
	if err != nil {
		fatal(logger, "sessions", err)
	}
	defer closeSessions()

	svc := scheduler.New(scheduler.Options{
		Sources:       src,
		Sessions:      sessions,
		Location:      cfg.Location(),
		TimezoneLabel: cfg.TimezoneLabel,
		InviteDomain:  cfg.InviteDomain,
		Logger:        logger,
		Metrics:       m,
	})

	// grpc server
	rl := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer rl.Close()
	srv := grpc.NewServer(
		grpc.ForceServerCodec(pb.Codec{}),
		grpc.ChainUnaryInterceptor(
			middleware.Recovery(logger),
			middleware.UnaryLogger(logger, m),
			middleware.RateLimit(rl),
			middleware.Session(cfg.SessionSecret),
		),
	)
	pb.RegisterSchedulingServiceServer(srv, handler.New(svc, cfg.SessionSecret))

	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		fatal(logger, "listen", err)
	}
	go func() {
		logger.Info("grpc listening", "port", cfg.GRPCPort)
		if err := srv.Serve(lis); err != nil {
			logger.Error("grpc serve", "error", err)
		}
	}()

	// grpc-web bridge -> forwards browser calls to the grpc listener
	bridge, err := gweb.New("localhost:"+cfg.GRPCPort, logger)
	if err != nil {
		fatal(logger, "bridge", err)
	}
	defer bridge.Close()

	pages, err := web.New(web.Options{
		Service:      svc,
		Secret:       cfg.SessionSecret,
		Logger:       logger,
		SecureCookie: cfg.SecureCookies,
		Limiter:      rl,
	})
	if err != nil {
		fatal(logger, "templates", err)
	}

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(cfg, logger, m, reg, rl, pages, bridge),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		logger.Info("http listening", "port", cfg.Port)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}
	srv.GracefulStop()
	logger.Info("stopped")
}

// sources picks each view's availability: configured monthly dates, the host table for the
// weekly view when a database is present, and the placeholder for the column view.
func sources(cfg *config.Config, hostTable availability.DayReader) calendar.Sources {
	src := calendar.DefaultSources(cfg.ColumnAvailabilitySeed, cfg.ColumnAvailabilityRatio)
	if len(cfg.MonthlyAvailableDates) > 0 {
		src.Monthly = availability.NewDates(cfg.MonthlyAvailableDates...)
	}
	if hostTable != nil {
		src.Weekly = availability.Stored{Reader: hostTable}
	}
	return src
}

func openDatabase(ctx context.Context, url string, logger *logging.Logger) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	logger.Info("connected to postgres")

	// run migrations
	if schema, err := os.ReadFile("db/migrations/001_init.sql"); err != nil {
		logger.Warn("migration file not found, skipping", "error", err)
	} else if err := store.New(pool).Migrate(ctx, string(schema)); err != nil {
		logger.Warn("migration failed", "error", err)
	} else {
		logger.Info("migration applied")
	}
	return pool, nil
}

// openSessions prefers Redis so several processes can share sessions; otherwise sessions live
// in memory and a sweeper drops the expired ones.
func openSessions(ctx context.Context, cfg *config.Config, logger *logging.Logger) (session.Store, func(), error) {
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, err
		}
		logger.Info("sessions in redis", "addr", cfg.RedisAddr)
		return session.NewRedisStore(client, cfg.SessionTTL), func() { client.Close() }, nil
	}

	mem := session.NewMemoryStore(cfg.SessionTTL)
	done := make(chan struct{})
	go func() {
		t := time.NewTicker(time.Minute)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				if n := mem.Sweep(); n > 0 {
					logger.Debug("expired sessions swept", "count", n)
				}
			case <-done:
				return
			}
		}
	}()
	return mem, func() { close(done) }, nil
}

func fatal(logger *logging.Logger, what string, err error) {
	logger.Error(what, "error", err)
	os.Exit(1)
}
