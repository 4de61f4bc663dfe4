package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"clinicbook/backend/internal/auth"
	"clinicbook/backend/internal/config"
	"clinicbook/backend/internal/domain"
	"clinicbook/backend/internal/service/accounts"
	"clinicbook/backend/internal/service/bookings"
	"clinicbook/backend/internal/store"
	"clinicbook/backend/internal/store/memory"
	"clinicbook/backend/internal/store/postgres"
	grpcTransport "clinicbook/backend/internal/transport/grpc"
	"clinicbook/backend/internal/transport/httpapi"
)

func serveCmd() *cobra.Command {
	var autoMigrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP and gRPC servers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(autoMigrate)
		},
	}
	cmd.Flags().BoolVar(&autoMigrate, "migrate", false, "apply pending migrations before serving (postgres only)")
	return cmd
}

type stores struct {
	bookings store.BookingRepository
	users    store.UserRepository
	ready    func(ctx context.Context) error
	close    func()
}

func runServer(autoMigrate bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log := newLogger(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("http_addr", cfg.HTTPAddr).
		Str("grpc_addr", cfg.GRPCAddr).
		Str("database_driver", cfg.DatabaseDriver).
		Str("log_level", cfg.LogLevel).
		Msg("starting")

	schedule, err := buildSchedule(cfg)
	if err != nil {
		return fmt.Errorf("clinic schedule: %w", err)
	}

	tokens, err := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL, cfg.Issuer)
	if err != nil {
		return err
	}

	st, err := openStores(cfg, log, autoMigrate)
	if err != nil {
		return err
	}
	defer st.close()

	bookingSvc := bookings.NewService(st.bookings, schedule, bookings.Options{
		StrictGrid:   cfg.StrictGrid,
		MaxRangeDays: cfg.MaxRangeDays,
	})
	accountSvc := accounts.NewService(st.users, tokens, accounts.Options{})

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
	created, err := accountSvc.EnsureAdmin(seedCtx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
	cancelSeed()
	switch {
	case err != nil:
		log.Error().Err(err).Str("admin_email", cfg.AdminEmail).Msg("admin seed failed")
	case created:
		log.Info().Str("admin_email", cfg.AdminEmail).Msg("admin user seeded")
	}

	httpSrv := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: httpapi.NewServer(bookingSvc, accountSvc, tokens, httpapi.Options{
			CORSOrigins:    cfg.CORSOrigins,
			RequestTimeout: cfg.HTTPRequestTimeout,
			RateLimit:      cfg.RateLimitRPS,
			RateBurst:      cfg.RateLimitBurst,
			Ready:          st.ready,
		}, log).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	healthSrv := health.NewServer()
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpcTransport.RequestTimeoutInterceptor(cfg.GRPCRequestTimeout),
			grpcTransport.AuthInterceptor(tokens, grpcTransport.PublicMethods...),
		),
	)
	grpcTransport.RegisterBookingsServiceServer(grpcServer, grpcTransport.NewBookingsServer(bookingSvc, log))
	healthpb.RegisterHealthServer(grpcServer, healthSrv)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("grpc listen on %s: %w", cfg.GRPCAddr, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	go func() {
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errCh <- fmt.Errorf("grpc server: %w", err)
		}
	}()
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	log.Info().Str("grpc_addr", cfg.GRPCAddr).Str("http_addr", cfg.HTTPAddr).Msg("servers started")

	var runErr error
	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case runErr = <-errCh:
		log.Error().Err(runErr).Msg("server stopped with error")
	}

	healthSrv.Shutdown()
	shutdown(log, httpSrv, grpcServer, cfg.ShutdownTimeout)
	return runErr
}

func openStores(cfg config.Config, log zerolog.Logger, autoMigrate bool) (stores, error) {
	if cfg.DatabaseDriver == config.DriverMemory {
		log.Warn().Msg("using in-memory store; data is lost on restart")
		return stores{
			bookings: memory.NewBookingRepo(),
			users:    memory.NewUserRepo(),
			close:    func() {},
		}, nil
	}

	db, err := openDatabase(cfg, log)
	if err != nil {
		return stores{}, err
	}

	if autoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		group, err := postgres.Migrate(ctx, db)
		cancel()
		if err != nil {
			_ = postgres.Close(db)
			return stores{}, fmt.Errorf("migrate: %w", err)
		}
		logMigrationGroup(log, "migrated", group)
	}

	return stores{
		bookings: postgres.NewBookingRepo(db),
		users:    postgres.NewUserRepo(db),
		ready: func(ctx context.Context) error {
			return postgres.Ping(ctx, db)
		},
		close: func() {
			if err := postgres.Close(db); err != nil {
				log.Warn().Err(err).Msg("database close failed")
			}
		},
	}, nil
}

func buildSchedule(cfg config.Config) (domain.Schedule, error) {
	loc, err := time.LoadLocation(cfg.ClinicTimezone)
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("timezone %q: %w", cfg.ClinicTimezone, err)
	}
	s := domain.Schedule{
		Location:     loc,
		Open:         cfg.ClinicOpen,
		Close:        cfg.ClinicClose,
		SlotDuration: cfg.SlotDuration,
	}
	if err := s.Validate(); err != nil {
		return domain.Schedule{}, err
	}
	return s, nil
}

func shutdown(log zerolog.Logger, httpSrv *http.Server, grpcSrv *grpc.Server, timeout time.Duration) {
	log.Info().Dur("timeout", timeout).Msg("shutting down servers")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("http graceful shutdown failed; closing")
		_ = httpSrv.Close()
	} else {
		log.Info().Msg("http server stopped")
	}

	done := make(chan struct{})
	go func() {
		grpcSrv.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		log.Info().Msg("grpc server stopped")
	case <-ctx.Done():
		log.Warn().Msg("grpc graceful shutdown timed out; forcing stop")
		grpcSrv.Stop()
	}
}
