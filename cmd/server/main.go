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

	"github.com/jackc/pgx/v5/pgxpool"
	"google.golang.org/grpc"

	"social-scheduler-api/internal/account"
	"social-scheduler-api/internal/auth"
	"social-scheduler-api/internal/config"
	"social-scheduler-api/internal/follow"
	"social-scheduler-api/internal/grpcweb"
	"social-scheduler-api/internal/handler"
	"social-scheduler-api/internal/httpapi"
	"social-scheduler-api/internal/meeting"
	"social-scheduler-api/internal/middleware"
	"social-scheduler-api/internal/notify"
	"social-scheduler-api/internal/rpc"
	"social-scheduler-api/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "server:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := cfg.NewLogger(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// database
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}
	log.Info("connected to postgres")

	st := store.New(pool)
	if cfg.MigrateOnStart {
		if err := st.Migrate(ctx); err != nil {
			return err
		}
		log.Info("migration applied")
	}

	// services
	iss := auth.NewIssuer(cfg.JWTSecret, cfg.AccessTokenTTL)
	hub := notify.NewHub(log, cfg.CORSOrigins)
	accounts := account.NewService(st, log, cfg.DeletionGraceDays)
	sessions := account.NewSessions(st, iss, cfg.RefreshTokenTTL, log)
	meetings := meeting.NewService(st, log, meeting.WithNotifier(hub))
	follows := follow.NewService(st, log)

	if err := accounts.EnsureSuperuser(ctx, account.RegisterInput{
		Email:    cfg.FirstSuperuser,
		Account:  cfg.FirstSuperuserAccount,
		Password: cfg.FirstSuperuserPassword,
	}); err != nil {
		return fmt.Errorf("seed superuser: %w", err)
	}

	h := handler.New(accounts, sessions, meetings, follows, log)

	// grpc server and grpc-web bridge share the interceptor chain
	rl := middleware.NewRateLimiter(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst)
	chain := middleware.Chain(log, rl, middleware.Auth(iss))
	srv := grpc.NewServer(
		grpc.ForceServerCodec(rpc.Codec{}),
		grpc.UnaryInterceptor(chain),
	)
	bridge := grpcweb.New(chain, log)
	h.RegisterServices(srv)
	h.RegisterServices(bridge)

	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	go func() {
		log.Info("grpc listening", "port", cfg.GRPCPort)
		if err := srv.Serve(lis); err != nil {
			log.Error("grpc stopped", "err", err)
		}
	}()

	httpSrv := &http.Server{
		Addr: ":" + cfg.WebPort,
		Handler: httpapi.NewRouter(httpapi.Options{
			DB:              st,
			Meetings:        meetings,
			Issuer:          iss,
			Bridge:          bridge,
			Hub:             hub,
			Log:             log,
			CORSOrigins:     cfg.CORSOrigins,
			MeetingDuration: cfg.MeetingDuration,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info("http listening", "port", cfg.WebPort)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http stopped", "err", err)
		}
	}()

	// graceful shutdown
	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", "err", err)
	}
	srv.GracefulStop()
	return nil
}
