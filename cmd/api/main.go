package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/httplog/v3"
	"github.com/insighthr/insighthr-backend-go/internal/config"
	"github.com/insighthr/insighthr-backend-go/internal/domain/access"
	appHTTP "github.com/insighthr/insighthr-backend-go/internal/handler/http"
	"github.com/insighthr/insighthr-backend-go/internal/pkg/cron"
	"github.com/insighthr/insighthr-backend-go/internal/pkg/database"
	"github.com/insighthr/insighthr-backend-go/internal/pkg/jwt"
	"github.com/insighthr/insighthr-backend-go/internal/pkg/ratelimit"
	"github.com/insighthr/insighthr-backend-go/internal/repository/postgresql"
	attendanceService "github.com/insighthr/insighthr-backend-go/internal/service/attendance"
	employeeService "github.com/insighthr/insighthr-backend-go/internal/service/employee"
	kpiService "github.com/insighthr/insighthr-backend-go/internal/service/kpi"
	performanceService "github.com/insighthr/insighthr-backend-go/internal/service/performance"
	userService "github.com/insighthr/insighthr-backend-go/internal/service/user"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level := parseLevel(cfg.App.LogLevel)
	logFormat := httplog.SchemaECS.Concise(!cfg.IsProduction())
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "insighthr"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	transactor := postgresql.NewTransactor(db)
	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	scoreRepo := postgresql.NewScoreRepository(db)
	kpiRepo := postgresql.NewKPIRepository(db)

	resolver := access.NewResolver(cfg.App.Departments)
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.ClockSkew)
	callerResolver := userService.NewCallerResolver(userRepo, employeeRepo)

	userSvc := userService.NewUserService(userRepo, employeeRepo, resolver)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, resolver)
	attendanceSvc := attendanceService.NewAttendanceService(transactor, attendanceRepo, employeeRepo, resolver, cfg.Location())
	scoreSvc := performanceService.NewScoreService(transactor, scoreRepo, employeeRepo, resolver)
	kpiSvc := kpiService.NewKPIService(kpiRepo, resolver)

	kioskLimiter := ratelimit.NewKeyedLimiter(rate.Limit(cfg.Kiosk.RateLimit), cfg.Kiosk.RateBurst, 10*time.Minute)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Logger:         logger,
			LogLevel:       level,
			AllowedOrigins: cfg.CORS.AllowedOrigins,
		},
		JWTService,
		callerResolver,
		kioskLimiter,
		appHTTP.Handlers{
			Attendance:  appHTTP.NewAttendanceHandler(attendanceSvc),
			Employee:    appHTTP.NewEmployeeHandler(employeeSvc),
			KPI:         appHTTP.NewKPIHandler(kpiSvc),
			Performance: appHTTP.NewPerformanceHandler(scoreSvc),
			User:        appHTTP.NewUserHandler(userSvc),
		},
	)

	scheduler := cron.NewScheduler()
	cron.RegisterLimiterSweep(scheduler, kioskLimiter, 5*time.Minute)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Server running", "addr", server.Addr, "timezone", cfg.Location().String(), "departments", cfg.App.Departments)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return scheduler.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
