package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/JuanTorresCortes/auth-server/internal/config"
	"github.com/JuanTorresCortes/auth-server/internal/db"
	"github.com/JuanTorresCortes/auth-server/internal/handler"
	"github.com/JuanTorresCortes/auth-server/internal/job"
	"github.com/JuanTorresCortes/auth-server/internal/middleware"
	"github.com/JuanTorresCortes/auth-server/internal/repo"
	"github.com/JuanTorresCortes/auth-server/internal/schedule"
	"github.com/JuanTorresCortes/auth-server/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "auth-server",
		Short: "task tracking backend server",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.json")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, conn, err := setup(configPath)
			if err != nil {
				return err
			}
			return runServer(cfg, conn)
		},
	}

	rebuildCmd := &cobra.Command{
		Use:   "rebuild-refs",
		Short: "rebuild every user's task reference collection from the tasks table",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, conn, err := setup(configPath)
			if err != nil {
				return err
			}
			maintenance := service.NewMaintenanceService(repo.NewUserRepo(conn), repo.NewTaskRepo(conn))
			return maintenance.ReconcileTaskRefs(cmd.Context())
		},
	}

	rootCmd.AddCommand(runCmd, rebuildCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func setup(configPath string) (*config.Config, *sql.DB, error) {
	if configPath == "" {
		return nil, nil, fmt.Errorf("--config is required")
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger.Init(
		cfg.LogConfig.File,
		cfg.LogConfig.Level,
		int(cfg.LogConfig.FileCount),
		int(cfg.LogConfig.FileSize),
		int(cfg.LogConfig.KeepDays),
		cfg.LogConfig.Console,
	)
	logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

	conn, err := db.Open(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.ApplyMigrations(conn); err != nil {
		return nil, nil, fmt.Errorf("migrations: %w", err)
	}
	return cfg, conn, nil
}

func runServer(cfg *config.Config, conn *sql.DB) error {
	logutil.GetLogger(context.Background()).Info("starting server", zap.Int("port", cfg.Port))

	userRepo := repo.NewUserRepo(conn)
	taskRepo := repo.NewTaskRepo(conn)

	authService := service.NewAuthService(userRepo, []byte(cfg.JWTSecret), time.Hour*time.Duration(cfg.JWTTTLHours))
	taskService := service.NewTaskService(taskRepo, userRepo)
	maintenanceService := service.NewMaintenanceService(userRepo, taskRepo)

	deps := handler.RouterDeps{
		Auth:      handler.NewAuthHandler(authService),
		Tasks:     handler.NewTaskHandler(taskService),
		JWTSecret: []byte(cfg.JWTSecret),
	}

	engine, err := webapi.NewEngine(
		"/",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(cfg.CORSAllowlist),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewCronScheduler()
	if cfg.ReconcileCron != "" {
		if err := scheduler.AddJob(job.NewReconcileJob(maintenanceService), cfg.ReconcileCron); err != nil {
			return fmt.Errorf("schedule reconcile job: %w", err)
		}
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	logutil.GetLogger(ctx).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))

	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
