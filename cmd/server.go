package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"blogapi/database"
	"blogapi/routes"
	"blogapi/services"
	"blogapi/utils"

	_ "blogapi/docs"

	"github.com/spf13/cobra"
)

var autoMigrate bool

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Starts the blog API server",
	Long: `Starts the blog API server. Usage:

	blogapi server --migrate
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		db, err := database.Connect(cfg)
		if err != nil {
			return err
		}
		if autoMigrate {
			if err := database.Migrate(db); err != nil {
				return err
			}
		}

		var revocations services.RevocationStore
		if cfg.RedisAddr != "" {
			client, err := database.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword)
			if err != nil {
				return err
			}
			defer client.Close()
			revocations = services.NewRedisRevocationStore(client)
		} else {
			log.Println("REDIS_ADDR not set, keeping revoked tokens in memory")
			revocations = services.NewMemoryRevocationStore()
		}

		hubService := services.NewHubService()
		go hubService.Run(ctx)

		r := routes.NewRouter(routes.Deps{
			DB:             db,
			Tokens:         utils.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL),
			Revocations:    revocations,
			Hub:            hubService,
			AllowedOrigins: cfg.AllowedOrigins,
		})

		srv := &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Printf("Server starting on port %s", cfg.Port)
			log.Printf("Swagger docs available at: http://localhost:%s/swagger/index.html", cfg.Port)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		log.Println("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().BoolVar(&autoMigrate, "migrate", true, "run schema migrations before serving")
}
