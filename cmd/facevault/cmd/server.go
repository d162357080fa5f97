package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"facevault/api"
	"facevault/internal/logging"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Serve the vault API on localhost",
	Long: `Exposes the vault's operations over a local HTTP API for a browser
front-end. The face-embedding model runs client-side; the API only ever
receives embedding vectors.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

		a := api.New(app.store,
			api.WithLogger(log),
			api.WithThreshold(viper.GetFloat64("threshold")),
			api.WithSessionDuration(sessionDuration()),
		)

		r := chi.NewRouter()
		r.Use(middleware.Logger)
		r.Use(middleware.Recoverer)

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("OK"))
		})
		r.Mount("/api/v1", a.Router())

		addr := viper.GetString("listen")
		server := &http.Server{
			Addr:              addr,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		// Graceful shutdown on SIGINT/SIGTERM.
		done := make(chan error, 1)
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				done <- fmt.Errorf("server failed: %w", err)
				return
			}
			done <- nil
		}()

		printBanner()
		fmt.Printf("Serving on http://%s ...\n", addr)

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			fmt.Printf("\nReceived %s, shutting down...\n", sig)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("server shutdown failed: %w", err)
			}
			return nil
		case err := <-done:
			return err
		}
	},
}

func init() {
	serverCmd.Flags().String("listen", "", "address to listen on (host:port)")
	viper.BindPFlag("listen", serverCmd.Flags().Lookup("listen"))
	rootCmd.AddCommand(serverCmd)
}
