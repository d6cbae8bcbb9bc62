package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cordial-cms/cordial-cms/api/handlers"
	"github.com/cordial-cms/cordial-cms/config"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var port, backendURL string

	c := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := handlers.App{}
			a.Config = *config.New()
			if port != "" {
				a.Config.Port = port
			}
			if backendURL != "" {
				a.Config.BackendURL = backendURL
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, &a)
		},
	}
	c.Flags().StringVar(&port, "port", "", "port to listen on (default $PORT or 8080)")
	c.Flags().StringVar(&backendURL, "backend-url", "", "CoRDial backend REST API base url (default $CORDIAL_API_URL)")
	return c
}

func serve(ctx context.Context, a *handlers.App) error {
	if err := a.Initialize(ctx); err != nil { //initialize database and router
		return err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%v", a.Config.Port),
		Handler:           a.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.S().Infow("cordial-cms is up and running",
			"port", a.Config.Port,
			"url", a.Config.BaseURL,
			"backend", a.Config.BackendURL,
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		a.Close(context.Background())
		return err
	case <-ctx.Done():
	}

	zap.S().Info("shutting down cordial-cms")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	a.Close(shutdownCtx)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
