package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/studiodesk/internal/server"
	"github.com/example/studiodesk/internal/wire"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard HTTP server",
		Long: `Run the HTTP server backing the admin dashboard: the JSON API under
/api plus the /events websocket feed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := wire.Config()
			if addr == "" {
				addr = cfg.Server.ListenAddr
			}

			srv := server.New(addr, wire.ServerServices(), wire.Hub(), wire.Logger())

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.ListenAndServe()
			}()

			exit := make(chan os.Signal, 1)
			signal.Notify(exit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case sig := <-exit:
				fmt.Printf("\nSignal caught: %v, shutting down\n", sig)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("failed to shut down cleanly: %w", err)
			}
			return <-errCh
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to config server.listen_addr)")

	return cmd
}
