package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/ums-in-go/pkg/server"
	"github.com/doodlesbykumbi/ums-in-go/pkg/server/endpoints"
	gormstore "github.com/doodlesbykumbi/ums-in-go/pkg/store/gorm"
)

const shutdownTimeout = 10 * time.Second

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the user management server",
	Long: `Run the user management server.

The store must have been initialized with 'umsctl db init', or pass --seed
to initialize it on startup. Initializing an already seeded store only
verifies its schema version.

Example:
  umsctl server
  umsctl server --seed data/seed.json --port 8080`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		host := cfg.BindAddress
		if cmd.Flags().Changed("bind-address") {
			host, _ = cmd.Flags().GetString("bind-address")
		}
		port := cfg.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		connector := newConnector(cfg)
		if location, _ := cmd.Flags().GetString("seed"); location != "" {
			if err := initializeStore(ctx, connector, location, false); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to initialize store: %v\n", err)
				os.Exit(1)
			}
		}

		s := server.NewServer(
			gormstore.NewUsersStore(connector),
			gormstore.NewGroupsStore(connector),
			gormstore.NewHealthStore(connector),
			log.Logger,
			host,
			port,
		)
		endpoints.RegisterAll(s)

		if err := serve(ctx, s); err != nil {
			fmt.Fprintf(os.Stderr, "Server failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().IntP("port", "p", 0, "server listen port (default from configuration)")
	serverCmd.Flags().StringP("bind-address", "b", "", "server bind address (default from configuration)")
	serverCmd.Flags().String("seed", "", "initialize the store from this seed file or URL before serving")
}

// serve runs s until ctx is cancelled, then shuts it down gracefully
func serve(ctx context.Context, s *server.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return <-errCh
}
