package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	httpadapter "github.com/sioXD/GitLab-TimeTool/internal/adapters/primary/http"
	"github.com/sioXD/GitLab-TimeTool/internal/config"
	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func Serve(cfg *config.Config, server *httpadapter.Server) *cobra.Command {
	var openBrowser bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard web server",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServer(cfg, server, openBrowser)
		},
	}

	cmd.Flags().BoolVar(&openBrowser, "open", false, "Open the dashboard in the default browser")

	return cmd
}

func runServer(cfg *config.Config, server *httpadapter.Server, openBrowser bool) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	if openBrowser {
		if err := open.Run(dashboardURL(cfg.ListenAddress)); err != nil {
			log.Printf("Failed to open browser: %v", err)
		}
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to run server: %w", err)
		}

		return nil
	case <-quit:
	}

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}

// dashboardURL turns a listen address into a browsable URL. Addresses like
// ":8080" bind all interfaces but are reached via localhost.
func dashboardURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}

	return "http://" + addr
}
