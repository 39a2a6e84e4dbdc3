package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/blogcore/blogd/cmd/blogd/output"
	"github.com/blogcore/blogd/pkg/db"
	"github.com/blogcore/blogd/pkg/server"
	"github.com/blogcore/blogd/pkg/store"
)

var addr string

// serveCmd runs the HTTP server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the blog API server",
	Long: `Run the combined REST + GraphQL server.

Examples:
  blogd serve --db postgres://localhost:5432/blog --addr :5001
  blogd serve --db $DATABASE_URL`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	serveCmd.Flags().StringVar(&addr, "addr", ":5001", "Address to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command) error {
	if err := requireDB(); err != nil {
		return err
	}

	log := newLogger()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.ConnectWithURL(ctx, dbURL)
	if err != nil {
		output.Error("Failed to connect to database: %v", err)
		return err
	}
	defer database.Close()
	output.Success("Connected to database")

	output.Section("Blog API Server - REST + GraphQL")
	output.Info("REST API:   http://localhost%s/posts", addr)
	output.Info("GraphQL:    http://localhost%s/graphql", addr)
	output.Info("Health:     http://localhost%s/health", addr)
	output.Muted("Press CTRL+C to stop the server")

	srv := server.New(store.New(database), log, server.Config{Addr: addr})
	return srv.Run(ctx)
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
}
