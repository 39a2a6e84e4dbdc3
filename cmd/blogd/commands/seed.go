package commands

import (
	"github.com/spf13/cobra"

	"github.com/blogcore/blogd/cmd/blogd/output"
	"github.com/blogcore/blogd/pkg/db"
	"github.com/blogcore/blogd/pkg/seed"
)

// seedCmd loads the fixture data
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the blog schema and load fixture data",
	Long: `Drop and recreate the users and posts tables, then load sample data.

Safe to run repeatedly; existing tables are replaced each time.

Examples:
  blogd seed --db postgres://localhost:5432/blog`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(cmd)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command) error {
	if err := requireDB(); err != nil {
		return err
	}

	ctx := cmd.Context()

	database, err := db.ConnectWithURL(ctx, dbURL)
	if err != nil {
		output.Error("Failed to connect to database: %v", err)
		return err
	}
	defer database.Close()

	summary, err := seed.Run(ctx, database)
	if err != nil {
		output.Error("Seeding failed: %v", err)
		return err
	}

	output.Success("Created 'users' and 'posts' tables")
	output.Success("Inserted %d users", summary.Users)
	output.Success("Inserted %d posts", summary.Posts)
	output.Muted("Run 'blogd serve' to start the API server")
	return nil
}
