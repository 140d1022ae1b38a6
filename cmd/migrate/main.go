// Command migrate applies the embedded goose migrations.
//
//	migrate                  # same as migrate up
//	migrate status
//	migrate down
//
// Every goose command in migrator.Commands is a subcommand.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/migrations"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/config"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/logger"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/migrator"
)

var descriptions = map[string]string{
	"up":        "Apply all pending migrations",
	"up-by-one": "Apply the next pending migration",
	"down":      "Roll back the latest migration",
	"reset":     "Roll back every migration",
	"status":    "Print the status of every migration",
	"version":   "Print the current schema version",
	"redo":      "Roll back and reapply the latest migration",
}

// runFunc executes one goose command.
type runFunc func(ctx context.Context, command string, args []string) error

func newRootCmd(run runFunc) *cobra.Command {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the ammo inventory database schema",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), "up", nil)
		},
	}
	for _, name := range migrator.Commands {
		root.AddCommand(&cobra.Command{
			Use:   name,
			Short: descriptions[name],
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd.Context(), name, args)
			},
		})
	}
	return root
}

func runMigrations(ctx context.Context, command string, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg)

	log.Info("running migrations", "command", command)
	if err := migrator.Run(ctx, cfg.DatabaseURL, migrations.FS, command, args...); err != nil {
		return err
	}
	log.Info("migrations done", "command", command)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(runMigrations).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		stop()
		os.Exit(1)
	}
}
