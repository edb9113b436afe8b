package migrate

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/minerepair/repairhub/internal/infrastructure/config"
	"github.com/minerepair/repairhub/internal/infrastructure/database"
	"github.com/minerepair/repairhub/internal/infrastructure/migration"
	"github.com/minerepair/repairhub/internal/shared/logger"
)

const scriptsRoot = "./internal/infrastructure/migration/scripts"

var (
	configPath string
	name       string
	steps      int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations including running migrations, checking status, and creating new migration files.`,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newCreateCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		RunE:  runDown,
	}
	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")
	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE:  runStatus,
	}
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new SQL migration for the configured dialect",
		RunE:  runCreate,
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the migration (required)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func initEnv(connect bool) (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(configPath, "")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if connect {
		if err := database.Init(&cfg.Database); err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
	}
	return cfg, logger.NewLogger(), nil
}

func closeDatabase(log logger.Interface) {
	if err := database.Close(); err != nil {
		log.Errorw("failed to close database", "error", err)
	}
}

func gooseFor(cfg *config.Config) (*migration.GooseStrategy, error) {
	goose, ok := migration.NewManager(cfg.Database.Driver).Goose()
	if !ok {
		return nil, fmt.Errorf("driver %q has no versioned migrations", cfg.Database.Driver)
	}
	return goose, nil
}

func runUp(cmd *cobra.Command, args []string) error {
	cfg, log, err := initEnv(true)
	if err != nil {
		return err
	}
	defer closeDatabase(log)

	log.Infow("running up migrations", "driver", cfg.Database.Driver)
	if err := migration.NewManager(cfg.Database.Driver).Migrate(database.Get()); err != nil {
		return err
	}
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	cfg, log, err := initEnv(true)
	if err != nil {
		return err
	}
	defer closeDatabase(log)

	goose, err := gooseFor(cfg)
	if err != nil {
		return err
	}
	if err := goose.MigrateDown(database.Get(), steps); err != nil {
		return fmt.Errorf("down migration failed: %w", err)
	}
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, log, err := initEnv(true)
	if err != nil {
		return err
	}
	defer closeDatabase(log)

	goose, err := gooseFor(cfg)
	if err != nil {
		return err
	}

	version, err := goose.GetVersion(database.Get())
	if err != nil {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	fmt.Printf("\nMigration Status:\n")
	fmt.Printf("  Driver:          %s\n", cfg.Database.Driver)
	fmt.Printf("  Current Version: %d\n", version)

	return goose.Status(database.Get())
}

func runCreate(cmd *cobra.Command, args []string) error {
	cfg, _, err := initEnv(false)
	if err != nil {
		return err
	}

	goose, err := gooseFor(cfg)
	if err != nil {
		return err
	}

	root, err := filepath.Abs(scriptsRoot)
	if err != nil {
		return fmt.Errorf("failed to resolve scripts path: %w", err)
	}
	if err := goose.Create(root, name); err != nil {
		return err
	}

	fmt.Printf("Migration '%s' created in %s\n", name, filepath.Join(root, cfg.Database.Driver))
	return nil
}
