// Command stockctl tareas de operación sobre la base: migraciones y datos iniciales.
package main

import (
	"fmt"
	"os"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/jhoicas/stock-api/internal/application/seed"
	"github.com/jhoicas/stock-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-api/pkg/config"
	"github.com/jhoicas/stock-api/pkg/logger"
)

func main() {
	root := &cobra.Command{
		Use:           "stockctl",
		Short:         "Operación de stock-api: migraciones y seed",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMigrateCommand(), newSeedCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})
	return cfg, log.Component("stockctl"), nil
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones embebidas pendientes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			dsn := cfg.DB.ConnectionString()
			if err := postgres.UpMigrations(dsn); err != nil {
				return err
			}
			version, err := postgres.MigrationVersion(dsn)
			if err != nil {
				return err
			}
			log.Info().Int64("version", version).Msg("migraciones aplicadas")
			return nil
		},
	}
}

const (
	usernameFlag = "username"
	passwordFlag = "password"
	emailFlag    = "email"
)

var seedFlags = map[string]cobraflags.Flag{
	usernameFlag: &cobraflags.StringFlag{
		Name:  usernameFlag,
		Value: "admin",
		Usage: "Usuario administrador",
	},
	passwordFlag: &cobraflags.StringFlag{
		Name:  passwordFlag,
		Value: "",
		Usage: "Password del administrador (requerido)",
	},
	emailFlag: &cobraflags.StringFlag{
		Name:  emailFlag,
		Value: "admin@stock.local",
		Usage: "Email del administrador",
	},
}

func newSeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Crea permisos ACCION_RECURSO, ROLE_ADMIN, ROLE_USER y el administrador",
		Long: `Crea lo que falte; lo existente se conserva. Los permisos de ROLE_ADMIN
y ROLE_USER se alinean con el catálogo actual de recursos y acciones.

Ejemplo:
  stockctl seed --password 'cambia-esto'`,
		RunE: runSeed,
	}
	cobraflags.RegisterMap(cmd, seedFlags)
	return cmd
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	seedCfg := seed.Config{
		AdminUsername: seedFlags[usernameFlag].GetString(),
		AdminPassword: seedFlags[passwordFlag].GetString(),
		AdminEmail:    seedFlags[emailFlag].GetString(),
	}
	var res seed.Result
	err = postgres.NewTxRunner(pool).Run(ctx, func(r postgres.Repos) error {
		var err error
		res, err = seed.New(r.Permissions, r.Roles, r.Users).Run(ctx, seedCfg)
		return err
	})
	if err != nil {
		return err
	}
	log.Info().
		Int("permissions_created", res.PermissionsCreated).
		Int("roles_created", res.RolesCreated).
		Int("roles_updated", res.RolesUpdated).
		Bool("admin_created", res.AdminCreated).
		Msg("seed completado")
	return nil
}
