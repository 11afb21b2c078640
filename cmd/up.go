package cmd

import (
	"errors"
	"os"

	"log/slog"

	"github.com/Pjt727/odautofill/data"
	"github.com/Pjt727/odautofill/projectpath"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"
)

// upCmd represents the up command
var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Runs the up migrations",
	Long:  `Runs the up migrations and errors if there the up migrations cannot work`,
	Run: func(cmd *cobra.Command, args []string) {
		data.LoadEnv()
		dbName := os.Getenv("DB_CONN")

		m, err := migrate.New("file://"+projectpath.Root+"/migrations", dbName)
		if err != nil {
			slog.Error("Could not set up migrations", "err", err)
			return
		}
		defer m.Close()

		err = m.Up()
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Info("Database is already up to date")
			return
		}
		if err != nil {
			slog.Error("Could not run up migrations", "err", err)
			return
		}
		slog.Info("Database has been synced with any up migrations")
	},
}

func init() {
	appCmd.AddCommand(upCmd)
}
