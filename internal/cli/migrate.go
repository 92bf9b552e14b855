package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yungbote/moodlog-backend/internal/app"
)

func init() {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Run:   runMigrate,
	}

	RootCmd.AddCommand(cmd)
}

func runMigrate(cmd *cobra.Command, args []string) {
	log, cfg, err := app.Bootstrap()
	if err != nil {
		exitErr("bootstrap", err)
	}
	defer log.Sync()

	svc, err := app.OpenDB(log, cfg)
	if err != nil {
		exitErr("migrate", err)
	}
	defer svc.Close()

	fmt.Printf(`{"ok":true,"driver":%q}`+"\n", cfg.DB.Driver)
}
