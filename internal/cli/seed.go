package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yungbote/moodlog-backend/internal/app"
	"github.com/yungbote/moodlog-backend/internal/data/db"
)

var seedFile string

func init() {
	cmd := &cobra.Command{
		Use:   "seed-emotions",
		Short: "Seed the emotion taxonomy",
		Long:  "Inserts missing emotions from the built-in taxonomy or a YAML file. Existing keys are left untouched.",
		Run:   runSeed,
	}
	cmd.Flags().StringVar(&seedFile, "file", "", "YAML taxonomy file (default: built-in taxonomy)")

	RootCmd.AddCommand(cmd)
}

func runSeed(cmd *cobra.Command, args []string) {
	data := db.DefaultEmotionSeed()
	if seedFile != "" {
		b, err := os.ReadFile(seedFile)
		if err != nil {
			exitErr("read seed file", err)
		}
		data = b
	}
	roots, err := db.ParseEmotionSeed(data)
	if err != nil {
		exitErr("parse seed", err)
	}

	log, cfg, err := app.Bootstrap()
	if err != nil {
		exitErr("bootstrap", err)
	}
	defer log.Sync()

	svc, err := app.OpenDB(log, cfg)
	if err != nil {
		exitErr("open db", err)
	}
	defer svc.Close()

	created, err := db.SeedEmotions(cmd.Context(), svc.DB(), roots)
	if err != nil {
		exitErr("seed", err)
	}
	log.Info("Emotion taxonomy seeded", "created", created)
	fmt.Printf(`{"ok":true,"created":%d}`+"\n", created)
}
