package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yungbote/moodlog-backend/internal/app"
	"github.com/yungbote/moodlog-backend/internal/platform/gemini"
)

func init() {
	cmd := &cobra.Command{
		Use:   "suggest-ping",
		Short: "Check connectivity to the suggestion API",
		Run:   runPing,
	}

	RootCmd.AddCommand(cmd)
}

func runPing(cmd *cobra.Command, args []string) {
	log, cfg, err := app.Bootstrap()
	if err != nil {
		exitErr("bootstrap", err)
	}
	defer log.Sync()

	client := gemini.NewClient(log, cfg.Gemini)
	ok, err := client.Ping(cmd.Context())
	if err != nil || !ok {
		if err == nil {
			err = fmt.Errorf("empty response")
		}
		log.Sync()
		exitErr("ping "+client.Model(), err)
	}
	fmt.Printf(`{"ok":true,"model":%q}`+"\n", client.Model())
}
