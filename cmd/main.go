package main

import (
	"os"

	"github.com/yungbote/moodlog-backend/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
