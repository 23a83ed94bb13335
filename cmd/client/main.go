package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/joggingtracker/internal/client/cli"
	"github.com/dmitrijs2005/joggingtracker/internal/client/config"
	"github.com/dmitrijs2005/joggingtracker/internal/flagx"
)

func main() {

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	cmd, rest := flagx.SplitCommand(os.Args[1:], config.GlobalValueFlags)
	args := flagx.ExcludeArgs(rest, config.GlobalValueFlags)

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	err = app.Run(context.Background(), cmd, args)
	_ = app.Close()
	if err != nil {
		log.Fatalf("%s: %v", cmd, err)
	}
}
