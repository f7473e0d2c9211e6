package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"tracker-client/internal/cli"
	"tracker-client/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := cli.NewRootCommand(config.NewLoader())
	err := root.ExecuteContext(ctx)
	root.Close()
	if err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
