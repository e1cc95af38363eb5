package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/ctorcli/cli"
	"github.com/ardnew/ctorcli/log"
)

func main() {
	if err := cli.Run(context.Background(), os.Exit, os.Args[1:]...); err != nil {
		// cmd.Error implements slog.LogValuer
		log.Error("run failed", slog.Any("error", err))
		os.Exit(1)
	}
}
