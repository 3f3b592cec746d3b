package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"github.com/Kush-Singh-26/pubserve/internal/config"
	"github.com/Kush-Singh-26/pubserve/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	os.Exit(run(os.Args[1:], logger))
}

// run only returns once startup has failed; on success it serves forever.
func run(args []string, logger *slog.Logger) int {
	cfg, err := config.Load(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		logger.Error("Invalid arguments", "error", err)
		return 2
	}

	srv := server.NewFromDir(cfg.Root, logger)
	if err := srv.ListenAndServe(cfg.Addr()); err != nil {
		logger.Error("Server failed", "addr", cfg.Addr(), "error", err)
		return 1
	}
	return 0
}
