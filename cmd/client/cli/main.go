package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/cjmtools/caseintake/internal/client/cli"
	"github.com/cjmtools/caseintake/internal/client/config"
	"github.com/cjmtools/caseintake/internal/logging"
)

func main() {

	cfg := config.LoadConfig()

	sl := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	logger := logging.NewSlogLogger(sl)

	app := cli.NewApp(cfg, logger)
	app.Run(context.Background())

}
