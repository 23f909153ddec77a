// Package cli is the interactive terminal front end for case intake. It
// wires the scan controller, the form orchestrator and the storage client
// together behind a small REPL.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/cjmtools/caseintake/internal/client/api"
	"github.com/cjmtools/caseintake/internal/client/config"
	"github.com/cjmtools/caseintake/internal/client/intake"
	"github.com/cjmtools/caseintake/internal/client/scanner"
	"github.com/cjmtools/caseintake/internal/client/sfx"
	"github.com/cjmtools/caseintake/internal/logging"
	"github.com/cjmtools/caseintake/internal/qrsymbol"
)

type App struct {
	config     *config.Config
	client     *api.Client
	form       *intake.Orchestrator
	controller *scanner.Controller
	renderer   *qrsymbol.Renderer
	reader     *bufio.Reader
	out        io.Writer
	logger     logging.Logger
}

func NewApp(c *config.Config, logger logging.Logger) *App {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	client := api.NewClient(c.ServerURL)
	renderer := qrsymbol.NewRenderer(qrsymbol.NewQRCodeGenerator(), logger)
	form := intake.NewOrchestrator(client, sfx.NewTerminalBeeper(), renderer, logger)

	controller := scanner.NewController(scanner.Options{
		Camera:     scanner.NewSpoolCamera(c.SpoolDir),
		Decoder:    scanner.NewQRFrameDecoder(),
		Facing:     scanner.FacingMode(c.Facing),
		Interval:   c.ScanInterval,
		MaxResults: c.MaxResults,
		OnReading:  form.HandleReading,
		Logger:     logger,
	})

	return &App{
		config:     c,
		client:     client,
		form:       form,
		controller: controller,
		renderer:   renderer,
		reader:     bufio.NewReader(os.Stdin),
		out:        os.Stdout,
		logger:     logger.With("module", "cli"),
	}
}

// Run drives the REPL until the user exits or stdin closes. The scan loop,
// if running, is stopped on the way out so the camera is released.
func (a *App) Run(ctx context.Context) {
	defer a.controller.Stop()

	a.logger.Info(ctx, "client started", "server", a.config.ServerURL)
	printlnFn("Welcome to the case intake CLI (type 'help' for commands)")

	_ = a.Login(ctx)

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}

func (a *App) isLoggedIn() bool {
	return a.client.LoggedIn()
}

func (a *App) getStatus() string {
	s := "locked"
	if a.isLoggedIn() {
		s = "ready"
		if a.controller.IsScanning() {
			s = "scanning"
		}
	}
	return s
}
