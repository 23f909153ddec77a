package config

import (
	"flag"
	"os"
	"time"

	"github.com/cjmtools/caseintake/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-s string   base URL of the storage service
//	-d string   spool directory watched for camera frames
//	-f string   camera facing preference
//	-i int      scan interval in milliseconds
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-d", "-f", "-i"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "s", cfg.ServerURL, "base URL of the storage service")
	fs.StringVar(&cfg.SpoolDir, "d", cfg.SpoolDir, "camera frame spool directory")
	fs.StringVar(&cfg.Facing, "f", cfg.Facing, "camera facing preference")
	scanInterval := fs.Int("i", int(cfg.ScanInterval.Milliseconds()), "scan interval (in milliseconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.ScanInterval = time.Duration(*scanInterval) * time.Millisecond
}
