package config

import (
	"flag"
	"os"

	"github.com/cjmtools/caseintake/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   bind address for the HTTP endpoint
//	-d string   PostgreSQL DSN (empty means in-memory storage)
//	-p string   bcrypt hash of the access passcode
//	-k string   HMAC secret for signing tokens
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-p", "-k"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&cfg.EndpointAddr, "a", cfg.EndpointAddr, "bind address for the HTTP endpoint")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "PostgreSQL DSN (empty means in-memory storage)")
	fs.StringVar(&cfg.PasscodeHash, "p", cfg.PasscodeHash, "bcrypt hash of the access passcode")
	fs.StringVar(&cfg.SecretKey, "k", cfg.SecretKey, "HMAC secret for signing tokens")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
