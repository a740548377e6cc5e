package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/flagx"
)

// parseFlags overlays selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string          HTTP bind address (e.g., ":8000")
//	-g string          gRPC bind address, empty disables gRPC
//	-d string          PostgreSQL DSN
//	-s string          JWT HMAC secret key
//	-t int             access token validity, minutes
//	-alg string        JWT signing algorithm (HS256, HS384, HS512)
//	-driver string     storage driver (postgres, badger)
//	-badger-dir string Badger data directory, empty for in-memory
//
// os.Args is filtered down to these flags first so foreign flags do not
// make parsing fail.
func parseFlags(config *Config) error {
	args := flagx.FilterArgs(os.Args[1:], []string{"a", "g", "d", "s", "t", "alg", "driver", "badger-dir"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to serve HTTP on")
	fs.StringVar(&config.GRPCAddr, "g", config.GRPCAddr, "address and port to serve gRPC on")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "token signing secret")
	fs.StringVar(&config.JWTAlgorithm, "alg", config.JWTAlgorithm, "token signing algorithm")
	fs.StringVar(&config.StorageDriver, "driver", config.StorageDriver, "storage driver")
	fs.StringVar(&config.BadgerDir, "badger-dir", config.BadgerDir, "badger data directory")

	ttl := fs.Int("t", int(config.AccessTokenTTL.Minutes()), "access token validity (in minutes)")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.AccessTokenTTL = time.Duration(*ttl) * time.Minute
		}
	})
	return nil
}
