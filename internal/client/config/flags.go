package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/joggingtracker/internal/flagx"
)

// GlobalValueFlags are the flags owned by this package that take a value.
// The CLI uses them to tell flag values apart from the command name.
var GlobalValueFlags = []string{"-a", "-t", "-c", "-config"}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   address and port of the backend server (default from Config)
//	-t string   bearer token (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, so subcommand flags are left alone.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	fs.StringVar(&cfg.Token, "t", cfg.Token, "bearer token")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
