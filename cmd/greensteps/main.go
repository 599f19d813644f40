// AngelaMos | 2026
// main.go

package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

var version = "dev"

type Globals struct {
	Config string `help:"Path to a YAML config file." type:"path" env:"GREENSTEPS_CONFIG" short:"c"`
}

var cli struct {
	Globals

	Version kong.VersionFlag `help:"Print the version and exit."`

	Serve   ServeCmd   `cmd:"" default:"1" help:"Run the web server."`
	Migrate MigrateCmd `cmd:"" help:"Create the database schema if missing."`
	Keygen  KeygenCmd  `cmd:"" help:"Write a session signing key for stable logins across restarts."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("greensteps"),
		kong.Description("GreenSteps eco-habit tracker"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	if err := ctx.Run(&cli.Globals); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}
