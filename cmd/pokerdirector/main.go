package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Config  string           `short:"c" default:"pokerdirector.hcl" help:"Path to HCL configuration file"`
	Env     []string         `help:"Extra .env files to load"`

	Serve   ServeCmd   `cmd:"" help:"Run the tournament director HTTP server"`
	Blinds  BlindsCmd  `cmd:"" help:"Generate a blind structure"`
	Stack   StackCmd   `cmd:"" help:"Calculate a starting stack"`
	Payouts PayoutsCmd `cmd:"" help:"Calculate prize pool and payouts"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokerdirector"),
		kong.Description("Poker tournament director: clock, blinds, seating and payouts"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}
