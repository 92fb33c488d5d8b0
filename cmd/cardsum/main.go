package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Price   PriceCmd         `cmd:"" default:"withargs" help:"Price the call and put and estimate their deltas"`
	Theo    TheoCmd          `cmd:"" help:"Print the theoretical price of the final sum"`
	Quote   QuoteCmd         `cmd:"" help:"Quote a tick-rounded market around the theoretical price"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("cardsum"),
		kong.Description("Monte Carlo option pricer on the sum of twenty cards drawn from a deck"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
