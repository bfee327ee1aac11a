// Command randomprime prints a random probable prime of the given bit length.
//
//	randomprime [flags] [bits]
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/go-errors/errors"

	"github.com/privacybydesign/randomprime/internal/cli"
)

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	cfg, err := cli.ParseConfig(fs, os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		cli.Exitf("parse arguments: %v", err)
	}

	log := cli.ConfigLogger(cfg, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = cli.Run(ctx, cfg, os.Stdout, log)
	stop()
	if err != nil {
		cli.Exitf("generate prime: %v", err)
	}
}
