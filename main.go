package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"homeworlds/config"
	"homeworlds/gamemaster"
	"homeworlds/player"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s <script1> <script2>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		config.Exitf("homeworlds: %v", err)
	}
	level, _ := cfg.Level()
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	sources := make([]player.TurnSource, 0, flag.NArg())
	for _, path := range flag.Args() {
		s, err := player.LoadScript(path)
		if err != nil {
			config.Exitf("homeworlds: %v", err)
		}
		sources = append(sources, s)
	}

	gm, err := gamemaster.New(cfg, sources)
	if err != nil {
		config.Exitf("homeworlds: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	outcome, err := gm.Run(ctx)
	if err != nil {
		log.Error().Err(err).Int("turns", outcome.Turns).Msg("game aborted")
		stop()
		os.Exit(1)
	}

	if len(outcome.Losers) == 0 {
		fmt.Printf("GAME END - no loser after %d turns\n", outcome.Turns)
		return
	}
	fmt.Printf("GAME END - these players have lost: %v\n", outcome.Losers)
}
