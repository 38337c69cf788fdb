package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	_ "github.com/joho/godotenv/autoload"
	"github.com/pterm/pterm"

	"github.com/peterkuimelis/hldx/internal/broadcast"
	"github.com/peterkuimelis/hldx/internal/config"
	"github.com/peterkuimelis/hldx/internal/game"
	"github.com/peterkuimelis/hldx/internal/log"
	"github.com/peterkuimelis/hldx/internal/terminal"
	"github.com/peterkuimelis/hldx/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	players := flag.String("players", "Player 1,Player 2", "comma-separated player names (2-4), in turn order")
	cards := flag.String("cards", cfg.CardsFile, "card catalog YAML file (default: built-in catalog)")
	seed := flag.Int64("seed", cfg.Seed, "shuffle seed (0 = random)")
	spectate := flag.String("spectate", "", "also serve a spectator page on this address (e.g. :8080)")
	plain := flag.Bool("plain", false, "read numbered answers from stdin instead of interactive menus")
	flag.Parse()

	cfg.CardsFile = *cards
	cfg.Seed = *seed
	diag := cfg.NewLogger()

	catalog, err := cfg.Catalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: load card catalog: %v\n", err)
		os.Exit(1)
	}

	var input terminal.Input = terminal.PtermInput{}
	if *plain {
		input = terminal.NewLineInput(os.Stdin, os.Stdout)
	}
	ctrl := terminal.NewController(input, os.Stdout)

	var seats []game.Seat
	for _, name := range strings.Split(*players, ",") {
		seats = append(seats, game.Seat{Name: name, Controller: ctrl})
	}

	events := log.NewMultiLogger()
	gameCfg := cfg.GameConfig(catalog, diag)
	gameCfg.Logger = events
	g, err := game.NewGame(gameCfg, seats...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cfg.RedisAddr != "" {
		rdb, err := broadcast.Connect(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			diag.WithError(err).Warn("event broadcasting disabled")
		} else {
			defer rdb.Close()
			events.Add(broadcast.NewPublisher(rdb, cfg.RedisChannel, g.State.ID, diag))
			diag.WithField("channel", cfg.RedisChannel).Info("broadcasting game events")
		}
	}

	if *spectate != "" {
		hub := web.NewHub(g.State.ID.String(), diag)
		events.Add(hub)
		srv := web.NewServer(catalog, hub, diag)
		go func() {
			if err := srv.ListenAndServe(*spectate); err != nil {
				diag.WithError(err).Error("spectator server stopped")
			}
		}()
		pterm.Info.Printfln("Spectators can watch at http://localhost%s", *spectate)
	}

	pterm.DefaultHeader.WithFullWidth().Println("Happy Little Dinosaurs")

	if _, err := g.Run(ctx); err != nil {
		pterm.Error.Printfln("Game aborted: %v", err)
		os.Exit(1)
	}
}
