package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	_ "github.com/joho/godotenv/autoload"

	"github.com/peterkuimelis/hldx/internal/broadcast"
	"github.com/peterkuimelis/hldx/internal/config"
	"github.com/peterkuimelis/hldx/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	addr := flag.String("addr", cfg.WebAddr, "HTTP address to listen on")
	cards := flag.String("cards", cfg.CardsFile, "card catalog YAML file (default: built-in catalog)")
	flag.Parse()

	cfg.CardsFile = *cards
	diag := cfg.NewLogger()

	catalog, err := cfg.Catalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: load card catalog: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	hub := web.NewHub("", diag)
	if cfg.RedisAddr == "" {
		diag.Warn("REDIS_ADDR is not set; no games will be relayed")
	} else {
		rdb, err := broadcast.Connect(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer rdb.Close()
		go func() {
			if err := broadcast.Subscribe(ctx, rdb, cfg.RedisChannel, diag, hub.Relay); err != nil {
				diag.WithError(err).Error("event relay stopped")
			}
		}()
	}

	srv := web.NewServer(catalog, hub, diag)
	diag.Infof("hldx spectator listening on %s", *addr)
	if err := srv.ListenAndServe(*addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
