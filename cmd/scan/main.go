package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	appranking "main/internal/application/service/ranking"
	"main/internal/config"
	instruments "main/internal/domain/entity/instruments"
	marketdata "main/internal/domain/entity/marketdata"
	"main/internal/infrastructure/cache"
	"main/internal/infrastructure/provider/yahoo"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("config error: %v", err)
	}

	provider := yahoo.NewClient(yahoo.Config{
		BaseURL: cfg.Provider.BaseURL,
		Timeout: cfg.Provider.Timeout(),
	}, logger)

	ranking := appranking.NewService(provider, cache.New(), cfg.Cache.LeaderboardTTL(), logger)

	markets := []instruments.Market{instruments.MarketTaiwan, instruments.MarketUS}
	movers := make([][]marketdata.ChangeRow, len(markets))

	g, gctx := errgroup.WithContext(ctx)
	for i, market := range markets {
		g.Go(func() error {
			rows, err := ranking.MarketMovers(gctx, market)
			if err != nil {
				return fmt.Errorf("scan %s: %w", market, err)
			}
			movers[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Fatalf("scan failed: %v", err)
	}

	for i, market := range markets {
		if len(movers[i]) == 0 {
			fmt.Printf("== %s: no data found ==\n\n", market)
			continue
		}
		printBoard(market, "gainers", appranking.Rank(movers[i], appranking.Gainers, 10))
		printBoard(market, "losers", appranking.Rank(movers[i], appranking.Losers, 10))
	}
}

func printBoard(market instruments.Market, title string, rows []marketdata.ChangeRow) {
	fmt.Printf("== %s %s ==\n", market, title)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SYMBOL\tNAME\tCHANGE")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\t%+.2f%%\n", row.Symbol, row.Name, row.PctChange)
	}
	w.Flush()
	fmt.Println()
}
