package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/etnz/invest"
	"github.com/etnz/invest/agent"
	"github.com/etnz/invest/server"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

type serveCmd struct {
	addr string
	cors string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the ledger as a JSON HTTP API" }
func (*serveCmd) Usage() string {
	return `invest serve [-addr <host:port>] [-cors <origins>]

  Serves the ledger, quotes, plans and news reviews over HTTP. See
  'invest topic server' for the endpoints.

  Plans and news reviews are only served when Gemini's API key is set, news
  reviews also need Finnhub's.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "localhost:8080", "address to listen on")
	f.StringVar(&c.cors, "cors", "", "comma separated origins allowed to call the API")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, s, err := openLedger(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	cfg := server.Config{
		Addr:   c.addr,
		Log:    log.Logger,
		Ledger: ledger,
		Store:  s,
	}
	for _, o := range strings.Split(c.cors, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	var gw invest.Gateway
	switch q, err := quoteGateway(); {
	case err == nil:
		gw = q
	case errors.Is(err, errNoQuotes):
	default:
		log.Warn().Err(err).Msg("quotes are not served")
	}
	cfg.Quotes = gw

	// srv.Position is only called once the server runs.
	var srv *server.Server
	if client, err := genai.NewClient(ctx, nil); err != nil {
		log.Warn().Err(err).Msg("plans and news reviews are not served")
	} else {
		cfg.Planner = agent.NewPlanner(client)
		if fh, err := finnhubClient(); err != nil {
			log.Warn().Err(err).Msg("news reviews are not served")
		} else {
			cfg.Analyst = agent.NewNewsAnalyst(client, fh, func(ctx context.Context, symbol string) (invest.Valuation, bool, error) {
				return srv.Position(ctx, symbol)
			})
		}
	}
	srv = server.New(cfg)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(os.Stderr, "Error serving: %v\n", err)
			return subcommands.ExitFailure
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Server forced to shutdown")
		}
	}
	log.Info().Msg("Server stopped")
	return subcommands.ExitSuccess
}
