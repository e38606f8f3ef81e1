package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tradejournal/tradejournal-server/client"
)

type globalFlags struct {
	api     string
	token   string
	timeout time.Duration
	debug   bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "journalctl",
		Short:         "CLI client for the trade journal REST API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&g.api, "api", "a", envOr("TRADEJOURNAL_API", "http://localhost:8000"), "Journal service base URL")
	root.PersistentFlags().StringVarP(&g.token, "token", "t", os.Getenv("TRADEJOURNAL_TOKEN"), "Bearer token (demo_token_* works outside production)")
	root.PersistentFlags().DurationVar(&g.timeout, "timeout", 30*time.Second, "Per-request timeout")
	root.PersistentFlags().BoolVar(&g.debug, "debug", false, "Log HTTP requests and responses")

	root.AddCommand(newTradesCmd(g), newStatsCmd(g), newJournalCmd(g), newExportCmd(g))
	return root
}

func (g *globalFlags) client() (*client.Client, error) {
	return client.New(g.api, g.token, client.WithHTTPTimeout(g.timeout), client.WithDebugLogging(g.debug))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
