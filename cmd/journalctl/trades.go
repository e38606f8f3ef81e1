package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tradejournal/tradejournal-server/client"
)

func newTradesCmd(g *globalFlags) *cobra.Command {
	tradesCmd := &cobra.Command{Use: "trades", Short: "Trade operations"}

	var page client.Page
	var asJSON bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List trades, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := g.client()
			if err != nil {
				return err
			}
			trades, err := c.ListTrades(cmd.Context(), page)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), trades)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tDATE\tSYMBOL\tSIDE\tSTATUS\tRESULT")
			for _, t := range trades {
				status, result := "-", "-"
				if t.Status != nil {
					status = string(*t.Status)
				}
				if t.Result != nil {
					result = fmt.Sprintf("%.2f", *t.Result)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", t.ID, t.Date, t.Symbol, t.Side, status, result)
			}
			return tw.Flush()
		},
	}
	listCmd.Flags().IntVar(&page.Skip, "skip", 0, "Records to skip")
	listCmd.Flags().IntVar(&page.Limit, "limit", 0, "Maximum records to return (server default when 0)")
	listCmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	tradesCmd.AddCommand(listCmd)

	getCmd := &cobra.Command{
		Use:   "get TRADE_ID",
		Short: "Get a trade by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := g.client()
			if err != nil {
				return err
			}
			t, err := c.GetTrade(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), t)
		},
	}
	tradesCmd.AddCommand(getCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete TRADE_ID",
		Short: "Delete a trade and print what was removed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := g.client()
			if err != nil {
				return err
			}
			t, err := c.DeleteTrade(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), t)
		},
	}
	tradesCmd.AddCommand(deleteCmd)
	return tradesCmd
}

func newStatsCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the trade performance summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := g.client()
			if err != nil {
				return err
			}
			s, err := c.Summary(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), s)
		},
	}
}
