package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tradejournal/tradejournal-server/internal/model"
)

func newJournalCmd(g *globalFlags) *cobra.Command {
	journalCmd := &cobra.Command{Use: "journal", Short: "Day journal operations"}

	var start, end string
	rangeCmd := &cobra.Command{
		Use:   "range",
		Short: "List day journals between two dates (inclusive)",
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := model.ParseDate(start)
			if err != nil {
				return fmt.Errorf("--start must be YYYY-MM-DD: %w", err)
			}
			to, err := model.ParseDate(end)
			if err != nil {
				return fmt.Errorf("--end must be YYYY-MM-DD: %w", err)
			}
			c, err := g.client()
			if err != nil {
				return err
			}
			days, err := c.DayJournalRange(cmd.Context(), from, to)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), days)
		},
	}
	rangeCmd.Flags().StringVar(&start, "start", "", "First day (YYYY-MM-DD, required)")
	rangeCmd.Flags().StringVar(&end, "end", "", "Last day (YYYY-MM-DD, required)")
	_ = rangeCmd.MarkFlagRequired("start")
	_ = rangeCmd.MarkFlagRequired("end")
	journalCmd.AddCommand(rangeCmd)
	return journalCmd
}

func newExportCmd(g *globalFlags) *cobra.Command {
	var out string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export all trades and day journals as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := g.client()
			if err != nil {
				return err
			}
			data, err := c.ExportAll(cmd.Context())
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				return printJSON(cmd.OutOrStdout(), data)
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := printJSON(f, data); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d trades and %d day journals to %s\n",
				data.Metadata.TotalTrades, data.Metadata.TotalDayJournals, out)
			return nil
		},
	}
	exportCmd.Flags().StringVarP(&out, "out", "o", "", "Output file (stdout when empty)")
	return exportCmd
}
