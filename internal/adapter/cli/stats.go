package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/krishiai/krishi-gateway/internal/store"
)

func statsCommand(deps Dependencies) *cobra.Command {
	var period string
	var recent int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show usage, cost and fallback statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if deps.Ledger == nil {
				return fmt.Errorf("usage ledger is disabled; enable store in kgw.yaml")
			}

			since, err := store.ParsePeriod(period, deps.Now())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			summary, err := deps.Ledger.Summary(ctx, since)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(out, "Requests: %d (errors: %d, fallbacks: %d)\n",
				summary.Requests, summary.Errors, summary.Fallbacks)
			_, _ = fmt.Fprintf(out, "Tokens: %d in / %d out\n", summary.TokensIn, summary.TokensOut)
			_, _ = fmt.Fprintf(out, "Cost: $%.4f\n", summary.Cost)

			byProvider, err := deps.Ledger.SummaryByProvider(ctx, since)
			if err != nil {
				return err
			}
			if len(byProvider) > 0 {
				_, _ = fmt.Fprintln(out, "\nBy provider:")
				for provider, s := range byProvider {
					_, _ = fmt.Fprintf(out, "  %-12s %d requests, %d errors, $%.4f\n",
						provider, s.Requests, s.Errors, s.Cost)
				}
			}

			if recent <= 0 {
				return nil
			}

			records, err := deps.Ledger.ListRecent(ctx, recent)
			if err != nil {
				return err
			}
			if len(records) > 0 {
				_, _ = fmt.Fprintln(out, "\nRecent calls:")
				for _, rec := range records {
					status := "ok"
					if !rec.Succeeded() {
						status = rec.ErrorType
					}
					_, _ = fmt.Fprintf(out, "  %s  %s/%s %s %dms %s\n",
						rec.Timestamp.Format("2006-01-02 15:04:05"),
						rec.Provider, rec.Model, rec.Capability, rec.DurationMS, status)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&period, "period", "all", "Period to summarize: today, Nd (e.g. 7d) or all")
	cmd.Flags().IntVar(&recent, "recent", 0, "Also list the N most recent calls")

	return cmd
}
