package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/krishiai/krishi-gateway/internal/domain"
	"github.com/krishiai/krishi-gateway/internal/usecase/advisory"
)

func weatherCommand(deps Dependencies) *cobra.Command {
	var lat, lng float64

	cmd := &cobra.Command{
		Use:   "weather",
		Short: "Fetch an agro-meteorological report for a location",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := deps.Advisor.LiveWeather(cmd.Context(), lat, lng)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s, %s: %.1f°C, %s\n", report.Upazila, report.District, report.Temp, report.Condition)
			_, _ = fmt.Fprintf(out, "Humidity %.0f%%, wind %.1f km/h, rain %.0f%%\n", report.Humidity, report.WindSpeed, report.RainProbability)
			if report.Description != "" {
				_, _ = fmt.Fprintf(out, "\n%s\n", report.Description)
			}
			for _, day := range report.Forecast {
				_, _ = fmt.Fprintf(out, "%s: %s, %.0f-%.0f°C, rain %.0f%%\n",
					day.Date, day.Condition, day.MinTemp, day.MaxTemp, day.RainProbability)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "Latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "Longitude")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lng")

	return cmd
}

func pricesCommand(deps Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "prices",
		Short: "Fetch current wholesale market prices",
		RunE: func(cmd *cobra.Command, args []string) error {
			prices, err := deps.Advisor.MarketPrices(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, p := range prices {
				_, _ = fmt.Fprintf(out, "%-20s %8.2f ৳/%s  %s %s\n", p.Name, p.Price, p.Unit, p.Trend, p.Change)
			}
			return nil
		},
	}
}

func reportCommand(deps Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "report <location>",
		Short: "Generate a grounded agricultural report for an area",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := deps.Advisor.GroundedAdvisoryReport(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), report.Text)
			printCitations(cmd.OutOrStdout(), report.Citations)
			return nil
		},
	}
}

func searchCommand(deps Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search agricultural information with web grounding",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := deps.Advisor.SearchAgriculturalInfo(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), report.Text)
			printCitations(cmd.OutOrStdout(), report.Citations)
			return nil
		},
	}
}

func askCommand(deps Dependencies) *cobra.Command {
	var location string
	var userCrops []string

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask the advisory assistant",
		Long: `Ask the advisory assistant a question.

With a question argument, answers once and exits. Without arguments on
an interactive terminal, starts a conversation that keeps history
between questions. End the conversation with an empty line or Ctrl-D.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			chatCtx := advisory.ChatContext{
				UserCrops: parseCrops(userCrops),
				Location:  location,
			}

			if len(args) > 0 {
				report, err := deps.Advisor.Chat(cmd.Context(), nil, strings.Join(args, " "), chatCtx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), report.Text)
				printCitations(cmd.OutOrStdout(), report.Citations)
				return nil
			}

			if !IsInteractive() {
				return fmt.Errorf("no question given and stdin is not a terminal")
			}
			return runConversation(cmd, deps.Advisor, chatCtx)
		},
	}

	cmd.Flags().StringVar(&location, "location", "", "Farmer's location for context")
	cmd.Flags().StringSliceVar(&userCrops, "crop", nil, "Crop the farmer grows, name[:season] (repeatable)")

	return cmd
}

// runConversation keeps a turn history so follow-up questions carry
// context, mirroring the app's chat screen.
func runConversation(cmd *cobra.Command, advisor Advisor, chatCtx advisory.ChatContext) error {
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())

	var history []domain.Turn
	for {
		_, _ = fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			return nil
		}

		report, err := advisor.Chat(cmd.Context(), history, message, chatCtx)
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintln(out, report.Text)
		printCitations(out, report.Citations)
		_, _ = fmt.Fprintln(out)

		history = append(history,
			domain.Turn{Role: domain.RoleUser, Parts: []domain.Part{domain.TextPart{Text: message}}},
			domain.Turn{Role: domain.RoleModel, Parts: []domain.Part{domain.TextPart{Text: report.Text}}},
		)
	}
}

func printCitations(out io.Writer, citations []domain.Citation) {
	if len(citations) == 0 {
		return
	}

	_, _ = fmt.Fprintln(out, "\nSources:")
	for _, c := range citations {
		title := c.Title
		if title == "" {
			title = c.URI
		}
		_, _ = fmt.Fprintf(out, "- %s (%s)\n", title, c.URI)
	}
}
