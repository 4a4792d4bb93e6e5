package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func tipCommand(deps Dependencies) *cobra.Command {
	var userCrops []string
	var weather string

	cmd := &cobra.Command{
		Use:   "tip",
		Short: "Get today's actionable farming tip",
		RunE: func(cmd *cobra.Command, args []string) error {
			tip, err := deps.Advisor.QuickTip(cmd.Context(), parseCrops(userCrops), weather)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), tip)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&userCrops, "crop", nil, "Crop the farmer grows, name[:season] (repeatable)")
	cmd.Flags().StringVar(&weather, "weather", "", "Current weather condition for context")

	return cmd
}

func adviseCommand(deps Dependencies) *cobra.Command {
	var userCrops []string

	cmd := &cobra.Command{
		Use:   "advise",
		Short: "Get personalized advice for the farmer's crops",
		RunE: func(cmd *cobra.Command, args []string) error {
			advice, err := deps.Advisor.PersonalizedAdvice(cmd.Context(), parseCrops(userCrops))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), advice)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&userCrops, "crop", nil, "Crop the farmer grows, name[:season] (repeatable)")

	return cmd
}

func scheduleCommand(deps Dependencies) *cobra.Command {
	var startDate string
	var season string
	var save bool

	cmd := &cobra.Command{
		Use:   "schedule <crop>",
		Short: "Generate a crop care schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := deps.Advisor.CropSchedule(cmd.Context(), args[0], startDate, season)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, task := range tasks {
				_, _ = fmt.Fprintf(out, "%s  [%s] %s\n", task.DueDate, task.Category, task.Title)
				if task.Notes != "" {
					_, _ = fmt.Fprintf(out, "    %s\n", task.Notes)
				}
			}

			if save && deps.ResultSaver != nil {
				path, err := deps.ResultSaver.Write(cmd.Context(), "crop-schedule", tasks)
				if err != nil {
					return fmt.Errorf("save schedule: %w", err)
				}
				_, _ = fmt.Fprintf(out, "\nSchedule saved to %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Planting or transplanting date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&season, "season", "", "Growing season (e.g. বোরো, আমন)")
	cmd.Flags().BoolVar(&save, "save", false, "Save the schedule as JSON")

	return cmd
}

func quizCommand(deps Dependencies) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "quiz <topic>",
		Short: "Generate a farming knowledge quiz",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			questions, err := deps.Advisor.Quiz(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, q := range questions {
				_, _ = fmt.Fprintf(out, "%d. %s\n", i+1, q.Question)
				for j, option := range q.Options {
					marker := " "
					if j == q.CorrectAnswer {
						marker = "*"
					}
					_, _ = fmt.Fprintf(out, "  %s %s\n", marker, option)
				}
				if q.Explanation != "" {
					_, _ = fmt.Fprintf(out, "  %s\n", q.Explanation)
				}
				_, _ = fmt.Fprintln(out)
			}

			if save && deps.ResultSaver != nil {
				path, err := deps.ResultSaver.Write(cmd.Context(), "quiz", questions)
				if err != nil {
					return fmt.Errorf("save quiz: %w", err)
				}
				_, _ = fmt.Fprintf(out, "Quiz saved to %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Save the quiz as JSON")

	return cmd
}

func cardsCommand(deps Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "cards <topic>",
		Short: "Generate study flash cards",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := deps.Advisor.FlashCards(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, card := range cards {
				_, _ = fmt.Fprintf(out, "[%s] %s\n", card.Category, card.Front)
				_, _ = fmt.Fprintf(out, "  %s\n", card.Back)
				if card.Hint != "" {
					_, _ = fmt.Fprintf(out, "  Hint: %s\n", card.Hint)
				}
				_, _ = fmt.Fprintln(out)
			}
			return nil
		},
	}
}

func diseasesCommand(deps Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "diseases <crop>",
		Short: "List common diseases and pests for a crop",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := deps.Advisor.CropDiseaseInfo(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s\n\n%s\n", report.CropName, report.Summary)

			if len(report.Diseases) > 0 {
				_, _ = fmt.Fprintln(out, "\nDiseases:")
				for _, d := range report.Diseases {
					_, _ = fmt.Fprintf(out, "- %s (%s)\n    Symptoms: %s\n    Bio: %s\n    Chemical: %s\n",
						d.Name, d.Severity, d.Symptoms, d.BioControl, d.ChemControl)
				}
			}
			if len(report.Pests) > 0 {
				_, _ = fmt.Fprintln(out, "\nPests:")
				for _, p := range report.Pests {
					_, _ = fmt.Fprintf(out, "- %s (%s)\n    Damage: %s\n    Bio: %s\n    Chemical: %s\n",
						p.Name, p.Severity, p.DamageSymptoms, p.BioControl, p.ChemControl)
				}
			}
			return nil
		},
	}
}
