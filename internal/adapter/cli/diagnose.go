package cli

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/krishiai/krishi-gateway/internal/usecase/advisory"
)

func diagnoseCommand(deps Dependencies) *cobra.Command {
	var crop string
	var focus string
	var query string
	var userCrops []string
	var save bool

	cmd := &cobra.Command{
		Use:   "diagnose <image>",
		Short: "Diagnose a crop problem from a photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			encoded, mimeType, err := loadImage(args[0])
			if err != nil {
				return err
			}

			diagnosis, err := deps.Advisor.DiagnoseCropImage(cmd.Context(), encoded, mimeType, advisory.DiagnoseOptions{
				Focus:      focus,
				CropFamily: crop,
				Query:      query,
				UserCrops:  parseCrops(userCrops),
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Diagnosis: %s\n", diagnosis.Diagnosis)
			_, _ = fmt.Fprintf(out, "Category: %s\n", diagnosis.Category)
			_, _ = fmt.Fprintf(out, "Confidence: %d%%\n\n", diagnosis.Confidence)
			_, _ = fmt.Fprintln(out, diagnosis.FullText)
			printCitations(out, diagnosis.Citations)

			if save && deps.DiagnosisSaver != nil {
				path, err := deps.DiagnosisSaver.Write(cmd.Context(), crop, diagnosis)
				if err != nil {
					return fmt.Errorf("save report: %w", err)
				}
				_, _ = fmt.Fprintf(out, "\nReport saved to %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&crop, "crop", "", "Crop family shown in the photo (e.g. ধান)")
	cmd.Flags().StringVar(&focus, "focus", "", "Diagnostic focus (e.g. পাতার দাগ)")
	cmd.Flags().StringVar(&query, "query", "", "Additional question about the photo")
	cmd.Flags().StringSliceVar(&userCrops, "user-crop", nil, "Crop the farmer grows, name[:season] (repeatable)")
	cmd.Flags().BoolVar(&save, "save", false, "Save the diagnosis as a Markdown report")

	return cmd
}

func identifyCommand(deps Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "identify <image>",
		Short: "Identify a plant, pest or weed from a photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			encoded, mimeType, err := loadImage(args[0])
			if err != nil {
				return err
			}

			report, err := deps.Advisor.IdentifyPlantSpecimen(cmd.Context(), encoded, mimeType)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), report.Text)
			printCitations(cmd.OutOrStdout(), report.Citations)
			return nil
		},
	}

	return cmd
}

// loadImage reads an image file and returns its base64 payload plus
// MIME type derived from the extension.
func loadImage(path string) (string, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("read image: %w", err)
	}

	var mimeType string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		mimeType = "image/jpeg"
	case ".png":
		mimeType = "image/png"
	case ".webp":
		mimeType = "image/webp"
	default:
		return "", "", fmt.Errorf("unsupported image type %q (expected .jpg, .png or .webp)", filepath.Ext(path))
	}

	return base64.StdEncoding.EncodeToString(data), mimeType, nil
}
