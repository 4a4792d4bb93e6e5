package cli

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func speakCommand(deps Dependencies) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "speak <text>",
		Short: "Synthesize advisory text to speech",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := deps.Advisor.SynthesizeSpeech(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			if err := os.WriteFile(outPath, buf.WAV(), 0o644); err != nil {
				return fmt.Errorf("write audio: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%.1fs, %d frames)\n",
				outPath, buf.Duration(), buf.FrameCount())
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "speech.wav", "Output WAV file")

	return cmd
}

func imageCommand(deps Dependencies) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "image <prompt>",
		Short: "Generate a field illustration from a prompt",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := deps.Advisor.GenerateFieldImage(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			data, err := base64.StdEncoding.DecodeString(img.Data)
			if err != nil {
				return fmt.Errorf("decode image payload: %w", err)
			}

			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return fmt.Errorf("write image: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s, %d bytes)\n", outPath, img.MIMEType, len(data))
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "field.png", "Output image file")

	return cmd
}
