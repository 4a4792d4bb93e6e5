// Package markdown renders advisory results into Markdown files for
// sharing and offline reference.
package markdown

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/krishiai/krishi-gateway/internal/domain"
)

type clock func() string

// DiagnosisArtifact is a diagnosis plus where to put it.
type DiagnosisArtifact struct {
	OutputDir string
	Crop      string
	Diagnosis domain.CropDiagnosis
}

// Writer renders crop diagnoses into Markdown files.
type Writer struct {
	now clock
}

// NewWriter constructs a Markdown writer with a timestamp supplier.
func NewWriter(now clock) *Writer {
	return &Writer{now: now}
}

// Write persists a Markdown artifact to disk and returns its path.
func (w *Writer) Write(ctx context.Context, artifact DiagnosisArtifact) (string, error) {
	if err := os.MkdirAll(artifact.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	filename := fmt.Sprintf("diagnosis_%s_%s.md", sanitise(artifact.Crop), w.now())
	path := filepath.Join(artifact.OutputDir, filename)

	content := buildContent(artifact)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write markdown: %w", err)
	}

	return path, nil
}

func buildContent(artifact DiagnosisArtifact) string {
	var builder strings.Builder
	caser := cases.Title(language.English)
	d := artifact.Diagnosis

	builder.WriteString("# Crop Diagnosis Report\n\n")
	if artifact.Crop != "" {
		builder.WriteString(fmt.Sprintf("- Crop: %s\n", artifact.Crop))
	}
	builder.WriteString(fmt.Sprintf("- Diagnosis: %s\n", d.Diagnosis))
	builder.WriteString(fmt.Sprintf("- Category: %s\n", caser.String(string(d.Category))))
	builder.WriteString(fmt.Sprintf("- Confidence: %d%%\n\n", d.Confidence))

	if d.Management != "" {
		builder.WriteString("## Management Protocol\n\n")
		builder.WriteString(d.Management)
		builder.WriteString("\n\n")
	}

	if d.Source != "" {
		builder.WriteString(fmt.Sprintf("Source: %s\n\n", d.Source))
	}

	builder.WriteString("## Full Advisory\n\n")
	builder.WriteString(d.FullText)
	builder.WriteString("\n")

	if len(d.Citations) == 0 {
		return builder.String()
	}

	builder.WriteString("\n## References\n\n")
	for _, c := range d.Citations {
		title := c.Title
		if title == "" {
			title = c.URI
		}
		builder.WriteString(fmt.Sprintf("- [%s](%s)\n", title, c.URI))
	}

	return builder.String()
}

func sanitise(value string) string {
	if value == "" {
		return "unknown"
	}
	value = strings.ToLower(value)
	value = strings.ReplaceAll(value, string(filepath.Separator), "-")
	value = strings.ReplaceAll(value, " ", "-")
	return value
}
