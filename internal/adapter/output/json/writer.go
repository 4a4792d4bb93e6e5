// Package json persists structured advisory results (schedules,
// quizzes, price tables) as JSON files.
package json

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Artifact is a named payload plus where to put it.
type Artifact struct {
	OutputDir string
	Name      string // e.g. "crop-schedule", "quiz"
	Payload   interface{}
}

// Writer saves advisory payloads to disk as indented JSON.
type Writer struct {
	now func() string
}

// NewWriter creates a new JSON writer.
func NewWriter(now func() string) *Writer {
	return &Writer{now: now}
}

// Write persists the artifact and returns the file path.
func (w *Writer) Write(ctx context.Context, artifact Artifact) (string, error) {
	if err := os.MkdirAll(artifact.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	name := artifact.Name
	if name == "" {
		name = "result"
	}
	name = strings.ReplaceAll(strings.ToLower(name), " ", "-")

	filePath := filepath.Join(artifact.OutputDir, fmt.Sprintf("%s-%s.json", name, w.now()))

	file, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create json file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(artifact.Payload); err != nil {
		return "", fmt.Errorf("failed to encode result to json: %w", err)
	}

	return filePath, nil
}
