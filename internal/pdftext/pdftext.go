// Package pdftext extracts the text layer of a PDF by shelling out to
// pdftotext from poppler-utils.
package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os/exec"
	"strings"
)

// Runner lets tests stub the external command.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb
	err := cmd.Run()
	if err != nil {
		log.Printf("pdftext: %s %s failed: %v", name, strings.Join(args, " "), err)
	}
	return out.Bytes(), errb.Bytes(), err
}

// Extractor wraps the pdftotext binary.
type Extractor struct {
	binary string
	runner Runner
}

// NewExtractor uses the pdftotext found on PATH.
func NewExtractor() *Extractor {
	return &Extractor{binary: "pdftotext", runner: execRunner{}}
}

// NewExtractorWithRunner injects a custom runner (for testing).
func NewExtractorWithRunner(binary string, runner Runner) *Extractor {
	if binary == "" {
		binary = "pdftotext"
	}
	return &Extractor{binary: binary, runner: runner}
}

// ExtractFile returns the text layer of the PDF at path. Scanned PDFs with
// no text layer yield an empty string, which the caller treats as "send it
// to the vision model instead".
func (e *Extractor) ExtractFile(ctx context.Context, path string) (string, error) {
	out, errb, err := e.runner.Run(ctx, e.binary, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w (%s)", err, strings.TrimSpace(string(errb)))
	}
	return strings.TrimSpace(string(out)), nil
}
