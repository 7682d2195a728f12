package chunker

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// binary used to extract PDF text (poppler-utils)
var pdftotextBinary = "pdftotext"

// reads the book at path: a PDF is extracted with pdftotext, one page per form
// feed; a directory is read as one page per .txt or .md file in name order.
func LoadPages(ctx context.Context, path string) ([]Page, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat source: %w", err)
	}

	if info.IsDir() {
		return loadPageDir(path)
	}

	if strings.ToLower(filepath.Ext(path)) != ".pdf" {
		return nil, fmt.Errorf("unsupported source %s: expected a .pdf file or a directory of pages", path)
	}

	return loadPDF(ctx, path)
}

func loadPDF(ctx context.Context, path string) ([]Page, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, pdftotextBinary, "-layout", "-enc", "UTF-8", path, "-") //nolint:gosec // G204: path is the operator's ingest source
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("pdftotext failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	return splitFormFeeds(stdout.String()), nil
}

// pdftotext ends every page with \f
func splitFormFeeds(text string) []Page {
	raw := strings.Split(text, "\f")

	// trailing form feed leaves an empty last element
	if len(raw) > 0 && strings.TrimSpace(raw[len(raw)-1]) == "" {
		raw = raw[:len(raw)-1]
	}

	pages := make([]Page, 0, len(raw))
	for i, t := range raw {
		pages = append(pages, Page{Number: i + 1, Text: t})
	}

	return pages
}

func loadPageDir(dir string) ([]Page, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var names []string

	for _, entry := range entries {
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if entry.IsDir() || (ext != ".txt" && ext != ".md") {
			continue
		}

		names = append(names, entry.Name())
	}

	sort.Strings(names)

	pages := make([]Page, 0, len(names))

	for i, name := range names {
		content, err := os.ReadFile(filepath.Join(dir, name)) //nolint:gosec // G304: names come from ReadDir
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}

		pages = append(pages, Page{Number: i + 1, Text: string(content)})
	}

	return pages, nil
}
