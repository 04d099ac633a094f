package dataset

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"dataprep/internal/util"

	"github.com/ledongthuc/pdf"
)

const DefaultExtension = ".txt"

// Document is one loaded input file.
type Document struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

type LoaderOptions struct {
	// Extensions are lower-case, dot-prefixed. Empty means ".txt" only.
	Extensions []string
}

// LoadCorpus reads every matching regular file directly inside dir, in
// lexicographic file-name order. A missing, unreadable or empty directory is
// reported as util.ErrInputNotFound.
func LoadCorpus(ctx context.Context, dir string, opts LoaderOptions) ([]Document, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("%w: no directory selected", util.ErrInputNotFound)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: read input dir: %v", util.ErrInputNotFound, err)
	}
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = []string{DefaultExtension}
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if hasExtension(e.Name(), exts) {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no %s files in %s", util.ErrInputNotFound, strings.Join(exts, "/"), dir)
	}
	sort.Strings(names)

	docs := make([]Document, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := readDocument(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", util.ErrInputNotFound, err)
		}
		docs = append(docs, Document{Name: name, Text: text})
	}
	return docs, nil
}

func Texts(docs []Document) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Text)
	}
	return out
}

func hasExtension(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

func readDocument(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return readPDF(path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return util.SanitizeText(string(b)), nil
}

func readPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text %s: %w", filepath.Base(path), err)
	}
	buf := new(strings.Builder)
	if _, err := io.Copy(buf, reader); err != nil {
		return "", fmt.Errorf("read extracted text %s: %w", filepath.Base(path), err)
	}
	return util.SanitizeText(buf.String()), nil
}
