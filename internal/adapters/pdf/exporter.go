// Package pdf exports books as paginated PDF documents
package pdf

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"

	"adler/internal/domain"
	"adler/internal/logger"
	"adler/internal/ports"
)

// Exporter implements ports.Exporter with pdfcpu
type Exporter struct {
	log *logger.Logger
}

// Ensure Exporter implements ports.Exporter
var _ ports.Exporter = (*Exporter)(nil)

// NewExporter creates a PDF exporter
func NewExporter(log *logger.Logger) *Exporter {
	if log == nil {
		log = logger.Discard()
	}
	return &Exporter{log: log}
}

// Export renders book into dir. The document is written to a temporary file
// that replaces the destination only when rendering succeeds.
func (e *Exporter) Export(ctx context.Context, book ports.ExportBook, dir string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := book.Filename
	if name == "" {
		name = domain.ExportFilename(book.Title)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrap(err, "failed to create export directory")
	}

	spec, err := Describe(Layout(book))
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(dir, ".adler-export-*.pdf")
	if err != nil {
		return "", errors.Wrap(err, "failed to create temp file")
	}
	defer os.Remove(tmp.Name())

	conf := model.NewDefaultConfiguration()
	if err := api.Create(nil, bytes.NewReader(spec), tmp, conf); err != nil {
		tmp.Close()
		return "", errors.Wrap(err, "failed to render pdf")
	}
	if err := tmp.Close(); err != nil {
		return "", errors.WithStack(err)
	}

	path := filepath.Join(dir, name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", errors.Wrap(err, "failed to write pdf")
	}

	e.log.Debug("pdf written", "path", path)
	return path, nil
}

type pdfDoc struct {
	Paper  string             `json:"paper"`
	Origin string             `json:"origin"`
	Pages  map[string]pdfPage `json:"pages"`
}

type pdfPage struct {
	Content pdfContent `json:"content"`
}

type pdfContent struct {
	Text []pdfText `json:"text"`
}

type pdfText struct {
	Value string     `json:"value"`
	Pos   [2]float64 `json:"pos"`
	Font  pdfFont    `json:"font"`
}

type pdfFont struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

// Describe builds the pdfcpu JSON page description for the laid out pages
func Describe(pages []Page) ([]byte, error) {
	doc := pdfDoc{
		Paper:  "A4P",
		Origin: "UpperLeft",
		Pages:  make(map[string]pdfPage, len(pages)),
	}
	for i, p := range pages {
		texts := make([]pdfText, 0, len(p.Lines))
		for _, l := range p.Lines {
			texts = append(texts, pdfText{
				Value: l.Text,
				Pos:   [2]float64{l.X, l.Y},
				Font:  pdfFont{Name: l.Font, Size: l.Size},
			})
		}
		doc.Pages[strconv.Itoa(i+1)] = pdfPage{Content: pdfContent{Text: texts}}
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "failed to describe pdf")
	}
	return data, nil
}
