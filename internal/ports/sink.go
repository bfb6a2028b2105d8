package ports

import "context"

// OutlineSink receives the primary projection after every document change.
// Implementations must not block: the document holds its lock while calling.
type OutlineSink interface {
	Redraw(outline string)
}

// OutlineSinkFunc adapts a function to OutlineSink
type OutlineSinkFunc func(outline string)

// Redraw calls f(outline)
func (f OutlineSinkFunc) Redraw(outline string) {
	f(outline)
}

// Exporter turns a book into a paginated document on disk
type Exporter interface {
	// Export writes the document into dir and returns its path
	Export(ctx context.Context, book ExportBook, dir string) (string, error)
}

// ExportBook is the material handed to an Exporter: the title and
// description are rendered once, followed by the export outline.
type ExportBook struct {
	Title       string
	Description string
	Outline     string
	Filename    string
}
