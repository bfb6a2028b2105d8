package application

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"adler/internal/domain"
	"adler/internal/logger"
	"adler/internal/ports"
)

// Document owns the book collection and the active book. Every mutation is
// saved once and re-projected once before it returns.
type Document struct {
	mu      sync.Mutex
	books   []domain.Book
	active  string
	persist *Persistence
	sink    ports.OutlineSink
	newID   domain.IDFunc
	log     *logger.Logger
}

// Option configures a Document
type Option func(*Document)

// WithIDFunc overrides the identifier generator
func WithIDFunc(f domain.IDFunc) Option {
	return func(d *Document) {
		d.newID = f
	}
}

// WithLogger sets the document logger
func WithLogger(l *logger.Logger) Option {
	return func(d *Document) {
		d.log = l
	}
}

// NewDocument creates an empty document. Call Load to read the stored books.
// A nil sink discards projections.
func NewDocument(persist *Persistence, sink ports.OutlineSink, opts ...Option) *Document {
	d := &Document{
		books:   []domain.Book{},
		persist: persist,
		sink:    sink,
		newID:   domain.NewID,
		log:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.sink == nil {
		d.sink = ports.OutlineSinkFunc(func(string) {})
	}
	persist.newID = d.newID
	return d
}

// Load replaces the in-memory collection with the stored one, selects the
// first book and projects it.
func (d *Document) Load(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.books = d.persist.Load(ctx)
	d.active = ""
	if len(d.books) > 0 {
		d.active = d.books[0].ID
	}
	d.redraw()
}

// Reload re-reads the store after an external write, keeping the active book
// when it still exists.
func (d *Document) Reload(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.books = d.persist.Load(ctx)
	if d.indexOf(d.active) < 0 {
		d.active = ""
		if len(d.books) > 0 {
			d.active = d.books[0].ID
		}
	}
	d.redraw()
}

// Books returns a copy of the collection in display order
func (d *Document) Books() []domain.Book {
	d.mu.Lock()
	defer d.mu.Unlock()
	return domain.CloneBooks(d.books)
}

// Book returns a copy of the book with the given id
func (d *Document) Book(id string) (domain.Book, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	i, err := d.find(id)
	if err != nil {
		return domain.Book{}, err
	}
	return d.books[i].Clone(), nil
}

// Active returns a copy of the active book, or false when there is none
func (d *Document) Active() (domain.Book, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.indexOf(d.active)
	if i < 0 {
		return domain.Book{}, false
	}
	return d.books[i].Clone(), true
}

// ActiveID returns the id of the active book, or "" when there is none
func (d *Document) ActiveID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active
}

// Outline returns the primary projection of the active book
func (d *Document) Outline() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return domain.Project(d.activeBook())
}

// BookOutline returns the primary projection of the given book
func (d *Document) BookOutline(id string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	i, err := d.find(id)
	if err != nil {
		return "", err
	}
	return domain.Project(&d.books[i]), nil
}

// ExportOutline returns the export projection of the given book
func (d *Document) ExportOutline(id string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	i, err := d.find(id)
	if err != nil {
		return "", err
	}
	return domain.ProjectExport(&d.books[i]), nil
}

// ResolveBookID accepts a full id or a unique id prefix or suffix. UUIDv7
// ids created close together share a prefix, so listings show the suffix.
func (d *Document) ResolveBookID(ref string) (string, error) {
	if err := ValidateRequired("bookID", ref); err != nil {
		return "", err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.indexOf(ref) >= 0 {
		return ref, nil
	}
	var match string
	for _, b := range d.books {
		if strings.HasPrefix(b.ID, ref) || strings.HasSuffix(b.ID, ref) {
			if match != "" && match != b.ID {
				return "", &ValidationError{Field: "bookID", Message: "ambiguous prefix: " + ref}
			}
			match = b.ID
		}
	}
	if match == "" {
		return "", &NotFoundError{Kind: "book", Ref: ref}
	}
	return match, nil
}

// SelectBook makes the given book active. Selection is not persisted.
func (d *Document) SelectBook(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.find(id); err != nil {
		return err
	}
	d.active = id
	d.redraw()
	return nil
}

// CreateBook prepends an empty book and makes it active
func (d *Document) CreateBook(ctx context.Context) (domain.Book, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	b := domain.NewBook(d.newID())
	d.books = slices.Insert(d.books, 0, b)
	d.active = b.ID
	return b.Clone(), d.commit(ctx)
}

// DeleteBook removes a book. When it was active, the first remaining book
// becomes active, or none.
func (d *Document) DeleteBook(ctx context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	i, err := d.find(id)
	if err != nil {
		return err
	}
	d.books = slices.Delete(d.books, i, i+1)
	if d.active == id {
		d.active = ""
		if len(d.books) > 0 {
			d.active = d.books[0].ID
		}
	}
	return d.commit(ctx)
}

// RenameBook sets a book title
func (d *Document) RenameBook(ctx context.Context, id, title string) error {
	return d.updateBook(ctx, id, func(b *domain.Book) error {
		b.Title = title
		return nil
	})
}

// SetBookDescription sets a book description
func (d *Document) SetBookDescription(ctx context.Context, id, text string) error {
	return d.updateBook(ctx, id, func(b *domain.Book) error {
		b.Description = text
		return nil
	})
}

// SetBookType classifies a book as theoretical or practical
func (d *Document) SetBookType(ctx context.Context, id string, t domain.BookType) error {
	if err := ValidateBookType(t); err != nil {
		return err
	}
	return d.updateBook(ctx, id, func(b *domain.Book) error {
		b.Type = t
		return nil
	})
}

// CreateChapter appends an empty chapter to a book
func (d *Document) CreateChapter(ctx context.Context, bookID string) (domain.Chapter, error) {
	var ch domain.Chapter
	err := d.updateBook(ctx, bookID, func(b *domain.Book) error {
		ch = domain.NewChapter(d.newID())
		b.Chapters = append(b.Chapters, ch)
		return nil
	})
	return ch.Clone(), err
}

// DeleteChapter removes the chapter at ci
func (d *Document) DeleteChapter(ctx context.Context, bookID string, ci int) error {
	return d.updateBook(ctx, bookID, func(b *domain.Book) error {
		if err := ValidateIndex("chapter", ci, len(b.Chapters)); err != nil {
			return err
		}
		b.Chapters = slices.Delete(b.Chapters, ci, ci+1)
		return nil
	})
}

// RenameChapter sets the title of the chapter at ci
func (d *Document) RenameChapter(ctx context.Context, bookID string, ci int, title string) error {
	return d.updateChapter(ctx, bookID, ci, func(ch *domain.Chapter) error {
		ch.Title = title
		return nil
	})
}

// SetChapterDescription sets the description of the chapter at ci
func (d *Document) SetChapterDescription(ctx context.Context, bookID string, ci int, text string) error {
	return d.updateChapter(ctx, bookID, ci, func(ch *domain.Chapter) error {
		ch.Description = text
		return nil
	})
}

// MoveChapter moves the chapter at from to position to. Equal positions do
// nothing: no save and no projection.
func (d *Document) MoveChapter(ctx context.Context, bookID string, from, to int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	i, err := d.find(bookID)
	if err != nil {
		return err
	}
	b := &d.books[i]
	if err := validateMove("chapter", from, to, len(b.Chapters)); err != nil {
		return err
	}
	if from == to {
		return nil
	}
	b.Chapters = domain.Move(b.Chapters, from, to)
	return d.commit(ctx)
}

// ReorderChapters replaces the chapter order with the given ids, which must
// be a permutation of the current chapter ids.
func (d *Document) ReorderChapters(ctx context.Context, bookID string, order []string) error {
	return d.updateBook(ctx, bookID, func(b *domain.Book) error {
		current := make([]string, len(b.Chapters))
		byID := make(map[string]domain.Chapter, len(b.Chapters))
		for i, ch := range b.Chapters {
			current[i] = ch.ID
			byID[ch.ID] = ch
		}
		if err := ValidatePermutation(current, order); err != nil {
			return err
		}

		reordered := make([]domain.Chapter, len(order))
		for i, id := range order {
			reordered[i] = byID[id]
		}
		b.Chapters = reordered
		return nil
	})
}

// AddDefinition appends an empty definition to the chapter at ci
func (d *Document) AddDefinition(ctx context.Context, bookID string, ci int) error {
	return d.updateChapter(ctx, bookID, ci, func(ch *domain.Chapter) error {
		ch.Definitions = append(ch.Definitions, domain.Definition{})
		return nil
	})
}

// UpdateDefinition sets one field of the definition at ei
func (d *Document) UpdateDefinition(ctx context.Context, bookID string, ci, ei int, field domain.DefinitionField, value string) error {
	if err := ValidateDefinitionField(field); err != nil {
		return err
	}
	return d.updateChapter(ctx, bookID, ci, func(ch *domain.Chapter) error {
		if err := ValidateIndex("definition", ei, len(ch.Definitions)); err != nil {
			return err
		}
		ch.Definitions[ei].Set(field, value)
		return nil
	})
}

// DeleteDefinition removes the definition at ei
func (d *Document) DeleteDefinition(ctx context.Context, bookID string, ci, ei int) error {
	return d.updateChapter(ctx, bookID, ci, func(ch *domain.Chapter) error {
		if err := ValidateIndex("definition", ei, len(ch.Definitions)); err != nil {
			return err
		}
		ch.Definitions = slices.Delete(ch.Definitions, ei, ei+1)
		return nil
	})
}

// ReorderDefinitions replaces the definitions of the chapter at ci with final
func (d *Document) ReorderDefinitions(ctx context.Context, bookID string, ci int, final []domain.Definition) error {
	return d.updateChapter(ctx, bookID, ci, func(ch *domain.Chapter) error {
		ch.Definitions = append([]domain.Definition{}, final...)
		return nil
	})
}

// MoveDefinition moves the definition at from to position to. Equal
// positions do nothing.
func (d *Document) MoveDefinition(ctx context.Context, bookID string, ci, from, to int) error {
	return d.updateChapter(ctx, bookID, ci, func(ch *domain.Chapter) error {
		if err := validateMove("definition", from, to, len(ch.Definitions)); err != nil {
			return err
		}
		if from == to {
			return errUnchanged
		}
		ch.Definitions = domain.Move(ch.Definitions, from, to)
		return nil
	})
}

// AddProposition appends an empty proposition to the chapter at ci
func (d *Document) AddProposition(ctx context.Context, bookID string, ci int) error {
	return d.updateChapter(ctx, bookID, ci, func(ch *domain.Chapter) error {
		ch.Propositions = append(ch.Propositions, domain.Proposition{})
		return nil
	})
}

// UpdateProposition sets the text of the proposition at ei
func (d *Document) UpdateProposition(ctx context.Context, bookID string, ci, ei int, text string) error {
	return d.updateChapter(ctx, bookID, ci, func(ch *domain.Chapter) error {
		if err := ValidateIndex("proposition", ei, len(ch.Propositions)); err != nil {
			return err
		}
		ch.Propositions[ei].Text = text
		return nil
	})
}

// DeleteProposition removes the proposition at ei
func (d *Document) DeleteProposition(ctx context.Context, bookID string, ci, ei int) error {
	return d.updateChapter(ctx, bookID, ci, func(ch *domain.Chapter) error {
		if err := ValidateIndex("proposition", ei, len(ch.Propositions)); err != nil {
			return err
		}
		ch.Propositions = slices.Delete(ch.Propositions, ei, ei+1)
		return nil
	})
}

// ReorderPropositions replaces the propositions of the chapter at ci with final
func (d *Document) ReorderPropositions(ctx context.Context, bookID string, ci int, final []domain.Proposition) error {
	return d.updateChapter(ctx, bookID, ci, func(ch *domain.Chapter) error {
		ch.Propositions = append([]domain.Proposition{}, final...)
		return nil
	})
}

// MoveProposition moves the proposition at from to position to. Equal
// positions do nothing.
func (d *Document) MoveProposition(ctx context.Context, bookID string, ci, from, to int) error {
	return d.updateChapter(ctx, bookID, ci, func(ch *domain.Chapter) error {
		if err := validateMove("proposition", from, to, len(ch.Propositions)); err != nil {
			return err
		}
		if from == to {
			return errUnchanged
		}
		ch.Propositions = domain.Move(ch.Propositions, from, to)
		return nil
	})
}

// errUnchanged lets an update closure skip the save and the projection
var errUnchanged = errors.New("unchanged")

// updateBook applies fn to a book under the lock and commits when fn succeeds
func (d *Document) updateBook(ctx context.Context, id string, fn func(*domain.Book) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	i, err := d.find(id)
	if err != nil {
		return err
	}
	if err := fn(&d.books[i]); err != nil {
		if errors.Is(err, errUnchanged) {
			return nil
		}
		return err
	}
	return d.commit(ctx)
}

func (d *Document) updateChapter(ctx context.Context, bookID string, ci int, fn func(*domain.Chapter) error) error {
	return d.updateBook(ctx, bookID, func(b *domain.Book) error {
		if err := ValidateIndex("chapter", ci, len(b.Chapters)); err != nil {
			return err
		}
		return fn(&b.Chapters[ci])
	})
}

// commit saves the collection and emits the projection of the active book.
// A failed save keeps the mutation and still redraws.
func (d *Document) commit(ctx context.Context) error {
	err := d.persist.Save(ctx, d.books)
	d.redraw()
	return err
}

func (d *Document) redraw() {
	d.sink.Redraw(domain.Project(d.activeBook()))
}

func (d *Document) activeBook() *domain.Book {
	i := d.indexOf(d.active)
	if i < 0 {
		return nil
	}
	return &d.books[i]
}

func (d *Document) indexOf(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(d.books, func(b domain.Book) bool { return b.ID == id })
}

func (d *Document) find(id string) (int, error) {
	if err := ValidateRequired("bookID", id); err != nil {
		return -1, err
	}
	i := d.indexOf(id)
	if i < 0 {
		return -1, &NotFoundError{Kind: "book", Ref: id}
	}
	return i, nil
}

func validateMove(kind string, from, to, n int) error {
	if err := ValidateIndex(kind, from, n); err != nil {
		return err
	}
	return ValidateIndex(kind, to, n)
}
