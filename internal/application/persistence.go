package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/segmentio/encoding/json"

	"adler/internal/domain"
	"adler/internal/logger"
	"adler/internal/ports"
)

// DefaultStorageKey is the key the book collection is stored under
const DefaultStorageKey = "adler_books_v1"

// Persistence reads and writes the whole book collection as one blob
type Persistence struct {
	store ports.BlobStore
	key   string
	newID domain.IDFunc
	log   *logger.Logger
}

// NewPersistence creates a persistence adapter over store. An empty key
// selects DefaultStorageKey.
func NewPersistence(store ports.BlobStore, key string, log *logger.Logger) *Persistence {
	if key == "" {
		key = DefaultStorageKey
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Persistence{
		store: store,
		key:   key,
		newID: domain.NewID,
		log:   log,
	}
}

// Key returns the storage key
func (p *Persistence) Key() string {
	return p.key
}

// Load returns the stored books, normalized. A missing blob, a read failure
// or a malformed blob all yield an empty collection.
func (p *Persistence) Load(ctx context.Context) []domain.Book {
	data, err := p.store.Get(ctx, p.key)
	if err != nil {
		if !errors.Is(err, ports.ErrBlobNotFound) {
			p.log.LoadFailed(p.key, err)
		}
		return []domain.Book{}
	}

	books, err := Decode(data, p.newID)
	if err != nil {
		p.log.LoadFailed(p.key, err)
		return []domain.Book{}
	}
	return books
}

// Save overwrites the stored collection with books
func (p *Persistence) Save(ctx context.Context, books []domain.Book) error {
	data, err := Encode(books)
	if err != nil {
		return err
	}
	if err := p.store.Put(ctx, p.key, data); err != nil {
		p.log.SaveFailed(p.key, err)
		return fmt.Errorf("failed to save books: %w", err)
	}
	p.log.Saved(p.key, len(books), len(data))
	return nil
}

// Encode serializes books to the stored JSON shape
func Encode(books []domain.Book) ([]byte, error) {
	data, err := json.Marshal(domain.Records(books))
	if err != nil {
		return nil, fmt.Errorf("failed to encode books: %w", err)
	}
	return data, nil
}

// Decode parses a stored JSON array and normalizes every book. An empty or
// "null" document decodes to an empty collection.
func Decode(data []byte, newID domain.IDFunc) ([]domain.Book, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []domain.Book{}, nil
	}
	var records []domain.BookRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode books: %w", err)
	}
	return domain.NormalizeBooks(records, newID), nil
}
