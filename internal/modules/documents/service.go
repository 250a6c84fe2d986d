package documents

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"docvault/internal/domain"
	"docvault/internal/repository"
)

type Options struct {
	AllowedExtensions []string
	DefaultCategory   string
}

// Service runs the upload, listing, download and delete pipelines.
type Service struct {
	docs            DocumentRepositoryInterface
	files           *FileStore
	allowed         map[string]bool
	defaultCategory string
	log             *zap.Logger
}

func NewService(docs DocumentRepositoryInterface, files *FileStore, opts Options, log *zap.Logger) *Service {
	allowed := make(map[string]bool, len(opts.AllowedExtensions))
	for _, ext := range opts.AllowedExtensions {
		allowed[strings.ToLower(strings.TrimPrefix(ext, "."))] = true
	}
	return &Service{
		docs:            docs,
		files:           files,
		allowed:         allowed,
		defaultCategory: opts.DefaultCategory,
		log:             log,
	}
}

func (s *Service) DefaultCategory() string { return s.defaultCategory }

// AllowedExtensions returns the accepted extensions, sorted.
func (s *Service) AllowedExtensions() []string {
	out := make([]string, 0, len(s.allowed))
	for ext := range s.allowed {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// Add validates the upload, stores its bytes under a collision-free name and
// then records the metadata row. Nothing touches the disk before validation
// passes; the file is removed again if the row cannot be written.
func (s *Service) Add(ctx context.Context, up Upload) (*domain.Document, error) {
	title := strings.TrimSpace(up.Title)
	if title == "" || up.Content == nil || up.Filename == "" {
		return nil, ErrMissingFields
	}

	ext, ok := Extension(up.Filename)
	if !ok || !s.allowed[ext] {
		return nil, ErrExtensionNotAllowed
	}

	stored, err := s.files.Save(StoredName(up.Filename), up.Content)
	if err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	category := strings.TrimSpace(up.Category)
	if category == "" {
		category = s.defaultCategory
	}

	doc := &domain.Document{Title: title, Category: category, Filename: stored}
	if err := s.docs.Create(ctx, doc); err != nil {
		if rmErr := s.files.Remove(stored); rmErr != nil {
			s.log.Error("orphaned upload after failed insert", zap.String("filename", stored), zap.Error(rmErr))
		}
		return nil, fmt.Errorf("save document: %w", err)
	}

	s.log.Debug("document stored", zap.Int64("id", doc.ID), zap.String("filename", stored))
	return doc, nil
}

// List returns documents newest first, optionally restricted to one category.
func (s *Service) List(ctx context.Context, category string) ([]*domain.Document, error) {
	return s.docs.List(ctx, category)
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.docs.Categories(ctx)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.docs.Count(ctx)
}

// Locate returns the document and the path of its bytes.
func (s *Service) Locate(ctx context.Context, id int64) (*domain.Document, string, error) {
	doc, err := s.get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	p, err := s.files.Path(doc.Filename)
	if err != nil {
		return nil, "", err
	}
	return doc, p, nil
}

// Delete removes the backing file, tolerating one that is already gone, and
// then the metadata row.
func (s *Service) Delete(ctx context.Context, id int64) error {
	doc, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.files.Remove(doc.Filename); err != nil {
		return fmt.Errorf("remove %s: %w", doc.Filename, err)
	}

	if err := s.docs.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDocumentNotFound
		}
		return err
	}
	return nil
}

func (s *Service) get(ctx context.Context, id int64) (*domain.Document, error) {
	doc, err := s.docs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return doc, nil
}
