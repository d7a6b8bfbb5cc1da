package service

import (
	"context"

	"devjournal/cmd/internal/contract"
	"devjournal/cmd/internal/domain/entity"
	"devjournal/cmd/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

// EntryRepository is implemented by every store backend.
type EntryRepository interface {
	// FindAll returns every entry, newest first.
	FindAll(ctx context.Context) ([]*entity.Entry, error)
	// FindByID returns nil, nil when the entry does not exist.
	FindByID(ctx context.Context, id string) (*entity.Entry, error)
	// Create assigns the id and both timestamps.
	Create(ctx context.Context, entry *entity.Entry) error
	// Update returns nil, nil when the entry does not exist.
	Update(ctx context.Context, id, title, content string) (*entity.Entry, error)
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, id string) (bool, error)
}

type EntryService struct {
	repo     EntryRepository
	validate *validator.Validate
}

func NewEntryService(repo EntryRepository, validate *validator.Validate) *EntryService {
	return &EntryService{
		repo:     repo,
		validate: validate,
	}
}

func (s *EntryService) ListAll(ctx context.Context) ([]*entity.Entry, error) {
	entries, err := s.repo.FindAll(ctx)
	if err != nil {
		log.Errorf("failed to fetch entries: %v", err)
		return nil, &StoreError{Op: OpList, Err: err}
	}

	if entries == nil {
		entries = []*entity.Entry{}
	}
	return entries, nil
}

func (s *EntryService) GetByID(ctx context.Context, id string) (*entity.Entry, error) {
	entry, err := s.find(ctx, id, OpGet)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *EntryService) Create(ctx context.Context, req *contract.EntryRequest) (*entity.Entry, error) {
	in := normalize(req)
	if err := s.validateEntry(&in); err != nil {
		return nil, err
	}

	entry := &entity.Entry{
		Title:   in.Title,
		Content: in.Content,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		log.Errorf("failed to create entry: %v", err)
		return nil, &StoreError{Op: OpCreate, Err: err}
	}
	return entry, nil
}

// Update reports ErrNotFound before looking at the request body.
func (s *EntryService) Update(ctx context.Context, id string, req *contract.EntryRequest) (*entity.Entry, error) {
	if _, err := s.find(ctx, id, OpUpdate); err != nil {
		return nil, err
	}

	in := normalize(req)
	if err := s.validateEntry(&in); err != nil {
		return nil, err
	}

	entry, err := s.repo.Update(ctx, id, in.Title, in.Content)
	if err != nil {
		log.Errorf("failed to update entry %s: %v", id, err)
		return nil, &StoreError{Op: OpUpdate, Err: err}
	}

	// Removed between the lookup and the write.
	if entry == nil {
		return nil, ErrNotFound
	}
	return entry, nil
}

func (s *EntryService) Delete(ctx context.Context, id string) error {
	if !isEntryID(id) {
		return ErrNotFound
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		log.Errorf("failed to delete entry %s: %v", id, err)
		return &StoreError{Op: OpDelete, Err: err}
	}

	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *EntryService) find(ctx context.Context, id, op string) (*entity.Entry, error) {
	if !isEntryID(id) {
		return nil, ErrNotFound
	}

	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		log.Errorf("failed to fetch entry %s: %v", id, err)
		return nil, &StoreError{Op: op, Err: err}
	}

	if entry == nil {
		return nil, ErrNotFound
	}
	return entry, nil
}

// normalize copies req with surrounding whitespace removed; a nil request
// behaves like one with every field absent.
func normalize(req *contract.EntryRequest) contract.EntryRequest {
	var in contract.EntryRequest
	if req != nil {
		in = *req
	}

	utils.Sanitize(&in)
	return in
}

func isEntryID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
