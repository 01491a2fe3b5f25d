// Package store maintains the in-memory mirror of the remote collections
// and implements every mutation operation against them.
// The remote document database is the system of record; the cache is
// populated by full-collection fetches and mirrored on every successful
// write. Divergence is only ever corrected by a full refresh.
package store

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"

	"github.com/islamizindagi/backend/internal/models"
	"github.com/islamizindagi/backend/internal/notify"
	"github.com/islamizindagi/backend/internal/remote"
	"go.uber.org/zap"
)

// Collection names in the remote document database
const (
	CollectionDars            = "dars"
	CollectionSeries          = "series"
	CollectionQuestions       = "questions"
	CollectionCategories      = "categories"
	CollectionEvents          = "events"
	CollectionEventCategories = "event_categories"
	CollectionSavedItems      = "saved_items"
	CollectionDarsProgress    = "dars_progress"
)

// ErrValidation is returned when a mutation is missing required fields.
// Validation failures never reach the remote store and emit no
// notification: the action silently no-ops.
var ErrValidation = errors.New("required fields are missing")

// ErrNotFound is returned when a mutation targets a record absent from the cache
var ErrNotFound = errors.New("record not found")

// Documents is the interface that wraps the document database contract.
type Documents interface {
	// ListDocuments fetches documents of a collection matching the queries
	// and decodes them into out, which must be a pointer to a slice.
	ListDocuments(ctx context.Context, collection string, queries []remote.Query, out any) error
	// CreateDocument creates a document and decodes the created record
	// (with its vendor-assigned id and creation timestamp) into out.
	CreateDocument(ctx context.Context, collection string, data any, out any) error
	// UpdateDocument replaces the application fields of a document.
	UpdateDocument(ctx context.Context, collection, documentID string, data any, out any) error
	// DeleteDocument removes a document.
	DeleteDocument(ctx context.Context, collection, documentID string) error
}

// FileStorage is the interface that wraps the file storage contract.
type FileStorage interface {
	// UploadFile uploads a single file and returns the stored file.
	UploadFile(ctx context.Context, name string, reader io.Reader) (*remote.File, error)
	// ViewURL builds the deterministic public view URL for a stored file.
	ViewURL(fileID string) string
}

// Store is the entity cache: one in-memory slice per entity type,
// mutated in lockstep with every successful remote write
type Store struct {
	docs     Documents
	files    FileStorage
	notifier notify.Notifier
	logger   *zap.Logger

	mu              sync.RWMutex
	dars            []models.Dars
	series          []models.Series
	questions       []models.Question
	events          []models.Event
	categories      []models.Category
	eventCategories []models.EventCategory
	savedItems      []models.SavedItem
	progress        []models.DarsProgress
}

// New creates a new entity cache over the given remote contracts
func New(docs Documents, files FileStorage, notifier notify.Notifier, logger *zap.Logger) *Store {
	return &Store{
		docs:     docs,
		files:    files,
		notifier: notifier,
		logger:   logger,
	}
}

// RefreshData unconditionally replaces every in-memory slice with a fresh
// full-collection fetch. Each collection is failure-isolated: a failed
// fetch logs and leaves that slice empty without aborting the others.
// Per-user collections (saved items, progress) are fetched for the given
// user, or cleared when userID is empty (logout).
func (s *Store) RefreshData(ctx context.Context, userID string) {
	dars := s.fetchDars(ctx)
	series := s.fetchSeries(ctx)
	questions := s.fetchQuestions(ctx)
	events := s.fetchEvents(ctx)
	categories := s.fetchCategories(ctx)
	eventCategories := s.fetchEventCategories(ctx)

	var savedItems []models.SavedItem
	var progress []models.DarsProgress
	if userID != "" {
		savedItems = s.fetchSavedItems(ctx, userID)
		progress = s.fetchProgress(ctx, userID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.dars = dars
	s.series = series
	s.questions = questions
	s.events = events
	s.categories = categories
	s.eventCategories = eventCategories
	s.savedItems = savedItems
	s.progress = progress
}

func (s *Store) fetchDars(ctx context.Context) []models.Dars {
	var out []models.Dars
	if err := s.docs.ListDocuments(ctx, CollectionDars, []remote.Query{remote.OrderDesc("createdAt")}, &out); err != nil {
		s.logger.Error("failed to fetch dars collection", zap.Error(err))
		return nil
	}
	return out
}

func (s *Store) fetchSeries(ctx context.Context) []models.Series {
	var out []models.Series
	if err := s.docs.ListDocuments(ctx, CollectionSeries, nil, &out); err != nil {
		s.logger.Error("failed to fetch series collection", zap.Error(err))
		return nil
	}
	return out
}

func (s *Store) fetchQuestions(ctx context.Context) []models.Question {
	var out []models.Question
	if err := s.docs.ListDocuments(ctx, CollectionQuestions, []remote.Query{remote.OrderDesc("createdAt")}, &out); err != nil {
		s.logger.Error("failed to fetch questions collection", zap.Error(err))
		return nil
	}
	return out
}

func (s *Store) fetchEvents(ctx context.Context) []models.Event {
	var out []models.Event
	if err := s.docs.ListDocuments(ctx, CollectionEvents, []remote.Query{remote.OrderAsc("eventDate")}, &out); err != nil {
		s.logger.Error("failed to fetch events collection", zap.Error(err))
		return nil
	}
	return out
}

func (s *Store) fetchCategories(ctx context.Context) []models.Category {
	var out []models.Category
	if err := s.docs.ListDocuments(ctx, CollectionCategories, nil, &out); err != nil {
		s.logger.Error("failed to fetch categories collection", zap.Error(err))
		return nil
	}
	return out
}

func (s *Store) fetchEventCategories(ctx context.Context) []models.EventCategory {
	var out []models.EventCategory
	if err := s.docs.ListDocuments(ctx, CollectionEventCategories, nil, &out); err != nil {
		s.logger.Error("failed to fetch event categories collection", zap.Error(err))
		return nil
	}
	return out
}

func (s *Store) fetchSavedItems(ctx context.Context, userID string) []models.SavedItem {
	var out []models.SavedItem
	if err := s.docs.ListDocuments(ctx, CollectionSavedItems, []remote.Query{remote.Equal("userId", userID)}, &out); err != nil {
		s.logger.Error("failed to fetch saved items collection", zap.Error(err))
		return nil
	}
	return out
}

func (s *Store) fetchProgress(ctx context.Context, userID string) []models.DarsProgress {
	var out []models.DarsProgress
	queries := []remote.Query{
		remote.Equal("userId", userID),
		remote.OrderDesc("lastVisitedAt"),
	}
	if err := s.docs.ListDocuments(ctx, CollectionDarsProgress, queries, &out); err != nil {
		s.logger.Error("failed to fetch dars progress collection", zap.Error(err))
		return nil
	}
	return out
}

// Dars returns a copy of the cached dars slice
func (s *Store) Dars() []models.Dars {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Dars(nil), s.dars...)
}

// Series returns a copy of the cached series slice
func (s *Store) Series() []models.Series {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Series(nil), s.series...)
}

// Questions returns a copy of the cached questions slice
func (s *Store) Questions() []models.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Question(nil), s.questions...)
}

// Events returns a copy of the cached events slice
func (s *Store) Events() []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Event(nil), s.events...)
}

// Categories returns a copy of the cached categories slice
func (s *Store) Categories() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Category(nil), s.categories...)
}

// EventCategories returns a copy of the cached event categories slice
func (s *Store) EventCategories() []models.EventCategory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.EventCategory(nil), s.eventCategories...)
}

// SavedItems returns a copy of the cached saved items slice
func (s *Store) SavedItems() []models.SavedItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.SavedItem(nil), s.savedItems...)
}

// Progress returns a copy of the cached progress slice, ordered by most
// recently visited first
func (s *Store) Progress() []models.DarsProgress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.DarsProgress(nil), s.progress...)
}

// uploadAttachments uploads each file strictly sequentially, collecting
// view URLs. Any failure aborts the remaining uploads and the whole
// mutation; files uploaded earlier in the batch are not cleaned up.
func (s *Store) uploadAttachments(ctx context.Context, uploads []models.AttachmentUpload) ([]models.Attachment, error) {
	attachments := make([]models.Attachment, 0, len(uploads))
	for _, upload := range uploads {
		file, err := s.files.UploadFile(ctx, upload.Name, upload.Reader)
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, models.Attachment{
			ID:   file.ID,
			Name: upload.Name,
			URL:  s.files.ViewURL(file.ID),
		})
	}
	return attachments, nil
}

// sortProgressLocked re-sorts the progress slice by last visit descending.
// Recently-viewed views depend on this array order. Callers must hold mu.
func (s *Store) sortProgressLocked() {
	sort.SliceStable(s.progress, func(i, j int) bool {
		return s.progress[i].LastVisitedAt.After(s.progress[j].LastVisitedAt)
	})
}
