package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/infra"
	"travel-booking/internal/pkg/config"
	"travel-booking/internal/pkg/errs"
	"travel-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// BookingStore keeps every booking in a single JSON array file.
// Writers are serialised by an in-process mutex and replace the file atomically,
// so readers always observe a complete document. Several processes sharing one
// file still race with last-writer-wins semantics.
type BookingStore struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

func NewBookingStore(cfg config.StorageConfig, logger *slog.Logger) *BookingStore {
	return &BookingStore{
		path:   cfg.BookingsFile,
		logger: logger,
	}
}

func (s *BookingStore) Path() string { return s.path }

// Load returns all bookings. A missing or unreadable file yields an empty list.
func (s *BookingStore) Load(ctx context.Context) []*booking.Booking {
	items, err := s.read()
	if err != nil {
		s.logger.WarnContext(ctx, "booking store unreadable, treating as empty",
			slog.String("path", s.path), slog.String("error", err.Error()))
		return []*booking.Booking{}
	}
	return items
}

// Save overwrites the whole store with the given bookings.
func (s *BookingStore) Save(ctx context.Context, bookings []*booking.Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(bookings)
}

func (s *BookingStore) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	for _, b := range s.Load(ctx) {
		if b.ID() == id {
			return b, nil
		}
	}
	return nil, infra.WrapRepoErr(s.logger, infra.KindNotFound, "booking not found", nil)
}

// List returns bookings, newest first.
func (s *BookingStore) List(ctx context.Context) ([]*booking.Booking, error) {
	items := s.Load(ctx)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt().After(items[j].CreatedAt())
	})
	return items, nil
}

func (s *BookingStore) Within(ctx context.Context, fn func(ctx context.Context, tx shared.BookingTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.read()
	if err != nil {
		// never overwrite a file we could not parse
		return infra.WrapRepoErr(s.logger, infra.KindCorrupt, "booking store unreadable", err)
	}

	tx := newBookingTx(items, s.logger)
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if !tx.dirty {
		return nil
	}
	return s.write(tx.items)
}

func (s *BookingStore) read() ([]*booking.Booking, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []*booking.Booking{}, nil
	}
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []*booking.Booking{}, nil
	}

	var records []bookingRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errs.Wrap(err, "decode booking store")
	}

	items := make([]*booking.Booking, 0, len(records))
	for i, r := range records {
		b, err := fromRecord(r)
		if err != nil {
			return nil, errs.Wrapf(err, "record %d has an invalid id %q", i, r.ID)
		}
		items = append(items, b)
	}
	return items, nil
}

func (s *BookingStore) write(bookings []*booking.Booking) error {
	records := make([]bookingRecord, len(bookings))
	for i, b := range bookings {
		records[i] = toRecord(b)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return infra.WrapRepoErr(s.logger, infra.KindIOFailure, "encode booking store", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return infra.WrapRepoErr(s.logger, infra.KindIOFailure, "create booking store directory", err)
	}
	if err := writeFileAtomic(dir, s.path, data); err != nil {
		return infra.WrapRepoErr(s.logger, infra.KindIOFailure, "write booking store", err)
	}
	return nil
}

func writeFileAtomic(dir, path string, data []byte) error {
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return err
	}
	return nil
}

type bookingTx struct {
	items  []*booking.Booking
	index  map[uuid.UUID]int
	dirty  bool
	logger *slog.Logger
}

func newBookingTx(items []*booking.Booking, logger *slog.Logger) *bookingTx {
	index := make(map[uuid.UUID]int, len(items))
	for i, b := range items {
		index[b.ID()] = i
	}
	return &bookingTx{items: items, index: index, logger: logger}
}

func (t *bookingTx) FindByID(id uuid.UUID) (*booking.Booking, error) {
	i, ok := t.index[id]
	if !ok {
		return nil, infra.WrapRepoErr(t.logger, infra.KindNotFound, "booking not found", nil)
	}
	return t.items[i], nil
}

func (t *bookingTx) FindByPaymentID(paymentID string) (*booking.Booking, bool) {
	if paymentID == "" {
		return nil, false
	}
	for _, b := range t.items {
		if b.PaymentID() == paymentID {
			return b, true
		}
	}
	return nil, false
}

func (t *bookingTx) Insert(b *booking.Booking) error {
	if _, exists := t.index[b.ID()]; exists {
		return infra.WrapRepoErr(t.logger, infra.KindDuplicateKey, "booking id already exists", nil)
	}
	t.index[b.ID()] = len(t.items)
	t.items = append(t.items, b)
	t.dirty = true
	return nil
}

func (t *bookingTx) Replace(b *booking.Booking) error {
	i, ok := t.index[b.ID()]
	if !ok {
		return infra.WrapRepoErr(t.logger, infra.KindNotFound, "booking not found", nil)
	}
	t.items[i] = b
	t.dirty = true
	return nil
}
