//go:build unit

package queries_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/infra/filestore"
	"travel-booking/internal/pkg/config"
	"travel-booking/internal/pkg/errs"
	"travel-booking/internal/usecase/queries"
	"travel-booking/internal/usecase/shared"
	"travel-booking/tests/common/builder"
	queriesmock "travel-booking/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingQueriesTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	renderer *queriesmock.MockTicketRenderer
	store    *filestore.BookingStore
	sut      queries.BookingQueries

	older   *booking.Booking
	newer   *booking.Booking
	settled *booking.Booking
}

func (s *BookingQueriesTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.renderer = queriesmock.NewMockTicketRenderer(s.ctrl)
	s.store = filestore.NewBookingStore(config.StorageConfig{
		BookingsFile: filepath.Join(s.T().TempDir(), "bookings.json"),
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.sut = queries.NewBookingQueries(s.store, s.renderer)

	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	s.older = builder.NewBookingBuilder().WithNow(base).MustBuildDomain()
	s.newer = builder.NewBookingBuilder().WithName("Youssef Amrani").WithNow(base.Add(time.Hour)).MustBuildDomain()
	s.settled = builder.NewBookingBuilder().WithNow(base.Add(2*time.Hour)).
		BuildPaid(booking.MethodStripe, "pi_settled", booking.NewMoney(15500))

	err := s.store.Within(context.Background(), func(_ context.Context, tx shared.BookingTx) error {
		for _, b := range []*booking.Booking{s.older, s.newer, s.settled} {
			if err := tx.Insert(b); err != nil {
				return err
			}
		}
		return nil
	})
	s.Require().NoError(err)
}

func (s *BookingQueriesTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestBookingQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(BookingQueriesTestSuite))
}

func (s *BookingQueriesTestSuite) TestGetByID() {
	tests := []struct {
		name    string
		id      uuid.UUID
		wantErr error
	}{
		{name: "existing booking", id: s.newer.ID()},
		{name: "unknown booking", id: uuid.New(), wantErr: errs.ErrBookingNotFound},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			got, err := s.sut.GetByID(context.Background(), tt.id)

			if tt.wantErr != nil {
				s.True(errs.Is(err, tt.wantErr))
				s.Nil(got)
				return
			}
			s.Require().NoError(err)
			s.Equal(tt.id, got.ID)
			s.Equal("Youssef Amrani", got.Name)
			s.Equal("pending", got.PaymentStatus)
			s.Equal(3, got.Tickets)
			s.Nil(got.PaymentID)
		})
	}
}

func (s *BookingQueriesTestSuite) TestGetByID_PaidBookingCarriesPayment() {
	got, err := s.sut.GetByID(context.Background(), s.settled.ID())

	s.Require().NoError(err)
	s.True(got.Paid)
	s.Require().NotNil(got.PaymentID)
	s.Equal("pi_settled", *got.PaymentID)
	s.Require().NotNil(got.PaymentAmount)
	s.True(got.PaymentAmount.Equal(booking.NewMoney(15500)))
	s.NotNil(got.PaymentDate)
}

func (s *BookingQueriesTestSuite) TestList() {
	tests := []struct {
		name   string
		filter queries.BookingFilter
		want   []uuid.UUID
	}{
		{
			name: "everything newest first",
			want: []uuid.UUID{s.settled.ID(), s.newer.ID(), s.older.ID()},
		},
		{
			name:   "pending only",
			filter: queries.BookingFilter{Status: booking.StatusPending},
			want:   []uuid.UUID{s.newer.ID(), s.older.ID()},
		},
		{
			name:   "completed only",
			filter: queries.BookingFilter{Status: booking.StatusCompleted},
			want:   []uuid.UUID{s.settled.ID()},
		},
		{
			name:   "limited",
			filter: queries.BookingFilter{Limit: 1},
			want:   []uuid.UUID{s.settled.ID()},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			got, err := s.sut.List(context.Background(), tt.filter)

			s.Require().NoError(err)
			ids := make([]uuid.UUID, len(got))
			for i, v := range got {
				ids[i] = v.ID
			}
			s.Equal(tt.want, ids)
		})
	}
}

func (s *BookingQueriesTestSuite) TestTicketPDF() {
	s.Run("renders the stored booking", func() {
		s.renderer.EXPECT().
			RenderTicket(gomock.Any()).
			DoAndReturn(func(b *booking.Booking) ([]byte, string, error) {
				s.Equal(s.older.ID(), b.ID())
				return []byte("%PDF-"), "ticket-" + b.ID().String() + ".pdf", nil
			})

		doc, err := s.sut.TicketPDF(context.Background(), s.older.ID())

		s.Require().NoError(err)
		s.Equal("ticket-"+s.older.ID().String()+".pdf", doc.Filename)
		s.Equal([]byte("%PDF-"), doc.Content)
	})

	s.Run("renderer failure is returned", func() {
		s.renderer.EXPECT().RenderTicket(gomock.Any()).Return(nil, "", errors.New("font missing"))

		_, err := s.sut.TicketPDF(context.Background(), s.older.ID())

		s.Error(err)
	})

	s.Run("unknown booking never reaches the renderer", func() {
		_, err := s.sut.TicketPDF(context.Background(), uuid.New())

		s.True(errs.Is(err, errs.ErrBookingNotFound))
	})
}
