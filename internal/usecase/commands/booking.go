package commands

//go:generate mockgen -source=booking.go -destination=../../../tests/mock/commands/booking.go -package=commandsmock

import (
	"context"
	"log/slog"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/pkg/clock"
	"travel-booking/internal/pkg/errs"
	"travel-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrTicketEncoding = errs.New("ticket encoding failed")

type CreateBookingResult struct {
	BookingID uuid.UUID
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, draft booking.Draft) (*CreateBookingResult, error)
}

type bookingUseCaseImpl struct {
	uow      shared.UnitOfWork
	encoder  TicketEncoder
	notifier Notifier
	clock    clock.Clock
	logger   *slog.Logger
}

func NewBookingUseCase(
	uow shared.UnitOfWork,
	encoder TicketEncoder,
	notifier Notifier,
	clk clock.Clock,
	logger *slog.Logger,
) BookingCommands {
	return &bookingUseCaseImpl{
		uow:      uow,
		encoder:  encoder,
		notifier: notifier,
		clock:    clk,
		logger:   logger,
	}
}

func (uc *bookingUseCaseImpl) CreateBooking(ctx context.Context, draft booking.Draft) (*CreateBookingResult, error) {
	b, err := booking.NewBooking(&booking.Services{Clock: uc.clock}, draft)
	if err != nil {
		return nil, err
	}

	path, err := uc.encoder.Encode(ctx, b.TicketPayload())
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "encode ticket"), ErrTicketEncoding)
	}
	if err := b.AttachTicket(path); err != nil {
		return nil, err
	}

	err = uc.uow.Within(ctx, func(_ context.Context, tx shared.BookingTx) error {
		return tx.Insert(b)
	})
	if err != nil {
		if rmErr := uc.encoder.Remove(ctx, b.ID()); rmErr != nil {
			uc.logger.WarnContext(ctx, "failed to remove orphaned ticket",
				slog.String("booking_id", b.ID().String()),
				slog.String("error", rmErr.Error()))
		}
		return nil, err
	}

	uc.logger.InfoContext(ctx, "booking created",
		slog.String("booking_id", b.ID().String()),
		slog.Int("tickets", b.Tickets()))
	uc.notifier.Notify(ctx, booking.EventCreated, b.Snapshot())

	return &CreateBookingResult{BookingID: b.ID()}, nil
}
