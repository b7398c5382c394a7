package ticket

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/pkg/config"
	"travel-booking/internal/pkg/errs"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

const qrSize = 256

var ErrEncodeFailed = errs.New("ticket encoding failed")

// QREncoder renders booking tickets as QR code PNG files under a public directory.
type QREncoder struct {
	dir       string
	urlPrefix string
	logger    *slog.Logger
}

func NewQREncoder(cfg config.StorageConfig, logger *slog.Logger) *QREncoder {
	return &QREncoder{
		dir:       cfg.TicketDir,
		urlPrefix: cfg.TicketURLPrefix,
		logger:    logger,
	}
}

// Encode writes <dir>/<id>.png and returns its public path.
func (e *QREncoder) Encode(ctx context.Context, payload booking.TicketPayload) (string, error) {
	id, err := uuid.Parse(payload.ID)
	if err != nil {
		return "", errs.Mark(errs.Wrap(err, "ticket id"), ErrEncodeFailed)
	}

	png, err := e.Render(payload)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", errs.Mark(errs.Wrap(err, "create ticket directory"), ErrEncodeFailed)
	}
	if err := os.WriteFile(e.ImagePath(id), png, 0o644); err != nil {
		return "", errs.Mark(errs.Wrap(err, "write ticket image"), ErrEncodeFailed)
	}

	e.logger.DebugContext(ctx, "ticket rendered", slog.String("booking_id", id.String()))
	return e.PublicPath(id), nil
}

// Render returns the PNG bytes of a ticket without touching the filesystem.
func (e *QREncoder) Render(payload booking.TicketPayload) ([]byte, error) {
	content, err := json.Marshal(payload)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "marshal ticket payload"), ErrEncodeFailed)
	}
	png, err := qrcode.Encode(string(content), qrcode.Medium, qrSize)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "encode qr code"), ErrEncodeFailed)
	}
	return png, nil
}

// Remove deletes a rendered ticket. Missing files are not an error.
func (e *QREncoder) Remove(_ context.Context, id uuid.UUID) error {
	err := os.Remove(e.ImagePath(id))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (e *QREncoder) ImagePath(id uuid.UUID) string {
	return filepath.Join(e.dir, id.String()+".png")
}

func (e *QREncoder) PublicPath(id uuid.UUID) string {
	return path.Join("/", e.urlPrefix, id.String()+".png")
}

func (e *QREncoder) Dir() string { return e.dir }
