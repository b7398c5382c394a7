//go:build unit

package bootstrap

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/infra/ticket"
	"travel-booking/internal/pkg/clock"
	"travel-booking/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func TestNewNotifier_Lifecycle(t *testing.T) {
	cfg := config.NewTestConfig()
	cfg.Storage.TicketDir = t.TempDir()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	images := ticket.NewQREncoder(cfg.Storage, logger)
	renderer := ticket.NewPDFRenderer(images, booking.NewDefaultPriceCalculator())

	lc := fxtest.NewLifecycle(t)
	d, err := NewNotifier(lc, cfg, clock.NewMockClock(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)), logger, images, renderer)
	require.NoError(t, err)
	assert.Empty(t, d.Sinks())

	lc.RequireStart()
	lc.RequireStop()

	assert.Equal(t, 1, strings.Count(buf.String(), "notification dispatcher started"))
}
