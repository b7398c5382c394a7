package bootstrap

import (
	"context"
	"log/slog"

	"travel-booking/internal/infra/notify"
	"travel-booking/internal/infra/ticket"
	"travel-booking/internal/pkg/clock"
	"travel-booking/internal/pkg/config"
	"travel-booking/internal/usecase/commands"

	"go.uber.org/fx"
)

var NotifyModule = fx.Module("notify",
	fx.Provide(
		fx.Annotate(
			NewNotifier,
			fx.As(fx.Self()),
			fx.As(new(commands.Notifier)),
		),
	),
)

// NewNotifier wires the sinks that have credentials. With none configured
// the dispatcher accepts events and discards them.
func NewNotifier(
	lc fx.Lifecycle,
	cfg config.Config,
	clk clock.Clock,
	logger *slog.Logger,
	images *ticket.QREncoder,
	renderer *ticket.PDFRenderer,
) (*notify.Dispatcher, error) {
	var sinks []notify.Sink

	mailer, err := notify.NewSMTPMailer(cfg.Mail)
	if err != nil {
		return nil, err
	}
	if mailer != nil {
		from := cfg.Mail.From
		if from == "" {
			from = cfg.Mail.User
		}
		sinks = append(sinks, notify.NewMailSink(mailer, from, images, renderer, logger))
	} else {
		logger.Info("EMAIL_USER/EMAIL_PASS not set, booking emails disabled")
	}

	var broker *notify.BrokerSink
	if cfg.Broker.URL != "" {
		broker = notify.NewBrokerSink(cfg.Broker, cfg.Mail.Timeout)
		sinks = append(sinks, broker)
	}

	d := notify.NewDispatcher(cfg.Mail.QueueSize, cfg.Mail.Timeout, clk, logger, sinks...)
	lc.Append(fx.Hook{
		OnStart: d.Start,
		OnStop: func(ctx context.Context) error {
			err := d.Stop(ctx)
			if broker != nil {
				if cerr := broker.Close(ctx); cerr != nil {
					logger.Warn("closing broker connection", slog.String("error", cerr.Error()))
				}
			}
			return err
		},
	})
	return d, nil
}
