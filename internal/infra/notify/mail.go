package notify

import (
	"bytes"
	"context"
	"html/template"
	"log/slog"
	"os"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/pkg/config"
	"travel-booking/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/wneessen/go-mail"
)

type Mailer interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

type TicketImages interface {
	ImagePath(id uuid.UUID) string
}

type TicketRenderer interface {
	RenderTicket(b *booking.Booking) ([]byte, string, error)
}

// MailSink emails the customer with the QR ticket and a printable PDF attached.
type MailSink struct {
	mailer   Mailer
	from     string
	images   TicketImages
	renderer TicketRenderer
	logger   *slog.Logger
}

// NewSMTPMailer returns nil when mail credentials are not configured.
func NewSMTPMailer(cfg config.MailConfig) (*mail.Client, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.User),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
		mail.WithTimeout(cfg.Timeout),
	)
	if err != nil {
		return nil, errs.Wrap(err, "create smtp client")
	}
	return client, nil
}

func NewMailSink(mailer Mailer, from string, images TicketImages, renderer TicketRenderer, logger *slog.Logger) *MailSink {
	return &MailSink{mailer: mailer, from: from, images: images, renderer: renderer, logger: logger}
}

func (s *MailSink) Name() string { return "mail" }

func (s *MailSink) Deliver(ctx context.Context, ev Event) error {
	msg, err := s.Compose(ev)
	if err != nil {
		return err
	}
	if err := s.mailer.DialAndSendWithContext(ctx, msg); err != nil {
		return errs.Wrap(err, "send mail")
	}
	return nil
}

func (s *MailSink) Compose(ev Event) (*mail.Msg, error) {
	b := ev.Booking
	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return nil, errs.Wrap(err, "mail sender")
	}
	if err := msg.To(b.Email); err != nil {
		return nil, errs.Wrap(err, "mail recipient")
	}
	msg.Subject(subjectFor(ev.Kind, b.Locale) + " - " + b.ID.String())

	var body bytes.Buffer
	if err := mailTemplate.Execute(&body, mailData{Event: ev, Paid: ev.Kind == booking.EventPaid}); err != nil {
		return nil, errs.Wrap(err, "render mail body")
	}
	msg.SetBodyString(mail.TypeTextHTML, body.String())

	if s.images != nil {
		path := s.images.ImagePath(b.ID)
		if _, err := os.Stat(path); err == nil {
			msg.AttachFile(path, mail.WithFileName("ticket-"+b.ID.String()+".png"))
		}
	}
	if s.renderer != nil {
		pdf, filename, err := s.renderer.RenderTicket(booking.Reconstruct(b))
		if err != nil {
			s.logger.Warn("ticket pdf not attached",
				slog.String("booking_id", b.ID.String()),
				slog.String("error", err.Error()))
		} else if err := msg.AttachReader(filename, bytes.NewReader(pdf)); err != nil {
			return nil, errs.Wrap(err, "attach ticket pdf")
		}
	}
	return msg, nil
}

var subjects = map[booking.EventKind]map[string]string{
	booking.EventCreated: {
		"en": "Booking Confirmation",
		"es": "Confirmación de reserva",
		"fr": "Confirmation de réservation",
		"ar": "تأكيد الحجز",
	},
	booking.EventPaid: {
		"en": "Payment Received",
		"es": "Pago recibido",
		"fr": "Paiement reçu",
		"ar": "تم استلام الدفع",
	},
}

func subjectFor(kind booking.EventKind, locale string) string {
	byLocale := subjects[kind]
	if s, ok := byLocale[locale]; ok {
		return s
	}
	if s, ok := byLocale["en"]; ok {
		return s
	}
	return "Booking Update"
}

type mailData struct {
	Event
	Paid bool
}

var mailTemplate = template.Must(template.New("booking").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #2563eb;">{{if .Paid}}Payment Received{{else}}Booking Confirmation{{end}}</h2>
  <p>Dear {{.Booking.Name}},</p>
  {{if .Paid}}<p>We have received your payment. Your tickets are confirmed.</p>
  {{else}}<p>Your booking has been registered. Here are your details:</p>{{end}}
  <div style="background-color: #f3f4f6; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <p><strong>Booking ID:</strong> {{.Booking.ID}}</p>
    <p><strong>Destination:</strong> {{.Booking.Destination}}</p>
    <p><strong>Departure Date:</strong> {{.Booking.DepartureDate}}</p>
    {{with .Booking.ReturnDate}}<p><strong>Return Date:</strong> {{.}}</p>{{end}}
    <p><strong>Trip Type:</strong> {{.Booking.TripType}}</p>
    <p><strong>Passengers:</strong> {{.Booking.Adults}} adult(s), {{.Booking.Seniors}} senior(s), {{.Booking.Children}} child(ren), {{.Booking.Infants}} infant(s)</p>
    <p><strong>Tickets:</strong> {{.Booking.Tickets}}</p>
    {{with .Booking.PetType}}<p><strong>Pet:</strong> {{.}}</p>{{end}}
    <p><strong>Vehicle:</strong> {{.Booking.VehicleType}}</p>
    <p><strong>Payment Status:</strong> {{.Booking.PaymentStatus}}</p>
    {{with .Booking.PaymentAmount}}<p><strong>Amount Paid:</strong> {{.}}</p>{{end}}
  </div>
  <p>Please find your QR code ticket attached to this email.</p>
  <p>Thank you for choosing our service!</p>
</div>
`))
