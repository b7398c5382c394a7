package ticket

import (
	"bytes"
	"fmt"
	"strconv"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/pkg/errs"

	"github.com/phpdave11/gofpdf"
)

// PDFRenderer produces a printable A4 ticket with the booking's QR code.
type PDFRenderer struct {
	encoder *QREncoder
	pricing booking.PriceCalculator
}

func NewPDFRenderer(encoder *QREncoder, pricing booking.PriceCalculator) *PDFRenderer {
	return &PDFRenderer{encoder: encoder, pricing: pricing}
}

func (r *PDFRenderer) RenderTicket(b *booking.Booking) ([]byte, string, error) {
	png, err := r.encoder.Render(b.TicketPayload())
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("E-Ticket "+b.ID().String(), true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	imageName := "qr-" + b.ID().String()
	pdf.RegisterImageOptionsReader(imageName, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
	pdf.ImageOptions(imageName, 140, 20, 55, 55, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	for _, line := range r.lines(b) {
		pdf.Cell(0, 7, tr(line))
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, tr("Please present this ticket, printed or on your phone, at boarding."), "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", errs.Wrap(err, "render ticket pdf")
	}
	return buf.Bytes(), "ticket-" + b.ID().String() + ".pdf", nil
}

func (r *PDFRenderer) lines(b *booking.Booking) []string {
	p := b.Passengers()
	trip := "One way"
	if b.TripType() == booking.TripRoundTrip {
		trip = "Round trip"
	}

	out := []string{
		"Booking      : " + b.ID().String(),
		"Passenger    : " + b.Name(),
		"Email        : " + b.Email(),
		"Destination  : " + b.Destination(),
		"Trip         : " + trip,
		"Departure    : " + b.DepartureDate(),
	}
	if rd := b.ReturnDate(); rd != nil {
		out = append(out, "Return       : "+*rd)
	}
	out = append(out,
		fmt.Sprintf("Passengers   : %d adult(s), %d senior(s), %d child(ren), %d infant(s)",
			p.Adults(), p.Seniors(), p.Children(), p.Infants()),
		"Tickets      : "+strconv.Itoa(b.Tickets()),
	)
	if pet := b.PetType(); pet != nil {
		out = append(out, "Pet          : "+pet.String())
	}
	if b.VehicleType() != booking.VehicleNone {
		out = append(out, "Vehicle      : "+b.VehicleType().String())
	}

	total := r.pricing.ComputeTotal(b.Tickets())
	if pay := b.Payment(); pay != nil {
		out = append(out,
			"Payment      : PAID via "+b.PaymentMethod().String(),
			"Amount       : "+pay.Amount.String()+" "+pay.Currency.Upper(),
			"Reference    : "+pay.TransactionID,
		)
	} else if b.Paid() {
		out = append(out, "Payment      : PAID via "+b.PaymentMethod().String())
	} else {
		out = append(out, "Payment      : PENDING, amount due "+total.String()+" "+r.pricing.Currency().Upper())
	}
	return out
}
