package artifact

import (
	"bytes"
	"fmt"
	"time"

	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// Manifest is the redeemable proof of ticket ownership. It is assembled only
// from stored rows, so regenerating it for the same ticket always yields the
// same fields.
type Manifest struct {
	TicketId       uint            `json:"ticketId"`
	TicketCode     string          `json:"ticketCode"`
	UserId         uint            `json:"userId"`
	Username       string          `json:"username"`
	EventId        uint            `json:"eventId"`
	EventName      string          `json:"eventName"`
	TicketTypeId   uint            `json:"ticketTypeId"`
	TicketTypeName string          `json:"ticketTypeName"`
	PurchaseDate   time.Time       `json:"purchaseDate"`
	Status         string          `json:"status"`
	Price          decimal.Decimal `json:"price"`
}

func BuildManifest(ticket *model.Ticket, tt *model.TicketType, event *model.Event, user *model.User) Manifest {
	return Manifest{
		TicketId:       ticket.ID,
		TicketCode:     ticket.TicketCode,
		UserId:         user.ID,
		Username:       user.Username,
		EventId:        event.ID,
		EventName:      event.EventName,
		TicketTypeId:   tt.ID,
		TicketTypeName: tt.TicketName,
		PurchaseDate:   ticket.PurchaseDate,
		Status:         ticket.UseStatus,
		Price:          tt.Price,
	}
}

// Payload is the scannable text encoded into the QR code.
func (m Manifest) Payload() string {
	return fmt.Sprintf(
		"Ticket ID: %d\nUser ID: %d\nEvent ID: %d\nTicket Type ID: %d\nPurchase Date/Time: %s\nTicket Status: %s",
		m.TicketId, m.UserId, m.EventId, m.TicketTypeId,
		m.PurchaseDate.Format(time.RFC3339), m.Status,
	)
}

func (m Manifest) QRCode(size int) ([]byte, error) {
	return utils.GenerateQRCode(m.Payload(), size)
}

// PDF renders the downloadable ticket: ownership lines plus the embedded QR.
func (m Manifest) PDF() ([]byte, error) {
	qrPNG, err := m.QRCode(512)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.Cell(0, 12, m.EventName)
	pdf.Ln(16)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("User: %s", m.Username),
		fmt.Sprintf("Event ID: %d", m.EventId),
		fmt.Sprintf("Ticket Type: %s (ID %d)", m.TicketTypeName, m.TicketTypeId),
		fmt.Sprintf("Ticket Code: %s", m.TicketCode),
		fmt.Sprintf("Purchase Date/Time: %s", m.PurchaseDate.Format("January 2, 2006, 3:04 PM")),
		fmt.Sprintf("Ticket Price: $%s", m.Price.StringFixed(2)),
		fmt.Sprintf("Ticket Status: %s", m.Status),
	}
	for _, line := range lines {
		pdf.Cell(0, 8, line)
		pdf.Ln(8)
	}

	pdf.RegisterImageOptionsReader("qr", gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 10, pdf.GetY()+6, 60, 60, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
