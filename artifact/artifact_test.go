package artifact

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"event_ticketing/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture() (*model.Ticket, *model.TicketType, *model.Event, *model.User) {
	purchased := time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)

	ticket := &model.Ticket{
		TicketCode:   "TKT-0a1b2c3d4e5f6",
		PurchaseDate: purchased,
		UseStatus:    model.TicketUnused,
		UserId:       7,
		TicketTypeId: 3,
	}
	ticket.ID = 42

	tt := &model.TicketType{
		TicketName: "VIP",
		Kind:       "Vip",
		Price:      decimal.RequireFromString("25.50"),
		EventId:    9,
	}
	tt.ID = 3

	event := &model.Event{EventName: "Spring Gala"}
	event.ID = 9

	user := &model.User{Username: "alice"}
	user.ID = 7

	return ticket, tt, event, user
}

func TestBuildManifest(t *testing.T) {
	ticket, tt, event, user := fixture()

	m := BuildManifest(ticket, tt, event, user)

	assert.Equal(t, uint(42), m.TicketId)
	assert.Equal(t, "TKT-0a1b2c3d4e5f6", m.TicketCode)
	assert.Equal(t, uint(7), m.UserId)
	assert.Equal(t, "alice", m.Username)
	assert.Equal(t, uint(9), m.EventId)
	assert.Equal(t, "Spring Gala", m.EventName)
	assert.Equal(t, uint(3), m.TicketTypeId)
	assert.Equal(t, "VIP", m.TicketTypeName)
	assert.Equal(t, model.TicketUnused, m.Status)
	assert.True(t, m.Price.Equal(decimal.RequireFromString("25.50")))
}

// building twice from the same rows yields the same manifest
func TestBuildManifest_Deterministic(t *testing.T) {
	ticket, tt, event, user := fixture()

	first := BuildManifest(ticket, tt, event, user)
	second := BuildManifest(ticket, tt, event, user)

	assert.Equal(t, first, second)
	assert.Equal(t, first.Payload(), second.Payload())
}

func TestPayload(t *testing.T) {
	ticket, tt, event, user := fixture()
	m := BuildManifest(ticket, tt, event, user)

	want := fmt.Sprintf(
		"Ticket ID: 42\nUser ID: 7\nEvent ID: 9\nTicket Type ID: 3\nPurchase Date/Time: %s\nTicket Status: unused",
		ticket.PurchaseDate.Format(time.RFC3339),
	)
	assert.Equal(t, want, m.Payload())
}

func TestQRCode(t *testing.T) {
	ticket, tt, event, user := fixture()
	m := BuildManifest(ticket, tt, event, user)

	png, err := m.QRCode(256)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG\r\n\x1a\n")), "not a PNG")
}

func TestPDF(t *testing.T) {
	ticket, tt, event, user := fixture()
	m := BuildManifest(ticket, tt, event, user)

	pdf, err := m.PDF()
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")), "not a PDF")
	assert.Greater(t, len(pdf), 1000)
}
