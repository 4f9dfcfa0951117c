package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TicketTypeAvailable = "available"
	TicketTypeSold      = "sold"
	TicketTypeCanceled  = "canceled"

	TicketUnused    = "unused"
	TicketUsed      = "used"
	TicketCancelled = "cancelled"

	TransactionPending   = "PENDING"
	TransactionCompleted = "COMPLETED"
	TransactionFailed    = "FAILED"
)

type TicketType struct {
	DTO
	TicketName string          `gorm:"size:128;not null" json:"ticketName"`
	Kind       string          `gorm:"size:120;not null;default:'Ordinary';uniqueIndex:idx_event_kind" json:"kind"`
	Price      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	Status     string          `gorm:"size:20;not null;default:'available'" json:"status"`
	Image      *string         `gorm:"size:255" json:"image"`

	EventId uint  `gorm:"not null;uniqueIndex:idx_event_kind" json:"eventId"`
	Event   Event `gorm:"foreignKey:EventId" json:"-"`
}

type Ticket struct {
	DTO
	TicketCode   string    `gorm:"size:48;uniqueIndex;not null" json:"ticketCode"`
	PurchaseDate time.Time `gorm:"not null" json:"purchaseDate"`
	UseStatus    string    `gorm:"size:20;not null;default:'unused'" json:"useStatus"`

	UserId       uint       `gorm:"not null" json:"userId"`
	TicketTypeId uint       `gorm:"not null" json:"ticketTypeId"`
	User         User       `gorm:"foreignKey:UserId" json:"-"`
	TicketType   TicketType `gorm:"foreignKey:TicketTypeId" json:"-"`
}

type Transaction struct {
	DTO
	UserId  uint `gorm:"not null" json:"userId"`
	EventId uint `json:"eventId"`

	Quantity       int             `gorm:"not null" json:"quantity"`
	PricePerTicket decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"pricePerTicket"`
	TotalPrice     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"totalPrice"`
	Status         string          `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	PaymentMethod  string          `gorm:"size:100" json:"paymentMethod"`
	PaymentDate    time.Time       `json:"paymentDate"`

	User  User  `gorm:"foreignKey:UserId" json:"-"`
	Event Event `gorm:"foreignKey:EventId" json:"-"`
}

// ValidTotalPrice reports whether total_price == quantity * price_per_ticket.
func (t *Transaction) ValidTotalPrice() bool {
	return t.TotalPrice.Equal(t.PricePerTicket.Mul(decimal.NewFromInt(int64(t.Quantity))))
}

type CreateTicketTypeInput struct {
	TicketName string          `validate:"required,max=128" json:"ticketName"`
	Kind       string          `validate:"required,max=120" json:"kind"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `validate:"gte=0" json:"quantity"`
	Image      *string         `validate:"omitempty,url" json:"image"`
}

type EditTicketTypeInput struct {
	TicketName *string          `validate:"omitempty,max=128" json:"ticketName"`
	Price      *decimal.Decimal `json:"price"`
	Quantity   *int             `validate:"omitempty,gte=0" json:"quantity"`
	Image      *string          `validate:"omitempty,url" json:"image"`
}

type PurchaseTicketInput struct {
	TicketTypeId uint `validate:"required,gt=0" json:"ticketTypeId"`
	Quantity     int  `validate:"required,gt=0" json:"quantity"`
}

type UpdateTicketStatusInput struct {
	UseStatus string `validate:"required,oneof=used cancelled" json:"useStatus"`
}

type FilterTicketInput struct {
	Pagination
	UseStatus string `validate:"omitempty,oneof=unused used cancelled" json:"useStatus"`
	EventId   uint   `validate:"omitempty,gt=0" json:"eventId"`
}
