package model

import "time"

type Category struct {
	DTO
	CategoryName string  `gorm:"size:128;uniqueIndex;not null" json:"categoryName"`
	Events       []Event `gorm:"foreignKey:CategoryId" json:"-"`
}

type Event struct {
	DTO
	EventName   string `gorm:"size:128;not null" json:"eventName"`
	Slug        string `gorm:"size:160;uniqueIndex" json:"slug"`
	Description string `gorm:"type:text;not null" json:"description"`
	Image       string `gorm:"size:255;default:'default.jpg'" json:"image"`
	Venue       string `gorm:"size:128;not null" json:"venue"`
	Capacity    int    `gorm:"not null" json:"capacity"`

	StartTime time.Time `gorm:"not null" json:"startTime"`
	EndTime   time.Time `gorm:"not null" json:"endTime"`

	CategoryId uint     `gorm:"not null" json:"categoryId"`
	Category   Category `gorm:"foreignKey:CategoryId" json:"category"`

	Organizers  []User       `gorm:"many2many:event_organizers" json:"organizers"`
	TicketTypes []TicketType `gorm:"foreignKey:EventId" json:"ticketTypes,omitempty"`
}

type CreateEventInput struct {
	EventName   string    `validate:"required,max=128" json:"eventName"`
	Description string    `validate:"required" json:"description"`
	Image       string    `validate:"omitempty,url" json:"image"`
	Venue       string    `validate:"required,max=128" json:"venue"`
	Capacity    int       `validate:"required,gt=0" json:"capacity"`
	StartTime   time.Time `validate:"required" json:"startTime"`
	EndTime     time.Time `validate:"required" json:"endTime"`
	Category    string    `validate:"required,max=128" json:"category"`
}

type EditEventInput struct {
	EventName    *string    `validate:"omitempty,max=128" json:"eventName"`
	Description  *string    `json:"description"`
	Image        *string    `validate:"omitempty,url" json:"image"`
	Venue        *string    `validate:"omitempty,max=128" json:"venue"`
	Capacity     *int       `validate:"omitempty,gt=0" json:"capacity"`
	StartTime    *time.Time `json:"startTime"`
	EndTime      *time.Time `json:"endTime"`
	CategoryName *string    `validate:"omitempty,max=128" json:"category"`
}

type CreateCategoryInput struct {
	CategoryName string `validate:"required,max=128" json:"categoryName"`
}

type FilterEventInput struct {
	Pagination
	SearchKey  string     `json:"searchKey"`
	CategoryId uint       `validate:"omitempty,gt=0" json:"categoryId"`
	From       *time.Time `json:"from"`
	To         *time.Time `json:"to"`
}
