package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	DTO
	Username string `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email    string `gorm:"size:120;uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`

	Bio         *string `json:"bio"`
	PhoneNumber *string `gorm:"size:20" json:"phoneNumber"`
	Address     *string `gorm:"size:120" json:"address"`
	CompanyName *string `gorm:"size:100" json:"companyName"`
	ProfilePic  *string `gorm:"size:255" json:"profilePic"`
	CompanyLogo *string `gorm:"size:255" json:"companyLogo"`

	Balance decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"balance"`

	IsActive bool `gorm:"default:true" json:"isActive"`
}

type Users []User

// Authenticated is the capability handlers rely on instead of a session mixin.
type Authenticated interface {
	Identity() uint
	IsAuthenticated() bool
}

func (u *User) Identity() uint { return u.ID }

func (u *User) IsAuthenticated() bool { return u.ID != 0 }

type RegisterUserInput struct {
	Username string `validate:"required,min=3,max=64" json:"username"`
	Email    string `validate:"required,email" json:"email"`
	Password string `validate:"required,min=8" json:"password"`
}

type LoginInput struct {
	Email    string `validate:"required,email" json:"email"`
	Password string `validate:"required" json:"password"`
}

type EditProfileInput struct {
	Username    *string `validate:"omitempty,min=3,max=64" json:"username"`
	Email       *string `validate:"omitempty,email" json:"email"`
	Bio         *string `json:"bio"`
	PhoneNumber *string `json:"phoneNumber"`
	Address     *string `json:"address"`
	CompanyName *string `json:"companyName"`
	ProfilePic  *string `json:"profilePic"`
	CompanyLogo *string `json:"companyLogo"`
}

type UserChangePassword struct {
	CurrentPassword string `validate:"required" json:"currentPassword"`
	NewPassword     string `validate:"required,min=8" json:"newPassword"`
	RepeatPassword  string `validate:"required" json:"repeatPassword"`
}

type ForgotPasswordRequest struct {
	Email string `validate:"required,email" json:"email"`
}

type ResetPasswordRequest struct {
	Token       string `validate:"required" json:"token"`
	NewPassword string `validate:"required,min=8" json:"newPassword"`
}

type PasswordResetToken struct {
	DTO
	UserId    uint      `gorm:"not null" json:"userId"`
	Token     string    `gorm:"type:varchar(255);not null;unique" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
	User      User      `gorm:"foreignKey:UserId" json:"-"`
}
