package ledger

import (
	"errors"
	"log"
	"time"

	"event_ticketing/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Ledger applies purchase requests against stock and balance. All mutations of
// a single purchase happen inside one DB transaction with the TicketType and
// User rows locked, so two requests racing for the last unit cannot both pass
// the stock check.
type Ledger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// Receipt describes an accepted purchase, fed to issuance and rendering.
type Receipt struct {
	TicketIds     []uint          `json:"ticketIds"`
	TicketCodes   []string        `json:"ticketCodes"`
	TransactionId uint            `json:"transactionId"`
	EventId       uint            `json:"eventId"`
	TicketTypeId  uint            `json:"ticketTypeId"`
	Quantity      int             `json:"quantity"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
}

// checkPurchase runs the precondition chain in contract order and returns the
// total price on success.
func checkPurchase(tt *model.TicketType, user *model.User, quantity int) (decimal.Decimal, error) {
	if tt.Status != model.TicketTypeAvailable {
		return decimal.Zero, ErrUnavailable
	}
	if tt.Quantity < quantity {
		return decimal.Zero, ErrInsufficientStock
	}
	total := tt.Price.Mul(decimal.NewFromInt(int64(quantity)))
	if user.Balance.LessThan(total) {
		return decimal.Zero, ErrInsufficientFunds
	}
	return total, nil
}

// Purchase decrements stock, deducts balance, issues tickets and records a
// COMPLETED transaction, all or nothing. A rejected purchase leaves every row
// untouched apart from a FAILED transaction written for the audit trail.
func (l *Ledger) Purchase(userId, ticketTypeId uint, quantity int) (*Receipt, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	var receipt Receipt
	var audit *model.Transaction

	err := l.db.Transaction(func(tx *gorm.DB) error {
		var tt model.TicketType
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&tt, ticketTypeId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var user model.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, userId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		total, err := checkPurchase(&tt, &user, quantity)
		if err != nil {
			audit = &model.Transaction{
				UserId:         userId,
				EventId:        tt.EventId,
				Quantity:       quantity,
				PricePerTicket: tt.Price,
				TotalPrice:     tt.Price.Mul(decimal.NewFromInt(int64(quantity))),
				Status:         model.TransactionFailed,
				PaymentMethod:  "BALANCE",
				PaymentDate:    time.Now(),
			}
			return err
		}

		tt.Quantity -= quantity
		if tt.Quantity == 0 {
			tt.Status = model.TicketTypeSold
		}
		if err := tx.Model(&model.TicketType{}).Where("id = ?", tt.ID).
			Updates(map[string]any{"quantity": tt.Quantity, "status": tt.Status}).Error; err != nil {
			return err
		}

		newBalance := user.Balance.Sub(total)
		if err := tx.Model(&model.User{}).Where("id = ?", user.ID).
			Update("balance", newBalance).Error; err != nil {
			return err
		}

		now := time.Now()
		tickets := make([]model.Ticket, quantity)
		for i := range tickets {
			tickets[i] = model.Ticket{
				TicketCode:   NewTicketCode(),
				PurchaseDate: now,
				UseStatus:    model.TicketUnused,
				UserId:       user.ID,
				TicketTypeId: tt.ID,
			}
		}
		if err := tx.Create(&tickets).Error; err != nil {
			return err
		}

		trx := model.Transaction{
			UserId:         user.ID,
			EventId:        tt.EventId,
			Quantity:       quantity,
			PricePerTicket: tt.Price,
			TotalPrice:     total,
			Status:         model.TransactionCompleted,
			PaymentMethod:  "BALANCE",
			PaymentDate:    now,
		}
		if err := tx.Create(&trx).Error; err != nil {
			return err
		}

		receipt = Receipt{
			TicketIds:     make([]uint, 0, quantity),
			TicketCodes:   make([]string, 0, quantity),
			TransactionId: trx.ID,
			EventId:       tt.EventId,
			TicketTypeId:  tt.ID,
			Quantity:      quantity,
			TotalPrice:    total,
		}
		for _, t := range tickets {
			receipt.TicketIds = append(receipt.TicketIds, t.ID)
			receipt.TicketCodes = append(receipt.TicketCodes, t.TicketCode)
		}
		return nil
	})

	if err != nil {
		if isSerializationFailure(err) {
			return nil, ErrStoreConflict
		}
		// Rejected preconditions leave an audit record. Written outside the
		// aborted transaction so the rollback cannot take it with it.
		if audit != nil && isPreconditionError(err) {
			if auditErr := l.db.Create(audit).Error; auditErr != nil {
				log.Printf("failed to record FAILED transaction for user %d: %v", userId, auditErr)
			}
		}
		return nil, err
	}
	return &receipt, nil
}

// NewTicketCode builds the public TKT-xxxx code printed on artifacts.
func NewTicketCode() string {
	return "TKT-" + uuid.New().String()[:13]
}

func isPreconditionError(err error) bool {
	return errors.Is(err, ErrUnavailable) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrInsufficientFunds)
}

// isSerializationFailure matches Postgres aborts a caller should retry whole:
// 40001 serialization_failure, 40P01 deadlock_detected, 55P03 lock_not_available.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "55P03":
			return true
		}
	}
	return false
}
