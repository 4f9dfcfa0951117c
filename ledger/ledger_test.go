package ledger

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"event_ticketing/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCheckPurchase_Success(t *testing.T) {
	tt := &model.TicketType{Price: dec("10.00"), Quantity: 5, Status: model.TicketTypeAvailable}
	user := &model.User{Balance: dec("45.00")}

	total, err := checkPurchase(tt, user, 4)
	require.NoError(t, err)
	assert.True(t, total.Equal(dec("40.00")))
}

func TestCheckPurchase_Unavailable(t *testing.T) {
	user := &model.User{Balance: dec("1000.00")}

	for _, status := range []string{model.TicketTypeSold, model.TicketTypeCanceled} {
		tt := &model.TicketType{Price: dec("10.00"), Quantity: 5, Status: status}
		_, err := checkPurchase(tt, user, 1)
		assert.ErrorIs(t, err, ErrUnavailable)
	}
}

func TestCheckPurchase_InsufficientStock(t *testing.T) {
	tt := &model.TicketType{Price: dec("10.00"), Quantity: 1, Status: model.TicketTypeAvailable}
	user := &model.User{Balance: dec("100.00")}

	_, err := checkPurchase(tt, user, 2)
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestCheckPurchase_InsufficientFunds(t *testing.T) {
	tt := &model.TicketType{Price: dec("10.00"), Quantity: 5, Status: model.TicketTypeAvailable}
	user := &model.User{Balance: dec("39.99")}

	_, err := checkPurchase(tt, user, 4)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestCheckPurchase_ExactBalance(t *testing.T) {
	tt := &model.TicketType{Price: dec("10.00"), Quantity: 5, Status: model.TicketTypeAvailable}
	user := &model.User{Balance: dec("40.00")}

	total, err := checkPurchase(tt, user, 4)
	require.NoError(t, err)
	assert.True(t, total.Equal(dec("40.00")))
}

// availability is checked before stock, stock before funds
func TestCheckPurchase_PreconditionOrder(t *testing.T) {
	tt := &model.TicketType{Price: dec("10.00"), Quantity: 0, Status: model.TicketTypeCanceled}
	user := &model.User{Balance: dec("0.00")}

	_, err := checkPurchase(tt, user, 1)
	assert.ErrorIs(t, err, ErrUnavailable)

	tt.Status = model.TicketTypeAvailable
	_, err = checkPurchase(tt, user, 1)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	tt.Quantity = 1
	_, err = checkPurchase(tt, user, 1)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestPurchase_RejectsNonPositiveQuantity(t *testing.T) {
	l := New(nil)

	_, err := l.Purchase(1, 1, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = l.Purchase(1, 1, -3)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestNewTicketCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := NewTicketCode()
		assert.True(t, strings.HasPrefix(code, "TKT-"))
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
}

// --- integration tests, need a real postgres for row locking ---

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Event{},
		&model.TicketType{},
		&model.Ticket{},
		&model.Transaction{},
	))

	db.Exec("TRUNCATE transactions, tickets, ticket_types, event_organizers, events, categories, users RESTART IDENTITY CASCADE")

	return db
}

func seedPurchaseFixture(t *testing.T, db *gorm.DB, balance, price string, quantity int) (*model.User, *model.TicketType) {
	t.Helper()

	user := &model.User{
		Username: fmt.Sprintf("buyer-%d", time.Now().UnixNano()),
		Email:    fmt.Sprintf("buyer-%d@example.com", time.Now().UnixNano()),
		Password: "x",
		Balance:  dec(balance),
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)

	category := &model.Category{CategoryName: fmt.Sprintf("cat-%d", time.Now().UnixNano())}
	require.NoError(t, db.Create(category).Error)

	event := &model.Event{
		EventName:   "Launch Party",
		Slug:        fmt.Sprintf("launch-party-%d", time.Now().UnixNano()),
		Description: "d",
		Venue:       "Main Hall",
		Capacity:    100,
		StartTime:   time.Now().Add(24 * time.Hour),
		EndTime:     time.Now().Add(30 * time.Hour),
		CategoryId:  category.ID,
	}
	require.NoError(t, db.Create(event).Error)

	tt := &model.TicketType{
		TicketName: "General Admission",
		Kind:       "Ordinary",
		Price:      dec(price),
		Quantity:   quantity,
		Status:     model.TicketTypeAvailable,
		EventId:    event.ID,
	}
	require.NoError(t, db.Create(tt).Error)

	return user, tt
}

func TestPurchase_Success(t *testing.T) {
	db := setupTestDB(t)
	user, tt := seedPurchaseFixture(t, db, "45.00", "10.00", 5)

	l := New(db)
	receipt, err := l.Purchase(user.ID, tt.ID, 4)
	require.NoError(t, err)
	require.Len(t, receipt.TicketIds, 4)
	assert.True(t, receipt.TotalPrice.Equal(dec("40.00")))

	var ttAfter model.TicketType
	require.NoError(t, db.First(&ttAfter, tt.ID).Error)
	assert.Equal(t, 1, ttAfter.Quantity)
	assert.Equal(t, model.TicketTypeAvailable, ttAfter.Status)

	var userAfter model.User
	require.NoError(t, db.First(&userAfter, user.ID).Error)
	assert.True(t, userAfter.Balance.Equal(dec("5.00")))

	var tickets []model.Ticket
	require.NoError(t, db.Where("ticket_type_id = ?", tt.ID).Find(&tickets).Error)
	require.Len(t, tickets, 4)
	for _, ticket := range tickets {
		assert.Equal(t, model.TicketUnused, ticket.UseStatus)
		assert.Equal(t, user.ID, ticket.UserId)
	}

	var trx model.Transaction
	require.NoError(t, db.First(&trx, receipt.TransactionId).Error)
	assert.Equal(t, model.TransactionCompleted, trx.Status)
	assert.True(t, trx.ValidTotalPrice())
}

func TestPurchase_SoldOutFlipsStatus(t *testing.T) {
	db := setupTestDB(t)
	user, tt := seedPurchaseFixture(t, db, "100.00", "10.00", 2)

	l := New(db)
	_, err := l.Purchase(user.ID, tt.ID, 2)
	require.NoError(t, err)

	var ttAfter model.TicketType
	require.NoError(t, db.First(&ttAfter, tt.ID).Error)
	assert.Equal(t, 0, ttAfter.Quantity)
	assert.Equal(t, model.TicketTypeSold, ttAfter.Status)
}

func TestPurchase_InsufficientStockLeavesStateUnchanged(t *testing.T) {
	db := setupTestDB(t)
	user, tt := seedPurchaseFixture(t, db, "100.00", "10.00", 1)

	l := New(db)
	_, err := l.Purchase(user.ID, tt.ID, 2)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	var ttAfter model.TicketType
	require.NoError(t, db.First(&ttAfter, tt.ID).Error)
	assert.Equal(t, 1, ttAfter.Quantity)
	assert.Equal(t, model.TicketTypeAvailable, ttAfter.Status)

	var userAfter model.User
	require.NoError(t, db.First(&userAfter, user.ID).Error)
	assert.True(t, userAfter.Balance.Equal(dec("100.00")))

	var ticketCount int64
	db.Model(&model.Ticket{}).Where("ticket_type_id = ?", tt.ID).Count(&ticketCount)
	assert.Zero(t, ticketCount)

	// rejection still leaves an audit record
	var trx model.Transaction
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&trx).Error)
	assert.Equal(t, model.TransactionFailed, trx.Status)
}

func TestPurchase_InsufficientFundsLeavesStateUnchanged(t *testing.T) {
	db := setupTestDB(t)
	user, tt := seedPurchaseFixture(t, db, "15.00", "10.00", 5)

	l := New(db)
	_, err := l.Purchase(user.ID, tt.ID, 2)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	var ttAfter model.TicketType
	require.NoError(t, db.First(&ttAfter, tt.ID).Error)
	assert.Equal(t, 5, ttAfter.Quantity)

	var userAfter model.User
	require.NoError(t, db.First(&userAfter, user.ID).Error)
	assert.True(t, userAfter.Balance.Equal(dec("15.00")))
}

func TestPurchase_UnknownTicketType(t *testing.T) {
	db := setupTestDB(t)
	user, _ := seedPurchaseFixture(t, db, "100.00", "10.00", 5)

	l := New(db)
	_, err := l.Purchase(user.ID, 999999, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

// two buyers race for the last unit: exactly one wins, stock never goes
// negative
func TestPurchase_LastUnitRace(t *testing.T) {
	db := setupTestDB(t)
	userA, tt := seedPurchaseFixture(t, db, "100.00", "10.00", 1)

	userB := &model.User{
		Username: fmt.Sprintf("rival-%d", time.Now().UnixNano()),
		Email:    fmt.Sprintf("rival-%d@example.com", time.Now().UnixNano()),
		Password: "x",
		Balance:  dec("100.00"),
		IsActive: true,
	}
	require.NoError(t, db.Create(userB).Error)

	l := New(db)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, uid := range []uint{userA.ID, userB.ID} {
		wg.Add(1)
		go func(i int, uid uint) {
			defer wg.Done()
			_, errs[i] = l.Purchase(uid, tt.ID, 1)
		}(i, uid)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			assert.True(t,
				err == ErrInsufficientStock || err == ErrStoreConflict || err == ErrUnavailable,
				"unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)

	var ttAfter model.TicketType
	require.NoError(t, db.First(&ttAfter, tt.ID).Error)
	assert.Equal(t, 0, ttAfter.Quantity)
	assert.Equal(t, model.TicketTypeSold, ttAfter.Status)

	var ticketCount int64
	db.Model(&model.Ticket{}).Where("ticket_type_id = ?", tt.ID).Count(&ticketCount)
	assert.EqualValues(t, 1, ticketCount)
}
