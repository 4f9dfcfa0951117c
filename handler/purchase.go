package handler

import (
	"errors"
	"fmt"
	"os"

	"event_ticketing/constants"
	"event_ticketing/database"
	"event_ticketing/helper"
	"event_ticketing/ledger"
	"event_ticketing/model"
	"event_ticketing/monitoring"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
)

// PurchaseTicket runs one purchase through the ledger and, on success, fans
// out to the stock broadcast and the confirmation email.
func PurchaseTicket(c *fiber.Ctx) error {
	user, err := helper.CurrentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.USER_NOT_FOUND, err)
	}

	input := c.Locals("input").(model.PurchaseTicketInput)

	l := ledger.New(database.DB)
	receipt, err := l.Purchase(user.ID, input.TicketTypeId, input.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrNotFound):
			monitoring.RecordPurchase("not_found", 0)
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.TICKET_TYPE_NOT_FOUND, err)
		case errors.Is(err, ledger.ErrUnavailable):
			monitoring.RecordPurchase("unavailable", 0)
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.TICKET_TYPE_UNAVAILABLE, err)
		case errors.Is(err, ledger.ErrInsufficientStock):
			monitoring.RecordPurchase("insufficient_stock", 0)
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INSUFFICIENT_STOCK, err)
		case errors.Is(err, ledger.ErrInsufficientFunds):
			monitoring.RecordPurchase("insufficient_funds", 0)
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INSUFFICIENT_FUNDS, err)
		case errors.Is(err, ledger.ErrInvalidQuantity):
			monitoring.RecordPurchase("invalid_quantity", 0)
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
		case errors.Is(err, ledger.ErrStoreConflict):
			monitoring.RecordPurchase("conflict", 0)
			return utils.ErrorResponse(c, fiber.StatusConflict, constants.PURCHASE_CONFLICT, err)
		default:
			monitoring.RecordPurchase("error", 0)
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	monitoring.RecordPurchase("success", receipt.Quantity)

	BroadcastEventStock(receipt.EventId)

	var tt model.TicketType
	if err := database.DB.Preload("Event").First(&tt, receipt.TicketTypeId).Error; err == nil {
		detailLink := fmt.Sprintf("%s/my-tickets", os.Getenv("FRONTEND_BASE_URL"))
		utils.SendPurchaseConfirmationEmail(user.Email, utils.PurchaseConfirmationData{
			Username:    user.Username,
			EventName:   tt.Event.EventName,
			TicketType:  tt.TicketName,
			Quantity:    receipt.Quantity,
			TotalPrice:  receipt.TotalPrice.StringFixed(2),
			TicketCodes: receipt.TicketCodes,
			DetailLink:  detailLink,
		})
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, receipt)
}
