package handler

import (
	"event_ticketing/constants"
	"event_ticketing/database"
	"event_ticketing/helper"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
)

func Me(c *fiber.Ctx) error {
	user, err := helper.CurrentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.USER_NOT_FOUND, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, user)
}

func UpdateProfile(c *fiber.Ctx) error {
	user, err := helper.CurrentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.USER_NOT_FOUND, err)
	}

	input := c.Locals("input").(model.EditProfileInput)

	// copy only the fields present in the request
	if err := copier.CopyWithOption(user, &input, copier.Option{IgnoreEmpty: true}); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := database.DB.Save(user).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, user)
}

func ChangePassword(c *fiber.Ctx) error {
	user, err := helper.CurrentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.USER_NOT_FOUND, err)
	}

	input := c.Locals("input").(model.UserChangePassword)

	if !helper.CheckPasswordHash(input.CurrentPassword, user.Password) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_PASSWORD, nil)
	}
	if input.NewPassword != input.RepeatPassword {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "passwords do not match", nil)
	}

	hashed, err := helper.HashPassword(input.NewPassword)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := database.DB.Model(user).Update("password", hashed).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "password changed"})
}

// GetMyTickets lists the caller's tickets, newest purchases first.
func GetMyTickets(c *fiber.Ctx) error {
	user, err := helper.CurrentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.USER_NOT_FOUND, err)
	}

	var tickets []model.Ticket
	if err := database.DB.
		Preload("TicketType").
		Preload("TicketType.Event").
		Where("user_id = ?", user.ID).
		Order("purchase_date desc").
		Find(&tickets).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	response := []fiber.Map{}
	for _, ticket := range tickets {
		response = append(response, fiber.Map{
			"id":           ticket.ID,
			"ticketCode":   ticket.TicketCode,
			"useStatus":    ticket.UseStatus,
			"purchaseDate": ticket.PurchaseDate,
			"ticketType":   ticket.TicketType.TicketName,
			"kind":         ticket.TicketType.Kind,
			"price":        ticket.TicketType.Price,
			"eventId":      ticket.TicketType.EventId,
			"eventName":    ticket.TicketType.Event.EventName,
		})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

// GetMyTransactions lists the caller's purchase history.
func GetMyTransactions(c *fiber.Ctx) error {
	user, err := helper.CurrentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.USER_NOT_FOUND, err)
	}

	var transactions []model.Transaction
	if err := database.DB.
		Where("user_id = ?", user.ID).
		Order("created_at desc").
		Find(&transactions).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, transactions)
}
