package handler

import (
	"event_ticketing/constants"
	"event_ticketing/database"
	"event_ticketing/helper"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// GetTicketTypes lists the purchasable ticket types of an event.
func GetTicketTypes(c *fiber.Ctx) error {
	eventId := c.Locals("inputId").(int)

	var event model.Event
	if err := database.DB.First(&event, eventId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EVENT_NOT_FOUND, err)
	}

	var ticketTypes []model.TicketType
	if err := database.DB.Where("event_id = ?", event.ID).
		Order("price asc").
		Find(&ticketTypes).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, ticketTypes)
}

// GetTicketTypeById returns full detail, organizers only.
func GetTicketTypeById(c *fiber.Ctx) error {
	user, err := helper.CurrentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.USER_NOT_FOUND, err)
	}

	ticketTypeId := c.Locals("inputId").(int)

	var tt model.TicketType
	if err := database.DB.Preload("Event").First(&tt, ticketTypeId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.TICKET_TYPE_NOT_FOUND, err)
	}

	if !helper.IsOrganizer(tt.EventId, user.ID) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ORGANIZER, nil)
	}

	var soldCount int64
	database.DB.Model(&model.Ticket{}).Where("ticket_type_id = ?", tt.ID).Count(&soldCount)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"ticketType": tt,
		"soldCount":  soldCount,
	})
}

func CreateTicketType(c *fiber.Ctx) error {
	user, err := helper.CurrentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.USER_NOT_FOUND, err)
	}

	eventId := c.Locals("inputId").(int)
	input := c.Locals("input").(model.CreateTicketTypeInput)

	db := database.DB
	var event model.Event
	if err := db.First(&event, eventId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EVENT_NOT_FOUND, err)
	}

	if !helper.IsOrganizer(event.ID, user.ID) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ORGANIZER, nil)
	}

	// one kind per event
	var existing model.TicketType
	if err := db.Where("event_id = ? AND kind = ?", event.ID, input.Kind).
		First(&existing).Error; err == nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.TICKET_TYPE_EXISTS, nil)
	}

	tt := model.TicketType{
		TicketName: input.TicketName,
		Kind:       input.Kind,
		Price:      input.Price,
		Quantity:   input.Quantity,
		Status:     model.TicketTypeAvailable,
		Image:      input.Image,
		EventId:    event.ID,
	}
	if err := db.Create(&tt).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, tt)
}

func EditTicketType(c *fiber.Ctx) error {
	user, err := helper.CurrentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.USER_NOT_FOUND, err)
	}

	ticketTypeId := c.Locals("inputId").(int)
	input := c.Locals("input").(model.EditTicketTypeInput)

	db := database.DB
	var tt model.TicketType
	if err := db.First(&tt, ticketTypeId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.TICKET_TYPE_NOT_FOUND, err)
	}

	if !helper.IsOrganizer(tt.EventId, user.ID) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ORGANIZER, nil)
	}

	// stock and price are frozen once the type leaves "available"
	if tt.Status != model.TicketTypeAvailable && (input.Quantity != nil || input.Price != nil) {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.TICKET_TYPE_UNAVAILABLE, nil)
	}

	if input.TicketName != nil {
		tt.TicketName = *input.TicketName
	}
	if input.Price != nil {
		if input.Price.LessThan(decimal.Zero) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "price must not be negative", nil)
		}
		tt.Price = *input.Price
	}
	if input.Quantity != nil {
		tt.Quantity = *input.Quantity
	}
	if input.Image != nil {
		tt.Image = input.Image
	}

	if err := db.Save(&tt).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, tt)
}

// CancelTicketType moves a type to canceled. Terminal: there is no path back
// to available.
func CancelTicketType(c *fiber.Ctx) error {
	user, err := helper.CurrentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.USER_NOT_FOUND, err)
	}

	ticketTypeId := c.Locals("inputId").(int)

	db := database.DB
	var tt model.TicketType
	if err := db.First(&tt, ticketTypeId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.TICKET_TYPE_NOT_FOUND, err)
	}

	if !helper.IsOrganizer(tt.EventId, user.ID) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ORGANIZER, nil)
	}

	if tt.Status == model.TicketTypeCanceled {
		return utils.SuccessResponse(c, fiber.StatusOK, tt)
	}

	if err := db.Model(&tt).Update("status", model.TicketTypeCanceled).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	tt.Status = model.TicketTypeCanceled

	BroadcastEventStock(tt.EventId)

	return utils.SuccessResponse(c, fiber.StatusOK, tt)
}
