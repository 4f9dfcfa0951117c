package validate

import (
	"errors"

	"event_ticketing/constants"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

func CreateTicketType() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateTicketTypeInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}
		if input.Price.LessThan(decimal.Zero) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "price must not be negative", errors.New("negative price"))
		}
		c.Locals("input", input)
		return c.Next()
	}
}

func EditTicketType() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.EditTicketTypeInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}
		c.Locals("input", input)
		return c.Next()
	}
}

func PurchaseTicket() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.PurchaseTicketInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}
		c.Locals("input", input)
		return c.Next()
	}
}

func UpdateTicketStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateTicketStatusInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}
		c.Locals("input", input)
		return c.Next()
	}
}
