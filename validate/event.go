package validate

import (
	"errors"
	"time"

	"event_ticketing/constants"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateEvent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateEventInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		if input.StartTime.Before(time.Now()) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "start time must not be in the past", errors.New("start_date_future_check"))
		}
		if input.EndTime.Before(input.StartTime) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "end time must not be earlier than start time", errors.New("end_date_after_start_date_check"))
		}

		c.Locals("input", input)
		return c.Next()
	}
}

func EditEvent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.EditEventInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		if input.StartTime != nil && input.EndTime != nil && input.EndTime.Before(*input.StartTime) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "end time must not be earlier than start time", errors.New("end_date_after_start_date_check"))
		}

		c.Locals("input", input)
		return c.Next()
	}
}

func CreateCategory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateCategoryInput
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

func FilterEvents() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.FilterEventInput

		if limit := c.QueryInt("limit", 0); limit > 0 {
			input.Limit = utils.Ptr(limit)
		}
		if page := c.QueryInt("page", 0); page > 0 {
			input.Page = utils.Ptr(page)
		}
		input.SearchKey = c.Query("searchKey")
		if categoryId := c.QueryInt("categoryId", 0); categoryId > 0 {
			input.CategoryId = uint(categoryId)
		}
		if from := c.Query("from"); from != "" {
			if t, err := time.Parse(time.RFC3339, from); err == nil {
				input.From = &t
			}
		}
		if to := c.Query("to"); to != "" {
			if t, err := time.Parse(time.RFC3339, to); err == nil {
				input.To = &t
			}
		}

		c.Locals("input", input)
		return c.Next()
	}
}
