package handler

import (
	"errors"

	"event_ticketing/constants"
	"event_ticketing/database"
	"event_ticketing/helper"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func GetEvents(c *fiber.Ctx) error {
	input, _ := c.Locals("input").(model.FilterEventInput)

	db := database.DB
	query := db.Model(&model.Event{}).
		Preload("Category").
		Preload("TicketTypes")

	if input.SearchKey != "" {
		query = query.Where("event_name ILIKE ?", "%"+input.SearchKey+"%")
	}
	if input.CategoryId != 0 {
		query = query.Where("category_id = ?", input.CategoryId)
	}
	if input.From != nil {
		query = query.Where("start_time >= ?", *input.From)
	}
	if input.To != nil {
		query = query.Where("end_time <= ?", *input.To)
	}

	var totalCount int64
	query.Count(&totalCount)

	query = utils.ApplyPagination(query, input.Limit, input.Page)

	var events []model.Event
	if err := query.Order("created_at desc").Find(&events).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       events,
		Limit:      input.Limit,
		Page:       input.Page,
		TotalCount: totalCount,
	})
}

func GetEventById(c *fiber.Ctx) error {
	eventId := c.Locals("inputId").(int)

	var event model.Event
	if err := database.DB.
		Preload("Category").
		Preload("Organizers").
		Preload("TicketTypes").
		First(&event, eventId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EVENT_NOT_FOUND, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, event)
}

func GetEventBySlug(c *fiber.Ctx) error {
	slugParam := c.Params("slug")

	var event model.Event
	if err := database.DB.
		Preload("Category").
		Preload("TicketTypes").
		Where("slug = ?", slugParam).
		First(&event).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EVENT_NOT_FOUND, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, event)
}

func CreateEvent(c *fiber.Ctx) error {
	user, err := helper.CurrentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.USER_NOT_FOUND, err)
	}

	input := c.Locals("input").(model.CreateEventInput)

	db := database.DB

	// category is created on first use, matching the create form behavior
	var category model.Category
	if err := db.Where(model.Category{CategoryName: input.Category}).
		FirstOrCreate(&category).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	event := model.Event{
		EventName:   input.EventName,
		Slug:        helper.EventSlug(input.EventName),
		Description: input.Description,
		Venue:       input.Venue,
		Capacity:    input.Capacity,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		CategoryId:  category.ID,
		Organizers:  []model.User{*user},
	}
	if input.Image != "" {
		event.Image = input.Image
	}

	if err := db.Create(&event).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, event)
}

func EditEvent(c *fiber.Ctx) error {
	user, err := helper.CurrentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.USER_NOT_FOUND, err)
	}

	eventId := c.Locals("inputId").(int)
	input := c.Locals("input").(model.EditEventInput)

	db := database.DB
	var event model.Event
	if err := db.First(&event, eventId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EVENT_NOT_FOUND, err)
	}

	if !helper.IsOrganizer(event.ID, user.ID) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ORGANIZER, nil)
	}

	if input.CategoryName != nil {
		var category model.Category
		if err := db.Where(model.Category{CategoryName: *input.CategoryName}).
			FirstOrCreate(&category).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		event.CategoryId = category.ID
	}

	if err := copier.CopyWithOption(&event, &input, copier.Option{IgnoreEmpty: true}); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if !event.StartTime.Before(event.EndTime) && !event.StartTime.Equal(event.EndTime) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "end time must not be earlier than start time", nil)
	}

	if err := db.Save(&event).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, event)
}

func DeleteEvent(c *fiber.Ctx) error {
	user, err := helper.CurrentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.USER_NOT_FOUND, err)
	}

	eventId := c.Locals("inputId").(int)

	db := database.DB
	var event model.Event
	if err := db.First(&event, eventId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EVENT_NOT_FOUND, err)
	}

	if !helper.IsOrganizer(event.ID, user.ID) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ORGANIZER, nil)
	}

	// cascade is explicit: sold tickets block deletion
	var sold int64
	db.Model(&model.Ticket{}).
		Joins("JOIN ticket_types ON ticket_types.id = tickets.ticket_type_id").
		Where("ticket_types.event_id = ?", event.ID).
		Count(&sold)
	if sold > 0 {
		return utils.ErrorResponse(c, fiber.StatusConflict, "event has sold tickets, cancel ticket types instead", nil)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", event.ID).Delete(&model.TicketType{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM event_organizers WHERE event_id = ?", event.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&event).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "event deleted"})
}

func GetEventsByOrganizer(c *fiber.Ctx) error {
	username := c.Params("username")

	user, err := helper.GetUserByUsername(username)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.USER_NOT_FOUND, errors.New("unknown username"))
	}

	var events []model.Event
	if err := database.DB.
		Preload("Category").
		Joins("JOIN event_organizers ON event_organizers.event_id = events.id").
		Where("event_organizers.user_id = ?", user.ID).
		Order("start_time asc").
		Find(&events).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, events)
}

func GetCategories(c *fiber.Ctx) error {
	var categories []model.Category
	if err := database.DB.Order("category_name asc").Find(&categories).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, categories)
}

func CreateCategory(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateCategoryInput)

	category := model.Category{CategoryName: input.CategoryName}
	if err := database.DB.Where(model.Category{CategoryName: input.CategoryName}).
		FirstOrCreate(&category).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, category)
}
