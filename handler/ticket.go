package handler

import (
	"errors"
	"fmt"

	"event_ticketing/artifact"
	"event_ticketing/constants"
	"event_ticketing/database"
	"event_ticketing/helper"
	"event_ticketing/model"
	"event_ticketing/monitoring"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
)

// loadOwnedTicket fetches the ticket with its relations and enforces that the
// caller owns it. Ownership is a handler concern, never the ledger's.
func loadOwnedTicket(c *fiber.Ctx, ticketId int) (*model.Ticket, *model.User, error) {
	user, err := helper.CurrentUser(c)
	if err != nil {
		return nil, nil, utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.USER_NOT_FOUND, err)
	}

	var ticket model.Ticket
	if err := database.DB.
		Preload("TicketType").
		Preload("TicketType.Event").
		First(&ticket, ticketId).Error; err != nil {
		return nil, nil, utils.ErrorResponse(c, fiber.StatusNotFound, constants.TICKET_NOT_FOUND, err)
	}

	if ticket.UserId != user.Identity() {
		return nil, nil, utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_TICKET_OWNER, nil)
	}

	return &ticket, user, nil
}

func GetTicketStatus(c *fiber.Ctx) error {
	ticketId := c.Locals("inputId").(int)

	ticket, _, errResp := loadOwnedTicket(c, ticketId)
	if ticket == nil {
		return errResp
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"id":           ticket.ID,
		"ticketCode":   ticket.TicketCode,
		"useStatus":    ticket.UseStatus,
		"purchaseDate": ticket.PurchaseDate,
		"eventName":    ticket.TicketType.Event.EventName,
		"ticketType":   ticket.TicketType.TicketName,
	})
}

// UpdateTicketStatus applies a use_status transition. Only unused tickets move;
// used and cancelled are terminal.
func UpdateTicketStatus(c *fiber.Ctx) error {
	ticketId := c.Locals("inputId").(int)
	input := c.Locals("input").(model.UpdateTicketStatusInput)

	ticket, _, errResp := loadOwnedTicket(c, ticketId)
	if ticket == nil {
		return errResp
	}

	if ticket.UseStatus != model.TicketUnused {
		return utils.ErrorResponse(c, fiber.StatusConflict,
			fmt.Sprintf("ticket is already %s", ticket.UseStatus), errors.New("use_status is terminal"))
	}

	if err := database.DB.Model(ticket).Update("use_status", input.UseStatus).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	ticket.UseStatus = input.UseStatus

	return utils.SuccessResponse(c, fiber.StatusOK, ticket)
}

// DownloadTicket streams the PDF artifact for an owned ticket.
func DownloadTicket(c *fiber.Ctx) error {
	ticketId := c.Locals("inputId").(int)

	ticket, user, errResp := loadOwnedTicket(c, ticketId)
	if ticket == nil {
		return errResp
	}

	manifest := artifact.BuildManifest(ticket, &ticket.TicketType, &ticket.TicketType.Event, user)
	pdfBytes, err := manifest.PDF()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	monitoring.RecordArtifact("pdf")

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", ticket.TicketCode))
	return c.Send(pdfBytes)
}

// GetTicketQR returns just the QR PNG for an owned ticket.
func GetTicketQR(c *fiber.Ctx) error {
	ticketId := c.Locals("inputId").(int)

	ticket, user, errResp := loadOwnedTicket(c, ticketId)
	if ticket == nil {
		return errResp
	}

	manifest := artifact.BuildManifest(ticket, &ticket.TicketType, &ticket.TicketType.Event, user)
	qrBytes, err := manifest.QRCode(400)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	monitoring.RecordArtifact("qr")

	c.Set("Content-Type", "image/png")
	return c.Send(qrBytes)
}
