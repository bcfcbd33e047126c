package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Lageebro/nalandabatch/pkg/ticket"

	participantDB "github.com/Lageebro/nalandabatch/pkg/db/participants"
	regTypes "github.com/Lageebro/nalandabatch/pkg/registration/types"
)

func (h *HttpEndpoints) AddTicketAPI(rg *gin.RouterGroup) {
	ticketGroup := rg.Group("/tickets")

	// ticket deep links resolve without login
	ticketGroup.GET("/:ticketID", h.getTicket)
	ticketGroup.GET("/:ticketID/qr", h.getTicketQR)
	ticketGroup.GET("/:ticketID/card", h.getTicketCard)
}

func (h *HttpEndpoints) loadVerifiedParticipant(c *gin.Context) (regTypes.Participant, string, bool) {
	ticketID := c.Param("ticketID")

	participant, err := h.participantDBConn.GetParticipantByID(ticketID)
	if err != nil {
		if errors.Is(err, participantDB.ErrParticipantNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "invalid ticket"})
			return regTypes.Participant{}, "", false
		}
		slog.Error("failed to load ticket", slog.String("ticketID", ticketID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load ticket"})
		return regTypes.Participant{}, "", false
	}

	if !participant.IsVerified() {
		c.JSON(http.StatusConflict, gin.H{
			"error":  "not verified yet",
			"status": participant.Status,
		})
		return regTypes.Participant{}, "", false
	}
	return participant, ticketID, true
}

// getTicket resolves a ticket deep link (?id= on the frontend) to its current
// state: verified tickets get their payload and display code, pending records
// report their pending state, unknown ids are invalid tickets.
func (h *HttpEndpoints) getTicket(c *gin.Context) {
	ticketID := c.Param("ticketID")

	participant, err := h.participantDBConn.GetParticipantByID(ticketID)
	if err != nil {
		if errors.Is(err, participantDB.ErrParticipantNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "invalid ticket"})
			return
		}
		slog.Error("failed to load ticket", slog.String("ticketID", ticketID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load ticket"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          ticketID,
		"name":        participant.Name,
		"batch":       participant.Batch,
		"status":      participant.Status,
		"displayCode": regTypes.DisplayCode(ticketID),
	})
}

func (h *HttpEndpoints) getTicketQR(c *gin.Context) {
	participant, ticketID, ok := h.loadVerifiedParticipant(c)
	if !ok {
		return
	}

	qrPNG, err := ticket.EncodeQR(ticket.Payload{
		ID:     ticketID,
		Name:   participant.Name,
		Batch:  participant.Batch,
		Status: participant.Status,
	})
	if err != nil {
		slog.Error("failed to encode ticket QR", slog.String("ticketID", ticketID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate QR"})
		return
	}

	c.Data(http.StatusOK, "image/png", qrPNG)
}

func (h *HttpEndpoints) getTicketCard(c *gin.Context) {
	participant, ticketID, ok := h.loadVerifiedParticipant(c)
	if !ok {
		return
	}

	cardPNG, err := ticket.RenderCard(participant, ticketID)
	if err != nil {
		slog.Error("failed to render ticket card", slog.String("ticketID", ticketID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate ticket image"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="BatchParty_Ticket_`+ticketID+`.png"`)
	c.Data(http.StatusOK, "image/png", cardPNG)
}
