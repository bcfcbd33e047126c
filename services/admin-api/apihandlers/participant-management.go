package apihandlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Lageebro/nalandabatch/pkg/admin"
	"github.com/Lageebro/nalandabatch/pkg/exporter"
	"github.com/Lageebro/nalandabatch/pkg/messaging"
	"github.com/Lageebro/nalandabatch/pkg/ticket"

	mw "github.com/Lageebro/nalandabatch/pkg/apihelpers/middlewares"
	participantDB "github.com/Lageebro/nalandabatch/pkg/db/participants"
	jwthandling "github.com/Lageebro/nalandabatch/pkg/jwt-handling"
	regTypes "github.com/Lageebro/nalandabatch/pkg/registration/types"
)

func (h *HttpEndpoints) AddParticipantManagementAPI(rg *gin.RouterGroup) {
	participantGroup := rg.Group("/participants")
	participantGroup.Use(mw.GetAndValidateAdminUserJWT(h.adminUser.JWTSignKey))

	participantGroup.GET("", h.getParticipantList)
	participantGroup.GET("/stream", h.streamParticipantList)
	participantGroup.GET("/export", h.exportParticipants)
	participantGroup.GET("/:participantID/slip", h.getParticipantSlip)
	participantGroup.GET("/:participantID/ticket", h.getParticipantTicket)
	participantGroup.PUT("/:participantID/verify", h.verifyParticipant)
	participantGroup.DELETE("/:participantID", h.deleteParticipant)
	participantGroup.DELETE("", h.deleteAllParticipants)
}

type participantListView struct {
	Participants []regTypes.Participant `json:"participants"`
	Stats        admin.ListStats        `json:"stats"`
}

func buildListView(participants []regTypes.Participant, searchTerm string) participantListView {
	filtered := admin.FilterParticipants(participants, searchTerm)
	return participantListView{
		Participants: filtered,
		Stats:        admin.ComputeStats(filtered),
	}
}

// getParticipantList returns the current record set, newest first, optionally
// narrowed by the search term. The counters always describe the filtered set.
func (h *HttpEndpoints) getParticipantList(c *gin.Context) {
	participants, err := h.participantDBConn.GetParticipants()
	if err != nil {
		slog.Error("failed to fetch participants", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch participants"})
		return
	}

	c.JSON(http.StatusOK, buildListView(participants, c.Query("search")))
}

// streamParticipantList pushes the filtered list view as server sent events:
// once on connect and again on every collection change. The change stream is
// torn down when the client disconnects.
func (h *HttpEndpoints) streamParticipantList(c *gin.Context) {
	searchTerm := c.Query("search")

	// Callbacks arrive sequentially from a single goroutine, so dropping a
	// stale unread snapshot before sending keeps the send non-blocking and the
	// client always gets the newest state.
	snapshots := make(chan participantListView, 1)
	sub, err := h.participantDBConn.SubscribeToChanges(c.Request.Context(), func(participants []regTypes.Participant) {
		select {
		case <-snapshots:
		default:
		}
		snapshots <- buildListView(participants, searchTerm)
	})
	if err != nil {
		slog.Error("failed to open participant subscription", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open live view"})
		return
	}
	defer sub.Close()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Writer.Flush()

	for {
		select {
		case view := <-snapshots:
			payload, err := json.Marshal(view)
			if err != nil {
				slog.Error("failed to marshal list view", slog.String("error", err.Error()))
				continue
			}
			fmt.Fprintf(c.Writer, "data: %s\n\n", payload)
			c.Writer.Flush()
		case <-c.Request.Context().Done():
			return
		case <-sub.Done():
			return
		}
	}
}

func (h *HttpEndpoints) getParticipantSlip(c *gin.Context) {
	participantID := c.Param("participantID")

	participant, err := h.participantDBConn.GetParticipantByID(participantID)
	if err != nil {
		if errors.Is(err, participantDB.ErrParticipantNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "participant not found"})
			return
		}
		slog.Error("failed to fetch participant", slog.String("participantID", participantID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch participant"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":      participantID,
		"name":    participant.Name,
		"batch":   participant.Batch,
		"contact": participant.Contact,
		"slip":    participant.Slip,
	})
}

// verifyParticipant confirms the payment: pending records transition to
// verified, verified records stay verified. The response carries the prefilled
// WhatsApp compose link for the ticket delivery hand-off.
func (h *HttpEndpoints) verifyParticipant(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.AdminUserClaims)
	participantID := c.Param("participantID")

	slog.Info("verifying participant", slog.String("participantID", participantID), slog.String("username", token.Username))

	participant, err := h.participantDBConn.UpdateStatusToVerified(participantID)
	if err != nil {
		if errors.Is(err, participantDB.ErrParticipantNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "participant not found"})
			return
		}
		slog.Error("failed to verify participant", slog.String("participantID", participantID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to verify participant"})
		return
	}

	ticketURL := h.ticketBaseURL + "?id=" + participantID
	message := messaging.TicketMessage(participant.Name, ticketURL)
	phone := messaging.NormalizePhone(participant.Contact, h.countryPrefix)

	c.JSON(http.StatusOK, gin.H{
		"message":      "participant verified",
		"participant":  participant,
		"ticketUrl":    ticketURL,
		"whatsappLink": messaging.WhatsAppLink(phone, message),
	})
}

func (h *HttpEndpoints) getParticipantTicket(c *gin.Context) {
	participantID := c.Param("participantID")

	participant, err := h.participantDBConn.GetParticipantByID(participantID)
	if err != nil {
		if errors.Is(err, participantDB.ErrParticipantNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "participant not found"})
			return
		}
		slog.Error("failed to fetch participant", slog.String("participantID", participantID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch participant"})
		return
	}

	if !participant.IsVerified() {
		c.JSON(http.StatusConflict, gin.H{"error": "not verified yet"})
		return
	}

	cardPNG, err := ticket.RenderCard(participant, participantID)
	if err != nil {
		slog.Error("failed to render ticket card", slog.String("participantID", participantID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate ticket image"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="BatchParty_Ticket_`+participantID+`.png"`)
	c.Data(http.StatusOK, "image/png", cardPNG)
}

func (h *HttpEndpoints) deleteParticipant(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.AdminUserClaims)
	participantID := c.Param("participantID")

	slog.Info("deleting participant", slog.String("participantID", participantID), slog.String("username", token.Username))

	err := h.participantDBConn.DeleteParticipantByID(participantID)
	if err != nil {
		if errors.Is(err, participantDB.ErrParticipantNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "participant not found"})
			return
		}
		slog.Error("failed to delete participant", slog.String("participantID", participantID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete participant"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "participant deleted"})
}

// deleteAllParticipants is the bulk reset behind the dashboard's "clear all".
// The confirmation dialog is the frontend's responsibility.
func (h *HttpEndpoints) deleteAllParticipants(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.AdminUserClaims)

	slog.Info("bulk reset of all participants", slog.String("username", token.Username))

	count, err := h.participantDBConn.DeleteAllParticipants()
	if err != nil {
		slog.Error("failed to reset participants", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset participants"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "all participants deleted",
		"deletedCount": count,
	})
}

// exportParticipants snapshots the full record set into a downloadable JSON
// file named with the current date.
func (h *HttpEndpoints) exportParticipants(c *gin.Context) {
	participants, err := h.participantDBConn.GetParticipants()
	if err != nil {
		slog.Error("failed to fetch participants for export", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export participants"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+exporter.ExportFilename(time.Now())+`"`)
	c.Header("Content-Type", "application/json")
	c.Status(http.StatusOK)

	if err := exporter.ExportParticipants(c.Writer, participants); err != nil {
		slog.Error("failed to write export", slog.String("error", err.Error()))
	}
}
