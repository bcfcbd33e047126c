package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	mw "github.com/Lageebro/nalandabatch/pkg/apihelpers/middlewares"
	"github.com/Lageebro/nalandabatch/pkg/registration"
	"github.com/Lageebro/nalandabatch/pkg/utils"

	regTypes "github.com/Lageebro/nalandabatch/pkg/registration/types"
)

func (h *HttpEndpoints) AddRegistrationAPI(rg *gin.RouterGroup) {
	rg.POST("/registrations", mw.RequirePayload(), h.submitRegistration)
}

// submitRegistration accepts the multipart registration form: the attendee
// fields plus the payment slip image. On success the record is stored as
// pending - the response carries the new id, not a ticket.
func (h *HttpEndpoints) submitRegistration(c *gin.Context) {
	input := registration.RegistrationInput{
		Name:    c.PostForm("name"),
		Batch:   c.PostForm("batch"),
		Contact: c.PostForm("contact"),
		Address: c.PostForm("address"),
	}

	slipFile, err := c.FormFile("slip")
	if err != nil {
		slog.Warn("registration without payment slip", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing details"})
		return
	}

	slipData, contentType, err := utils.ReadAndValidateImageUpload(slipFile, h.maxSlipFileSize, h.allowedSlipTypes)
	if err != nil {
		slog.Warn("invalid payment slip upload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment slip"})
		return
	}
	input.Slip = registration.EncodeSlip(contentType, slipData)

	id, err := registration.Register(h.participantDBConn, input, time.Now())
	if err != nil {
		if errors.Is(err, registration.ErrMissingDetails) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing details"})
			return
		}
		slog.Error("failed to save registration", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save registration"})
		return
	}

	slog.Info("new registration submitted", slog.String("participantID", id), slog.String("batch", input.Batch))

	c.JSON(http.StatusCreated, gin.H{
		"id":     id,
		"status": regTypes.PARTICIPANT_STATUS_PENDING,
	})
}
