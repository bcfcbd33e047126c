package apihandlers

import (
	"bytes"
	"image"
	"log/slog"
	"net/http"
	"time"

	// image decoders for uploaded camera frames
	_ "image/jpeg"
	_ "image/png"

	"github.com/gin-gonic/gin"

	"github.com/Lageebro/nalandabatch/pkg/admission"
	mw "github.com/Lageebro/nalandabatch/pkg/apihelpers/middlewares"
	"github.com/Lageebro/nalandabatch/pkg/ticket"
	"github.com/Lageebro/nalandabatch/pkg/utils"
)

func (h *HttpEndpoints) AddScannerAPI(rg *gin.RouterGroup) {
	scannerGroup := rg.Group("/scanner")

	scannerGroup.POST("/scan", mw.RequirePayload(), h.scanPayload)
	scannerGroup.POST("/scan-image", h.scanImage)
}

type ScanRequest struct {
	Payload string `json:"payload"`
}

// scanPayload runs the admission check for a QR payload the door station
// already decoded. Each call is one single-shot scan attempt; the station
// restarts its capture loop after showing the result.
func (h *HttpEndpoints) scanPayload(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind scan request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	h.runAdmission(c, req.Payload)
}

// scanImage accepts a raw captured frame, decodes the QR server side and runs
// the same admission check.
func (h *HttpEndpoints) scanImage(c *gin.Context) {
	frameFile, err := c.FormFile("frame")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing frame"})
		return
	}

	frameData, _, err := utils.ReadAndValidateImageUpload(frameFile, h.maxSlipFileSize, []string{"image/jpeg", "image/png"})
	if err != nil {
		slog.Warn("invalid scanner frame upload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid frame"})
		return
	}

	frame, _, err := image.Decode(bytes.NewReader(frameData))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid frame"})
		return
	}

	payloadText, err := ticket.DecodeImage(frame)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"outcome": admission.OUTCOME_INVALID_PAYLOAD,
			"error":   "no readable QR code in frame",
		})
		return
	}

	h.runAdmission(c, payloadText)
}

func (h *HttpEndpoints) runAdmission(c *gin.Context, payloadText string) {
	decision, err := admission.Admit(h.participantDBConn, payloadText, time.Now())
	if err != nil {
		slog.Error("admission check failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "admission check failed"})
		return
	}

	slog.Info("scan processed",
		slog.String("outcome", decision.Outcome),
		slog.String("ticketID", decision.TicketID),
		slog.String("requestID", c.GetString("requestID")),
	)

	status := http.StatusOK
	switch decision.Outcome {
	case admission.OUTCOME_INVALID_PAYLOAD:
		status = http.StatusBadRequest
	case admission.OUTCOME_UNKNOWN_TICKET:
		status = http.StatusNotFound
	case admission.OUTCOME_NOT_VERIFIED, admission.OUTCOME_ALREADY_SCANNED:
		status = http.StatusConflict
	}

	c.JSON(status, decision)
}
