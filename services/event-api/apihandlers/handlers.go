package apihandlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	participantDB "github.com/Lageebro/nalandabatch/pkg/db/participants"
)

func HealthCheckHandle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

type HttpEndpoints struct {
	participantDBConn *participantDB.ParticipantDBService
	maxSlipFileSize   int64
	allowedSlipTypes  []string
}

func NewHTTPHandler(
	participantDBConn *participantDB.ParticipantDBService,
	maxSlipFileSize int64,
	allowedSlipTypes []string,
) *HttpEndpoints {
	return &HttpEndpoints{
		participantDBConn: participantDBConn,
		maxSlipFileSize:   maxSlipFileSize,
		allowedSlipTypes:  allowedSlipTypes,
	}
}
