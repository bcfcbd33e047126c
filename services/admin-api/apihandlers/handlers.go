package apihandlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	participantDB "github.com/Lageebro/nalandabatch/pkg/db/participants"
)

func HealthCheckHandle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// AdminUserConfig holds the single configured admin credential pair and the
// session token settings.
type AdminUserConfig struct {
	Username     string
	PasswordHash string
	JWTSignKey   string
	JWTExpiresIn time.Duration
}

type HttpEndpoints struct {
	adminUser         AdminUserConfig
	participantDBConn *participantDB.ParticipantDBService
	ticketBaseURL     string
	countryPrefix     string
}

func NewHTTPHandler(
	adminUser AdminUserConfig,
	participantDBConn *participantDB.ParticipantDBService,
	ticketBaseURL string,
	countryPrefix string,
) *HttpEndpoints {
	return &HttpEndpoints{
		adminUser:         adminUser,
		participantDBConn: participantDBConn,
		ticketBaseURL:     ticketBaseURL,
		countryPrefix:     countryPrefix,
	}
}
