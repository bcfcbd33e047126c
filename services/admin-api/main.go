package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Lageebro/nalandabatch/pkg/apihelpers"
	"github.com/Lageebro/nalandabatch/pkg/apihelpers/middlewares"
	"github.com/Lageebro/nalandabatch/services/admin-api/apihandlers"
)

var conf AdminApiConfig

func main() {
	// Start webserver
	router := gin.Default()
	router.Use(middlewares.RequestID())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     conf.GinConfig.AllowOrigins,
		AllowMethods:     []string{"POST", "GET", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Content-Length"},
		ExposeHeaders:    []string{"Authorization", "Content-Type", "Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Add handlers
	router.GET("/", apihandlers.HealthCheckHandle)
	v1Root := router.Group("/v1")

	v1APIHandlers := apihandlers.NewHTTPHandler(
		apihandlers.AdminUserConfig{
			Username:     conf.AdminUserConfig.Username,
			PasswordHash: conf.AdminUserConfig.PasswordHash,
			JWTSignKey:   conf.AdminUserConfig.JWTSignKey,
			JWTExpiresIn: conf.AdminUserConfig.JWTExpiresIn,
		},
		participantDBService,
		conf.TicketConfig.BaseURL,
		conf.MessagingConfig.CountryPrefix,
	)
	v1APIHandlers.AddAdminAuthAPI(v1Root)
	v1APIHandlers.AddParticipantManagementAPI(v1Root)

	if conf.GinConfig.DebugMode {
		apihelpers.WriteRoutesToFile(router, "admin-api-routes.txt")
	}

	// Start the server
	slog.Info("Starting Admin API on port " + conf.GinConfig.Port)
	if !conf.GinConfig.MTLS.Use {
		err := router.Run(":" + conf.GinConfig.Port)
		if err != nil {
			slog.Error("Exited Admin API", slog.String("error", err.Error()))
			return
		}
	} else {
		// Create tls config for mutual TLS
		tlsConfig, err := apihelpers.LoadTLSConfig(conf.GinConfig.MTLS.CertificatePaths)
		if err != nil {
			slog.Error("Error loading TLS config.", slog.String("error", err.Error()))
			return
		}

		server := &http.Server{
			Addr:      ":" + conf.GinConfig.Port,
			Handler:   router,
			TLSConfig: tlsConfig,
		}

		err = server.ListenAndServeTLS(conf.GinConfig.MTLS.CertificatePaths.ServerCertPath, conf.GinConfig.MTLS.CertificatePaths.ServerKeyPath)
		if err != nil {
			slog.Error("Exited Admin API", slog.String("error", err.Error()))
			return
		}
	}
}
