package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"github.com/Lageebro/nalandabatch/pkg/apihelpers"
	"github.com/Lageebro/nalandabatch/pkg/auth/pwhash"
	"github.com/Lageebro/nalandabatch/pkg/db"
	"github.com/Lageebro/nalandabatch/pkg/messaging"
	"github.com/Lageebro/nalandabatch/pkg/utils"

	participantDB "github.com/Lageebro/nalandabatch/pkg/db/participants"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_PARTICIPANT_DB_USERNAME = "PARTICIPANT_DB_USERNAME"
	ENV_PARTICIPANT_DB_PASSWORD = "PARTICIPANT_DB_PASSWORD"

	ENV_ADMIN_USER_PASSWORD_HASH = "ADMIN_USER_PASSWORD_HASH"
	ENV_ADMIN_USER_JWT_SIGN_KEY  = "ADMIN_USER_JWT_SIGN_KEY"
)

type AdminApiConfig struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// Gin configs
	GinConfig struct {
		DebugMode    bool     `json:"debug_mode" yaml:"debug_mode"`
		AllowOrigins []string `json:"allow_origins" yaml:"allow_origins"`
		Port         string   `json:"port" yaml:"port"`

		// Mutual TLS configs
		MTLS struct {
			Use              bool                        `json:"use" yaml:"use"`
			CertificatePaths apihelpers.CertificatePaths `json:"certificate_paths" yaml:"certificate_paths"`
		} `json:"mtls" yaml:"mtls"`
	} `json:"gin_config" yaml:"gin_config"`

	// admin user config - credentials come from the config file / env, never
	// from source code
	AdminUserConfig struct {
		Username     string        `json:"username" yaml:"username"`
		PasswordHash string        `json:"password_hash" yaml:"password_hash"`
		JWTSignKey   string        `json:"jwt_sign_key" yaml:"jwt_sign_key"`
		JWTExpiresIn time.Duration `json:"jwt_expires_in" yaml:"jwt_expires_in"`

		PWHashing struct {
			Argon2Memory      uint32 `json:"argon2_memory" yaml:"argon2_memory"`
			Argon2Iterations  uint32 `json:"argon2_iterations" yaml:"argon2_iterations"`
			Argon2Parallelism uint8  `json:"argon2_parallelism" yaml:"argon2_parallelism"`
		} `json:"pw_hashing" yaml:"pw_hashing"`
	} `json:"admin_user_config" yaml:"admin_user_config"`

	// DB configs
	DBConfigs struct {
		ParticipantDB db.DBConfigYaml `json:"participant_db" yaml:"participant_db"`
	} `json:"db_configs" yaml:"db_configs"`

	// Ticket delivery config
	TicketConfig struct {
		// public base URL the ?id= deep links are appended to
		BaseURL string `json:"base_url" yaml:"base_url"`
	} `json:"ticket_config" yaml:"ticket_config"`

	MessagingConfig struct {
		CountryPrefix string `json:"country_prefix" yaml:"country_prefix"`
	} `json:"messaging_config" yaml:"messaging_config"`
}

var (
	participantDBService *participantDB.ParticipantDBService
)

func init() {
	// Load local .env if present, for dev setups
	_ = godotenv.Load()

	// Read config from file
	yamlFile, err := os.ReadFile(os.Getenv(ENV_CONFIG_FILE_PATH))
	if err != nil {
		panic(err)
	}

	err = yaml.UnmarshalStrict(yamlFile, &conf)
	if err != nil {
		panic(err)
	}

	// Init logger:
	utils.InitLogger(
		conf.Logging.LogLevel,
		conf.Logging.IncludeSrc,
		conf.Logging.LogToFile,
		conf.Logging.Filename,
		conf.Logging.MaxSize,
		conf.Logging.MaxAge,
		conf.Logging.MaxBackups,
		conf.Logging.CompressOldLogs,
	)

	// Override secrets from environment variables
	secretsOverride()

	checkAdminUserConfig()

	// init argon2
	pwhash.InitArgonParams(
		conf.AdminUserConfig.PWHashing.Argon2Memory,
		conf.AdminUserConfig.PWHashing.Argon2Iterations,
		conf.AdminUserConfig.PWHashing.Argon2Parallelism,
	)

	if conf.MessagingConfig.CountryPrefix == "" {
		conf.MessagingConfig.CountryPrefix = messaging.DefaultCountryPrefix
	}

	// Init DBs
	initDBs()

	if !conf.GinConfig.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
}

func secretsOverride() {
	if dbUsername := os.Getenv(ENV_PARTICIPANT_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.ParticipantDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_PARTICIPANT_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.ParticipantDB.Password = dbPassword
	}

	if passwordHash := os.Getenv(ENV_ADMIN_USER_PASSWORD_HASH); passwordHash != "" {
		conf.AdminUserConfig.PasswordHash = passwordHash
	}

	if signKey := os.Getenv(ENV_ADMIN_USER_JWT_SIGN_KEY); signKey != "" {
		conf.AdminUserConfig.JWTSignKey = signKey
	}
}

func checkAdminUserConfig() {
	if conf.AdminUserConfig.Username == "" || conf.AdminUserConfig.PasswordHash == "" {
		slog.Error("Admin credentials not configured - set username and password_hash")
		panic("admin credentials not configured")
	}
	if conf.AdminUserConfig.JWTSignKey == "" {
		slog.Error("Admin JWT sign key not configured")
		panic("admin JWT sign key not configured")
	}
	if conf.AdminUserConfig.JWTExpiresIn == 0 {
		conf.AdminUserConfig.JWTExpiresIn = 12 * time.Hour
	}
}

func initDBs() {
	var err error
	participantDBService, err = participantDB.NewParticipantDBService(db.DBConfigFromYamlObj(conf.DBConfigs.ParticipantDB))
	if err != nil {
		slog.Error("Error connecting to Participant DB", slog.String("error", err.Error()))
		panic(err)
	}
}
