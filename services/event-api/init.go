package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"github.com/Lageebro/nalandabatch/pkg/apihelpers"
	"github.com/Lageebro/nalandabatch/pkg/db"
	"github.com/Lageebro/nalandabatch/pkg/utils"

	participantDB "github.com/Lageebro/nalandabatch/pkg/db/participants"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_PARTICIPANT_DB_USERNAME = "PARTICIPANT_DB_USERNAME"
	ENV_PARTICIPANT_DB_PASSWORD = "PARTICIPANT_DB_PASSWORD"
)

type EventApiConfig struct {
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

	// DB configs
	DBConfigs struct {
		ParticipantDB db.DBConfigYaml `json:"participant_db" yaml:"participant_db"`
	} `json:"db_configs" yaml:"db_configs"`

	// Registration configs
	RegistrationConfig struct {
		MaxSlipFileSize  int64    `json:"max_slip_file_size" yaml:"max_slip_file_size"`
		AllowedSlipTypes []string `json:"allowed_slip_types" yaml:"allowed_slip_types"`
	} `json:"registration_config" yaml:"registration_config"`
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

	// Init DBs
	initDBs()

	applyDefaults()

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
}

func applyDefaults() {
	if conf.RegistrationConfig.MaxSlipFileSize == 0 {
		conf.RegistrationConfig.MaxSlipFileSize = 5 << 20
	}
	if len(conf.RegistrationConfig.AllowedSlipTypes) == 0 {
		conf.RegistrationConfig.AllowedSlipTypes = []string{"image/jpeg", "image/png", "image/webp"}
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
