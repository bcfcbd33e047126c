package main

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"github.com/Lageebro/nalandabatch/pkg/db"
	"github.com/Lageebro/nalandabatch/pkg/utils"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	ENV_PARTICIPANT_DB_USERNAME = "PARTICIPANT_DB_USERNAME"
	ENV_PARTICIPANT_DB_PASSWORD = "PARTICIPANT_DB_PASSWORD"
)

type DataExportConfig struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// DB configs
	DBConfigs struct {
		ParticipantDB db.DBConfigYaml `json:"participant_db" yaml:"participant_db"`
	} `json:"db_configs" yaml:"db_configs"`

	// folder the dated backup files are written into
	ExportPath string `json:"export_path" yaml:"export_path"`
}

func init() {
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

	secretsOverride()

	checkExportPath()
}

func secretsOverride() {
	if dbUsername := os.Getenv(ENV_PARTICIPANT_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.ParticipantDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_PARTICIPANT_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.ParticipantDB.Password = dbPassword
	}
}

func checkExportPath() {
	if conf.ExportPath == "" {
		panic("export path not set")
	}

	if _, err := os.Stat(conf.ExportPath); os.IsNotExist(err) {
		panic("export path does not exist")
	}
}
