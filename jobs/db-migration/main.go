package main

import (
	"log/slog"

	"github.com/Lageebro/nalandabatch/pkg/db"

	participantDB "github.com/Lageebro/nalandabatch/pkg/db/participants"
)

var conf DBMigrationConfig

func main() {
	participantDBService, err := participantDB.NewParticipantDBService(db.DBConfigFromYamlObj(conf.DBConfigs.ParticipantDB))
	if err != nil {
		slog.Error("Error connecting to Participant DB", slog.String("error", err.Error()))
		return
	}

	if err := participantDBService.CreateDefaultIndexes(); err != nil {
		slog.Error("Error creating indexes for participants collection", slog.String("error", err.Error()))
		return
	}

	slog.Info("Participant collection indexes created")
}
