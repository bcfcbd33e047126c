package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Lageebro/nalandabatch/pkg/db"
	"github.com/Lageebro/nalandabatch/pkg/exporter"

	participantDB "github.com/Lageebro/nalandabatch/pkg/db/participants"
)

var conf DataExportConfig

func main() {
	participantDBService, err := participantDB.NewParticipantDBService(db.DBConfigFromYamlObj(conf.DBConfigs.ParticipantDB))
	if err != nil {
		slog.Error("Error connecting to Participant DB", slog.String("error", err.Error()))
		return
	}

	participants, err := participantDBService.GetParticipants()
	if err != nil {
		slog.Error("Error fetching participants for export", slog.String("error", err.Error()))
		return
	}

	targetPath := filepath.Join(conf.ExportPath, exporter.ExportFilename(time.Now()))
	file, err := os.Create(targetPath)
	if err != nil {
		slog.Error("Error creating export file", slog.String("path", targetPath), slog.String("error", err.Error()))
		return
	}
	defer file.Close()

	if err := exporter.ExportParticipants(file, participants); err != nil {
		slog.Error("Error writing export file", slog.String("path", targetPath), slog.String("error", err.Error()))
		return
	}

	slog.Info("Export written", slog.String("path", targetPath), slog.Int("records", len(participants)))
}
