package exporter

import (
	"encoding/json"
	"io"
	"time"

	regTypes "github.com/Lageebro/nalandabatch/pkg/registration/types"
)

// ExportFilename builds the dated backup file name.
func ExportFilename(t time.Time) string {
	return "BatchParty_Backup_" + t.Format("2006-01-02") + ".json"
}

// ExportParticipants writes the full record set, ids included, as an indented
// JSON array. The snapshot is point in time: it is taken from a plain read,
// not from the live subscription.
func ExportParticipants(w io.Writer, participants []regTypes.Participant) error {
	if participants == nil {
		participants = []regTypes.Participant{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(participants)
}
