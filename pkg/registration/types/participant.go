package types

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// participant statuses
const (
	PARTICIPANT_STATUS_PENDING  = "pending"
	PARTICIPANT_STATUS_VERIFIED = "verified"
)

// DisplayCodePrefix is prepended to the shortened record id on tickets.
const DisplayCodePrefix = "#BP2026-"

// Participant is one attendee's registration document in the participants collection.
type Participant struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Batch     string             `bson:"batch" json:"batch"`
	Contact   string             `bson:"contact" json:"contact"`
	Address   string             `bson:"address" json:"address"`
	Slip      string             `bson:"slip" json:"slip"` // inline data URI of the payment proof image
	Status    string             `bson:"status" json:"status"`
	Scanned   bool               `bson:"scanned,omitempty" json:"scanned,omitempty"`
	ScannedAt string             `bson:"scannedAt,omitempty" json:"scannedAt,omitempty"`
	Timestamp string             `bson:"timestamp" json:"timestamp"`
}

func (p Participant) IsVerified() bool {
	return p.Status == PARTICIPANT_STATUS_VERIFIED
}

// DisplayCode derives the human readable ticket code from a record id.
// The code is derived on demand and never stored.
func DisplayCode(id string) string {
	short := id
	if len(short) > 8 {
		short = short[:8]
	}
	return DisplayCodePrefix + strings.ToUpper(short)
}

// NewTimestamp returns the creation timestamp format used for list ordering.
func NewTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
