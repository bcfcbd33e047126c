package admission

import (
	"errors"
	"log/slog"
	"time"

	participantDB "github.com/Lageebro/nalandabatch/pkg/db/participants"
	regTypes "github.com/Lageebro/nalandabatch/pkg/registration/types"
	"github.com/Lageebro/nalandabatch/pkg/ticket"
)

// scan outcomes
const (
	OUTCOME_APPROVED        = "approved"
	OUTCOME_INVALID_PAYLOAD = "invalid-payload"
	OUTCOME_UNKNOWN_TICKET  = "invalid-ticket"
	OUTCOME_NOT_VERIFIED    = "not-verified"
	OUTCOME_ALREADY_SCANNED = "already-scanned"
)

// ParticipantStore is the slice of the record store the admission check needs.
// MarkScanned must be a guarded transition: it only succeeds for a verified,
// not yet scanned record and reports why it refused otherwise.
type ParticipantStore interface {
	GetParticipantByID(id string) (regTypes.Participant, error)
	MarkScanned(id string, scannedAt string) (regTypes.Participant, error)
}

// Decision is the terminal result of one scan attempt.
type Decision struct {
	Outcome   string `json:"outcome"`
	TicketID  string `json:"ticketId,omitempty"`
	Name      string `json:"name,omitempty"`
	Batch     string `json:"batch,omitempty"`
	ScannedAt string `json:"scannedAt,omitempty"`
}

func (d Decision) Approved() bool {
	return d.Outcome == OUTCOME_APPROVED
}

// Admit runs the admission state machine for one decoded scan. Per ticket the
// reachable states are: unknown id (terminal reject), pending (terminal
// reject), verified and unused (transitions to used exactly once) and
// verified and used (terminal reject reporting the original scan time).
//
// The single state transition happens through the store's guarded MarkScanned
// update, so two near-simultaneous scans of the same ticket can never both be
// approved. A returned error means the store call itself failed and the
// attempt can be retried.
func Admit(store ParticipantStore, payloadText string, now time.Time) (Decision, error) {
	payload, err := ticket.DecodePayload(payloadText)
	if err != nil {
		slog.Debug("scan payload rejected", slog.String("error", err.Error()))
		return Decision{Outcome: OUTCOME_INVALID_PAYLOAD}, nil
	}

	participant, err := store.GetParticipantByID(payload.ID)
	if err != nil {
		if errors.Is(err, participantDB.ErrParticipantNotFound) {
			return Decision{Outcome: OUTCOME_UNKNOWN_TICKET, TicketID: payload.ID}, nil
		}
		return Decision{}, err
	}

	if !participant.IsVerified() {
		return Decision{
			Outcome:  OUTCOME_NOT_VERIFIED,
			TicketID: payload.ID,
			Name:     participant.Name,
			Batch:    participant.Batch,
		}, nil
	}

	updated, err := store.MarkScanned(payload.ID, now.UTC().Format(time.RFC3339))
	if err != nil {
		switch {
		case errors.Is(err, participantDB.ErrAlreadyScanned):
			return Decision{
				Outcome:   OUTCOME_ALREADY_SCANNED,
				TicketID:  payload.ID,
				Name:      updated.Name,
				Batch:     updated.Batch,
				ScannedAt: updated.ScannedAt,
			}, nil
		case errors.Is(err, participantDB.ErrNotVerified):
			return Decision{
				Outcome:  OUTCOME_NOT_VERIFIED,
				TicketID: payload.ID,
				Name:     updated.Name,
				Batch:    updated.Batch,
			}, nil
		case errors.Is(err, participantDB.ErrParticipantNotFound):
			// record deleted between lookup and transition
			return Decision{Outcome: OUTCOME_UNKNOWN_TICKET, TicketID: payload.ID}, nil
		}
		return Decision{}, err
	}

	return Decision{
		Outcome:   OUTCOME_APPROVED,
		TicketID:  payload.ID,
		Name:      updated.Name,
		Batch:     updated.Batch,
		ScannedAt: updated.ScannedAt,
	}, nil
}
