package registration

import (
	"encoding/base64"
	"errors"
	"strings"
	"time"

	regTypes "github.com/Lageebro/nalandabatch/pkg/registration/types"
)

var ErrMissingDetails = errors.New("missing details")

// RecordStore is the slice of the participant store the registration flow needs.
type RecordStore interface {
	AddParticipant(participant regTypes.Participant) (string, error)
}

// RegistrationInput carries the submitted form fields. Slip is the already
// inline-encoded payment proof image.
type RegistrationInput struct {
	Name    string
	Batch   string
	Contact string
	Address string
	Slip    string
}

// Validate rejects the submission if any field or the slip payload is empty.
func (input RegistrationInput) Validate() error {
	if strings.TrimSpace(input.Name) == "" ||
		strings.TrimSpace(input.Batch) == "" ||
		strings.TrimSpace(input.Contact) == "" ||
		strings.TrimSpace(input.Address) == "" ||
		input.Slip == "" {
		return ErrMissingDetails
	}
	return nil
}

// EncodeSlip turns the uploaded proof image into the inline data URI
// representation stored on the record.
func EncodeSlip(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Register validates the input, builds the pending record and persists it.
// The returned id confirms the registration is pending verification - a
// ticket only exists once an admin verified the payment.
func Register(store RecordStore, input RegistrationInput, now time.Time) (string, error) {
	if err := input.Validate(); err != nil {
		return "", err
	}

	participant := regTypes.Participant{
		Name:      strings.TrimSpace(input.Name),
		Batch:     strings.TrimSpace(input.Batch),
		Contact:   strings.TrimSpace(input.Contact),
		Address:   strings.TrimSpace(input.Address),
		Slip:      input.Slip,
		Status:    regTypes.PARTICIPANT_STATUS_PENDING,
		Timestamp: regTypes.NewTimestamp(now),
	}

	return store.AddParticipant(participant)
}
