package registration

import (
	"errors"
	"strings"
	"testing"
	"time"

	regTypes "github.com/Lageebro/nalandabatch/pkg/registration/types"
)

type captureStore struct {
	saved *regTypes.Participant
}

func (s *captureStore) AddParticipant(p regTypes.Participant) (string, error) {
	s.saved = &p
	return "generated-id", nil
}

func TestValidate(t *testing.T) {
	valid := RegistrationInput{
		Name:    "Alice",
		Batch:   "B1",
		Contact: "0711111111",
		Address: "X",
		Slip:    "data:image/png;base64,aGVsbG8=",
	}

	tests := []struct {
		name       string
		mutate     func(i RegistrationInput) RegistrationInput
		shouldFail bool
	}{
		{"all fields set", func(i RegistrationInput) RegistrationInput { return i }, false},
		{"missing name", func(i RegistrationInput) RegistrationInput { i.Name = ""; return i }, true},
		{"whitespace name", func(i RegistrationInput) RegistrationInput { i.Name = "  "; return i }, true},
		{"missing batch", func(i RegistrationInput) RegistrationInput { i.Batch = ""; return i }, true},
		{"missing contact", func(i RegistrationInput) RegistrationInput { i.Contact = ""; return i }, true},
		{"missing address", func(i RegistrationInput) RegistrationInput { i.Address = ""; return i }, true},
		{"missing slip", func(i RegistrationInput) RegistrationInput { i.Slip = ""; return i }, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.mutate(valid).Validate()
			if test.shouldFail && !errors.Is(err, ErrMissingDetails) {
				t.Errorf("expected ErrMissingDetails, got %v", err)
			}
			if !test.shouldFail && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestRegister(t *testing.T) {
	store := &captureStore{}
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	id, err := Register(store, RegistrationInput{
		Name:    " Alice ",
		Batch:   "B1",
		Contact: "0711111111",
		Address: "X",
		Slip:    "data:image/png;base64,aGVsbG8=",
	}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "generated-id" {
		t.Errorf("expected store assigned id, got %s", id)
	}
	if store.saved == nil {
		t.Fatal("record was not persisted")
	}
	if store.saved.Status != regTypes.PARTICIPANT_STATUS_PENDING {
		t.Errorf("new record must start pending, got %s", store.saved.Status)
	}
	if store.saved.Name != "Alice" {
		t.Errorf("expected trimmed name, got %q", store.saved.Name)
	}
	if store.saved.Timestamp != "2026-01-02T03:04:05Z" {
		t.Errorf("unexpected creation timestamp: %s", store.saved.Timestamp)
	}
	if store.saved.Scanned || store.saved.ScannedAt != "" {
		t.Errorf("new record must not be scanned: %+v", store.saved)
	}

	_, err = Register(store, RegistrationInput{Name: "NoSlip", Batch: "B1", Contact: "07", Address: "X"}, now)
	if !errors.Is(err, ErrMissingDetails) {
		t.Errorf("expected ErrMissingDetails, got %v", err)
	}
}

func TestEncodeSlip(t *testing.T) {
	got := EncodeSlip("image/png", []byte("hello"))
	if !strings.HasPrefix(got, "data:image/png;base64,") {
		t.Errorf("unexpected data URI prefix: %s", got)
	}
	if !strings.HasSuffix(got, "aGVsbG8=") {
		t.Errorf("unexpected base64 payload: %s", got)
	}
}
