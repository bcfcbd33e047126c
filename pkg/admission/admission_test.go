package admission

import (
	"sync"
	"testing"
	"time"

	participantDB "github.com/Lageebro/nalandabatch/pkg/db/participants"
	regTypes "github.com/Lageebro/nalandabatch/pkg/registration/types"
)

// fakeStore mimics the guarded participant store transitions in memory.
type fakeStore struct {
	mu      sync.Mutex
	records map[string]regTypes.Participant
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: map[string]regTypes.Participant{}}
}

func (s *fakeStore) GetParticipantByID(id string) (regTypes.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.records[id]
	if !ok {
		return regTypes.Participant{}, participantDB.ErrParticipantNotFound
	}
	return p, nil
}

func (s *fakeStore) MarkScanned(id string, scannedAt string) (regTypes.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.records[id]
	if !ok {
		return regTypes.Participant{}, participantDB.ErrParticipantNotFound
	}
	if !p.IsVerified() {
		return p, participantDB.ErrNotVerified
	}
	if p.Scanned {
		return p, participantDB.ErrAlreadyScanned
	}
	p.Scanned = true
	p.ScannedAt = scannedAt
	s.records[id] = p
	return p, nil
}

func TestAdmitTerminalRejects(t *testing.T) {
	store := newFakeStore()
	store.records["pending1"] = regTypes.Participant{
		Name:   "Bob",
		Batch:  "B2",
		Status: regTypes.PARTICIPANT_STATUS_PENDING,
	}

	now := time.Now()

	tests := []struct {
		name            string
		payload         string
		expectedOutcome string
	}{
		{"malformed json", "not json", OUTCOME_INVALID_PAYLOAD},
		{"missing id", `{"name":"Bob","batch":"B2","status":"verified"}`, OUTCOME_INVALID_PAYLOAD},
		{"unknown id", `{"id":"nosuchid","name":"X","batch":"B1","status":"verified"}`, OUTCOME_UNKNOWN_TICKET},
		{"not verified yet", `{"id":"pending1","name":"Bob","batch":"B2","status":"pending"}`, OUTCOME_NOT_VERIFIED},
		{"extra unknown keys tolerated", `{"id":"nosuchid","extra":42,"other":"x"}`, OUTCOME_UNKNOWN_TICKET},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			decision, err := Admit(store, test.payload, now)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if decision.Outcome != test.expectedOutcome {
				t.Errorf("expected outcome %s, got %s", test.expectedOutcome, decision.Outcome)
			}
			if decision.Approved() {
				t.Errorf("reject outcome must not report approved")
			}
		})
	}

	// rejects must not mutate the record
	p, _ := store.GetParticipantByID("pending1")
	if p.Scanned || p.ScannedAt != "" {
		t.Errorf("rejected scan mutated the record: %+v", p)
	}
}

func TestAdmitApprovesExactlyOnce(t *testing.T) {
	store := newFakeStore()
	store.records["v1"] = regTypes.Participant{
		Name:   "Alice",
		Batch:  "B1",
		Status: regTypes.PARTICIPANT_STATUS_VERIFIED,
	}

	payload := `{"id":"v1","name":"Alice","batch":"B1","status":"verified"}`

	first, err := Admit(store, payload, time.Date(2026, 1, 10, 20, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Outcome != OUTCOME_APPROVED {
		t.Fatalf("expected approved, got %s", first.Outcome)
	}
	if first.Name != "Alice" || first.Batch != "B1" {
		t.Errorf("approval should report name and batch, got %+v", first)
	}
	if first.ScannedAt != "2026-01-10T20:00:00Z" {
		t.Errorf("unexpected scannedAt: %s", first.ScannedAt)
	}

	second, err := Admit(store, payload, time.Date(2026, 1, 10, 20, 5, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Outcome != OUTCOME_ALREADY_SCANNED {
		t.Fatalf("expected already-scanned, got %s", second.Outcome)
	}
	if second.ScannedAt != first.ScannedAt {
		t.Errorf("second attempt must report the original scannedAt, got %s", second.ScannedAt)
	}
}

func TestAdmitConcurrentScansSingleApproval(t *testing.T) {
	store := newFakeStore()
	store.records["v1"] = regTypes.Participant{
		Name:   "Alice",
		Batch:  "B1",
		Status: regTypes.PARTICIPANT_STATUS_VERIFIED,
	}

	payload := `{"id":"v1","name":"Alice","batch":"B1","status":"verified"}`

	const attempts = 16
	decisions := make([]Decision, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d, err := Admit(store, payload, time.Now())
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			decisions[i] = d
		}(i)
	}
	wg.Wait()

	approvals := 0
	for _, d := range decisions {
		switch d.Outcome {
		case OUTCOME_APPROVED:
			approvals++
		case OUTCOME_ALREADY_SCANNED:
		default:
			t.Errorf("unexpected outcome under contention: %s", d.Outcome)
		}
	}
	if approvals != 1 {
		t.Errorf("expected exactly one approval, got %d", approvals)
	}
}
