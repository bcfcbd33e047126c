package ticket

import (
	"encoding/json"
	"errors"
	"testing"

	regTypes "github.com/Lageebro/nalandabatch/pkg/registration/types"
)

func TestPayloadEncode(t *testing.T) {
	p := Payload{ID: "abc123", Name: "Alice", Batch: "B1", Status: "verified"}
	text, err := p.Encode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var keys map[string]interface{}
	if err := json.Unmarshal([]byte(text), &keys); err != nil {
		t.Fatalf("encoded payload is not valid JSON: %v", err)
	}
	if len(keys) != 4 {
		t.Errorf("payload must carry exactly four keys, got %d: %s", len(keys), text)
	}
	for _, key := range []string{"id", "name", "batch", "status"} {
		if _, ok := keys[key]; !ok {
			t.Errorf("payload missing key %s: %s", key, text)
		}
	}
}

func TestDecodePayload(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		shouldFail bool
		expectedID string
	}{
		{"valid", `{"id":"abc","name":"Alice","batch":"B1","status":"verified"}`, false, "abc"},
		{"unknown keys tolerated", `{"id":"abc","future":"field","v":2}`, false, "abc"},
		{"missing id", `{"name":"Alice"}`, true, ""},
		{"empty id", `{"id":""}`, true, ""},
		{"not json", `BP2026 rocks`, true, ""},
		{"empty", ``, true, ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p, err := DecodePayload(test.text)
			if test.shouldFail {
				if !errors.Is(err, ErrInvalidPayload) {
					t.Errorf("expected ErrInvalidPayload, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.ID != test.expectedID {
				t.Errorf("expected id %s, got %s", test.expectedID, p.ID)
			}
		})
	}
}

func TestDisplayCode(t *testing.T) {
	tests := []struct {
		id       string
		expected string
	}{
		{"65f1a2b3c4d5e6f708091011", "#BP2026-65F1A2B3"},
		{"abc", "#BP2026-ABC"},
	}

	for _, test := range tests {
		result := regTypes.DisplayCode(test.id)
		if result != test.expected {
			t.Errorf("expected %s for id %s, but got %s", test.expected, test.id, result)
		}
	}
}
