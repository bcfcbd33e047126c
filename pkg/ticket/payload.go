package ticket

import (
	"encoding/json"
	"errors"
)

var ErrInvalidPayload = errors.New("invalid ticket payload")

// Payload is the wire contract carried inside the QR code. Exactly these four
// keys are produced; consumers tolerate additional unknown keys but require id.
type Payload struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Batch  string `json:"batch"`
	Status string `json:"status"`
}

// Encode serializes the payload to the compact JSON form embedded in the QR code.
func (p Payload) Encode() (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodePayload parses scanned QR text. Unknown keys are ignored; a payload
// without an id is rejected without touching any other system.
func DecodePayload(text string) (Payload, error) {
	var p Payload
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return Payload{}, ErrInvalidPayload
	}
	if p.ID == "" {
		return Payload{}, ErrInvalidPayload
	}
	return p, nil
}
