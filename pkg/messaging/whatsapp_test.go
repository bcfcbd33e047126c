package messaging

import (
	"strings"
	"testing"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"0711111111", "94711111111"},
		{"071-111 1111", "94711111111"},
		{"+94 71 111 1111", "94711111111"},
		{"94711111111", "94711111111"},
		{"(071) 1111111", "94711111111"},
	}

	for _, test := range tests {
		result := NormalizePhone(test.input, DefaultCountryPrefix)
		if result != test.expected {
			t.Errorf("expected %s for input %s, but got %s", test.expected, test.input, result)
		}
	}
}

func TestWhatsAppLink(t *testing.T) {
	msg := TicketMessage("Alice", "https://example.com/?id=abc")
	link := WhatsAppLink("94711111111", msg)

	if !strings.HasPrefix(link, "https://wa.me/94711111111?text=") {
		t.Errorf("unexpected link target: %s", link)
	}
	if !strings.Contains(msg, "Alice") {
		t.Errorf("message must interpolate the name: %s", msg)
	}
	if strings.Contains(link, " ") {
		t.Errorf("message body must be URL encoded: %s", link)
	}
}
