package messaging

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const (
	waComposeBaseURL = "https://wa.me/"

	// local numbers starting with 0 are rewritten to this country prefix
	DefaultCountryPrefix = "94"
)

var nonDigits = regexp.MustCompile(`\D`)

// NormalizePhone strips everything but digits from a contact number and
// rewrites a leading 0 to the given country prefix, so "0711111111" becomes
// "94711111111".
func NormalizePhone(contact string, countryPrefix string) string {
	digits := nonDigits.ReplaceAllString(contact, "")
	if strings.HasPrefix(digits, "0") {
		digits = countryPrefix + digits[1:]
	}
	return digits
}

// TicketMessage renders the fixed verification message for one attendee.
func TicketMessage(name string, ticketURL string) string {
	return fmt.Sprintf("*Hi %s!* 🎉\nYour payment for *Batch Party 2026* is VERIFIED. Please show the attached QR at entry.\n\n🔗 Online Link: %s", name, ticketURL)
}

// WhatsAppLink builds the chat compose deep link for the normalized number.
func WhatsAppLink(normalizedPhone string, message string) string {
	return waComposeBaseURL + normalizedPhone + "?text=" + url.QueryEscape(message)
}
