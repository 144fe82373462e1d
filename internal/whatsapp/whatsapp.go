// Package whatsapp builds wa.me deep links and confirmation messages for
// the admin contact actions.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// NormalizeNumber reduces a raw Ghana phone number to E.164 digits
// (233XXXXXXXXX, no plus). Returns "" when the number cannot be made to
// fit that shape.
func NormalizeNumber(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	s = strings.TrimPrefix(s, "+")
	s = strings.TrimPrefix(s, "00")

	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	s = digits.String()
	if s == "" {
		return ""
	}

	// Local format 0XXXXXXXXX.
	if len(s) == 10 && strings.HasPrefix(s, "0") {
		s = "233" + s[1:]
	}

	// Bare national number without the leading zero.
	if len(s) == 9 && !strings.HasPrefix(s, "233") {
		s = "233" + s
	}

	// Country code followed by the local zero: 2330XXXXXXXXX.
	if strings.HasPrefix(s, "2330") && len(s) == 13 {
		s = "233" + s[4:]
	}

	if strings.HasPrefix(s, "233") && len(s) == 12 {
		return s
	}

	return ""
}

// BuildLink returns a wa.me URL for the number, optionally with a
// prefilled message. Returns "" for numbers NormalizeNumber rejects.
func BuildLink(phoneRaw, message string) string {
	phone := NormalizeNumber(phoneRaw)
	if phone == "" {
		return ""
	}
	if message == "" {
		return "https://wa.me/" + phone
	}
	return "https://wa.me/" + phone + "?text=" + url.QueryEscape(message)
}

// Business identifies the salon in outbound messages.
type Business struct {
	Name     string
	Location string
	Phone    string
}

// FormatDateTime renders an ISO date plus HH:MM time for a message,
// e.g. "Mon, 07 Sep 2026" and "3:04 PM".
func FormatDateTime(dateISO, timeHHMM string) (string, string, error) {
	if timeHHMM == "" {
		timeHHMM = "00:00"
	}
	dt, err := time.Parse("2006-01-02T15:04", dateISO+"T"+timeHHMM)
	if err != nil {
		return "", "", err
	}
	return dt.Format("Mon, 02 Jan 2006"), dt.Format("3:04 PM"), nil
}

// ConfirmationMessage is the prefilled text sent when an admin opens a
// chat with a client whose booking is confirmed.
func ConfirmationMessage(firstName, serviceName, dateStr, timeStr string, biz Business) string {
	name := ""
	if firstName != "" {
		name = " " + firstName
	}
	bizName := biz.Name
	if bizName == "" {
		bizName = "Our Spa"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hello%s, your *%s* on *%s* at *%s* has been *confirmed* ✅ at %s.",
		name, serviceName, dateStr, timeStr, bizName)
	if biz.Location != "" {
		fmt.Fprintf(&b, "\nLocation: %s", biz.Location)
	}
	b.WriteString("\n\nIf you need to reschedule, please reply here at least 4 hours before your time.")
	if biz.Phone != "" {
		fmt.Fprintf(&b, "\nCall: %s", biz.Phone)
	}
	b.WriteString("\n\nWe look forward to seeing you!")
	return b.String()
}

// FirstName returns the first whitespace-separated token of a full name.
func FirstName(fullName string) string {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
