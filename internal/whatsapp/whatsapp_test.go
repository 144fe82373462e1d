package whatsapp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeNumber(t *testing.T) {
	cases := map[string]string{
		"+233501234567":     "233501234567",
		"233501234567":      "233501234567",
		"0501234567":        "233501234567",
		"501234567":         "233501234567",
		"00233501234567":    "233501234567",
		"2330501234567":     "233501234567",
		"+233 501 234 567":  "233501234567",
		"0501-234-567":      "233501234567",
		"":                  "",
		"abc":               "",
		"12345":             "",
		"44770090000012345": "",
	}

	for in, want := range cases {
		assert.Equal(t, want, NormalizeNumber(in), "input %q", in)
	}
}

func TestBuildLink(t *testing.T) {
	t.Run("without message", func(t *testing.T) {
		assert.Equal(t, "https://wa.me/233501234567", BuildLink("0501234567", ""))
	})

	t.Run("with message", func(t *testing.T) {
		link := BuildLink("0501234567", "hello there")
		assert.True(t, strings.HasPrefix(link, "https://wa.me/233501234567?text="))
		assert.Contains(t, link, "hello+there")
	})

	t.Run("invalid number", func(t *testing.T) {
		assert.Equal(t, "", BuildLink("not a phone", "hi"))
	})
}

func TestFormatDateTime(t *testing.T) {
	dateStr, timeStr, err := FormatDateTime("2026-09-07", "14:30")
	require.NoError(t, err)
	assert.Equal(t, "Mon, 07 Sep 2026", dateStr)
	assert.Equal(t, "2:30 PM", timeStr)

	_, _, err = FormatDateTime("not-a-date", "14:30")
	assert.Error(t, err)
}

func TestConfirmationMessage(t *testing.T) {
	biz := Business{Name: "LunaBloom Spa", Location: "East Legon, Accra", Phone: "+233 501 234 567"}
	msg := ConfirmationMessage("Jane", "Full Body Massage", "Mon, 07 Sep 2026", "2:30 PM", biz)

	assert.Contains(t, msg, "Hello Jane")
	assert.Contains(t, msg, "*Full Body Massage*")
	assert.Contains(t, msg, "*Mon, 07 Sep 2026*")
	assert.Contains(t, msg, "LunaBloom Spa")
	assert.Contains(t, msg, "Location: East Legon, Accra")
	assert.Contains(t, msg, "Call: +233 501 234 567")
}

func TestConfirmationMessageDefaults(t *testing.T) {
	msg := ConfirmationMessage("", "Aromatherapy", "Tue, 08 Sep 2026", "11:00 AM", Business{})

	assert.True(t, strings.HasPrefix(msg, "Hello,"))
	assert.Contains(t, msg, "Our Spa")
	assert.NotContains(t, msg, "Location:")
	assert.NotContains(t, msg, "Call:")
}

func TestFirstName(t *testing.T) {
	assert.Equal(t, "Jane", FirstName("Jane Doe"))
	assert.Equal(t, "Jane", FirstName("  Jane  "))
	assert.Equal(t, "", FirstName(""))
}
