package booking

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/justicechristophersam-ai/spaflow/internal/schedule"
)

var csvHeader = []string{
	"id", "name", "whatsapp", "email", "service_type",
	"preferred_date", "preferred_time", "status", "created_at", "notes",
}

// WriteCSV serializes the rows as RFC 4180 CSV: one header line plus one
// line per booking. encoding/csv quotes embedded commas, quotes and
// newlines so a re-parse recovers every field verbatim.
func WriteCSV(w io.Writer, rows []Booking) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, r := range rows {
		record := []string{
			r.ID, r.Name, r.WhatsApp, r.Email, r.ServiceType,
			r.PreferredDate, r.PreferredTime, r.Status,
			r.CreatedAt.Format(time.RFC3339), r.Notes,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportFilename labels the download after the exported range.
func ExportFilename(dr schedule.DateRange) string {
	label := "all_time"
	if dr.From != "" || dr.To != "" {
		from := dr.From
		if from == "" {
			from = "na"
		}
		to := dr.To
		if to == "" {
			to = "na"
		}
		label = fmt.Sprintf("%s_to_%s", from, to)
	}
	return "bookings_" + strings.ReplaceAll(label, " ", "") + ".csv"
}
