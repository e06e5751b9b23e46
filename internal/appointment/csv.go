package appointment

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

var csvHeader = []string{
	"id",
	"full_name",
	"email",
	"phone",
	"preferred_artist",
	"tattoo_style",
	"placement",
	"approximate_size",
	"tattoo_description",
	"budget_range",
	"preferred_timeframe",
	"submitted_at",
	"summary",
}

// WriteCSV writes all requests as RFC 4180 CSV, one row per request plus a
// header row. Fields containing commas, quotes, or newlines are quoted by the
// encoder with internal quotes doubled.
func WriteCSV(w io.Writer, requests []Request) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, r := range requests {
		row := []string{
			r.ID,
			r.FullName,
			r.Email,
			r.Phone,
			r.PreferredArtist,
			r.TattooStyle,
			r.Placement,
			r.ApproximateSize,
			r.TattooDescription,
			r.BudgetRange,
			r.PreferredTimeframe,
			r.SubmittedAt.Format(time.RFC3339),
			r.Summary,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %s: %w", r.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
