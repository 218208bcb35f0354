package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// reportTimeLayout is how report timestamps are rendered.
const reportTimeLayout = "2006-01-02 15:04:05"

// DateRange spans the timestamps of the successfully migrated rows.
type DateRange struct {
	From time.Time
	To   time.Time
}

// MigrationReport snapshots the outcome of one CSV migration run. It is
// built once when processing finishes and handed to the report channels;
// DateRange is nil when no row succeeded.
type MigrationReport struct {
	Timestamp      time.Time
	Filename       string
	FileSize       int64
	TotalRecords   int
	SuccessRecords int
	ErrorRecords   int
	ProcessingTime time.Duration
	UsersAffected  int
	TotalAmount    decimal.Decimal
	AverageAmount  decimal.Decimal
	LargestAmount  decimal.Decimal
	SmallestAmount decimal.Decimal
	DateRange      *DateRange
	Errors         []string
}

// MarshalJSON implements json.Marshaler using the wire field names the
// report consumers expect.
func (r MigrationReport) MarshalJSON() ([]byte, error) {
	type dateRange struct {
		From string `json:"from"`
		To   string `json:"to"`
	}
	out := struct {
		Timestamp      string     `json:"timestamp"`
		Filename       string     `json:"filename"`
		FileSize       int64      `json:"file_size"`
		TotalRecords   int        `json:"total_records"`
		SuccessRecords int        `json:"success_records"`
		ErrorRecords   int        `json:"error_records"`
		ProcessingTime string     `json:"processing_time"`
		UsersAffected  int        `json:"users_affected"`
		TotalAmount    Money      `json:"total_amount"`
		AverageAmount  Money      `json:"average_amount"`
		LargestAmount  Money      `json:"largest_amount"`
		SmallestAmount Money      `json:"smallest_amount"`
		DateRange      *dateRange `json:"date_range,omitempty"`
		Errors         []string   `json:"errors,omitempty"`
	}{
		Timestamp:      r.Timestamp.Format(reportTimeLayout),
		Filename:       r.Filename,
		FileSize:       r.FileSize,
		TotalRecords:   r.TotalRecords,
		SuccessRecords: r.SuccessRecords,
		ErrorRecords:   r.ErrorRecords,
		ProcessingTime: r.ProcessingTime.String(),
		UsersAffected:  r.UsersAffected,
		TotalAmount:    Money{r.TotalAmount},
		AverageAmount:  Money{r.AverageAmount},
		LargestAmount:  Money{r.LargestAmount},
		SmallestAmount: Money{r.SmallestAmount},
		Errors:         r.Errors,
	}
	if r.DateRange != nil {
		out.DateRange = &dateRange{
			From: r.DateRange.From.Format(reportTimeLayout),
			To:   r.DateRange.To.Format(reportTimeLayout),
		}
	}
	return json.Marshal(out)
}
