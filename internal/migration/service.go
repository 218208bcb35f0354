package migration

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ledgerline-dev/ledgerline/internal/model"
	"github.com/ledgerline-dev/ledgerline/internal/store"
)

// ReportDispatcher receives a completed report for asynchronous delivery.
// Implementations must not block the caller on delivery.
type ReportDispatcher interface {
	Dispatch(report *model.MigrationReport)
}

// Service drives a CSV migration end to end: header validation, row by
// row parse+store+accumulate, report assembly and background dispatch.
type Service struct {
	store      store.TransactionStore
	dispatcher ReportDispatcher
	log        zerolog.Logger
}

// NewService creates a migration Service.
func NewService(st store.TransactionStore, dispatcher ReportDispatcher, log zerolog.Logger) *Service {
	return &Service{store: st, dispatcher: dispatcher, log: log}
}

// ProcessCSV migrates one uploaded CSV file and returns its report.
//
// The file is rejected as a whole only for an empty file or a bad header;
// any data row that fails to parse or persist is recorded in the report
// and processing continues with the next row. The report is handed to the
// dispatcher before returning; delivery is not awaited and may still be
// in flight when ProcessCSV returns.
func (s *Service) ProcessCSV(ctx context.Context, r io.Reader, filename string, size int64) (*model.MigrationReport, error) {
	start := time.Now()

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // row shape is validated per row

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}
	if err := ValidateHeader(records[0]); err != nil {
		return nil, err
	}

	agg := NewAggregator(s.store)
	for i, record := range records[1:] {
		line := i + 2 // data rows start at file line 2
		txn, rowErr := ParseRow(record, line)
		if rowErr != nil {
			s.log.Warn().Int("line", line).Str("error", rowErr.Msg).Msg("skipping row")
			agg.Failure(rowErr)
			continue
		}
		agg.Success(ctx, txn, line)
	}

	stats := agg.Stats()
	stats.TotalRecords = len(records) - 1

	report := buildReport(stats, filename, size, time.Since(start))

	s.log.Info().
		Str("filename", filename).
		Int("total", report.TotalRecords).
		Int("success", report.SuccessRecords).
		Int("errors", report.ErrorRecords).
		Dur("elapsed", report.ProcessingTime).
		Msg("migration completed")

	s.dispatcher.Dispatch(report)
	return report, nil
}

// buildReport assembles the final report from accumulated statistics.
// Average amount is sum/successes, or zero when nothing succeeded.
func buildReport(stats *Stats, filename string, size int64, elapsed time.Duration) *model.MigrationReport {
	average := decimal.Zero
	if stats.SuccessRecords > 0 {
		average = stats.TotalAmount.Div(decimal.NewFromInt(int64(stats.SuccessRecords)))
	}

	var dateRange *model.DateRange
	if stats.SuccessRecords > 0 {
		dateRange = &model.DateRange{From: stats.FirstDate, To: stats.LastDate}
	}

	return &model.MigrationReport{
		Timestamp:      time.Now(),
		Filename:       filename,
		FileSize:       size,
		TotalRecords:   stats.TotalRecords,
		SuccessRecords: stats.SuccessRecords,
		ErrorRecords:   stats.ErrorRecords,
		ProcessingTime: elapsed,
		UsersAffected:  len(stats.UsersAffected),
		TotalAmount:    stats.TotalAmount,
		AverageAmount:  average,
		LargestAmount:  stats.LargestAmount,
		SmallestAmount: stats.SmallestAmount,
		DateRange:      dateRange,
		Errors:         stats.Errors,
	}
}
