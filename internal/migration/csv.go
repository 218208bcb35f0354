package migration

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// Header is the exact header a migration CSV must carry, case-sensitive.
const Header = "id,user_id,amount,datetime"

const (
	numFields   = 4
	colID       = 0
	colUserID   = 1
	colAmount   = 2
	colDatetime = 3
)

var expectedHeader = []string{"id", "user_id", "amount", "datetime"}

// timestampLayouts are tried in order; the first that parses wins. The
// date-only layout defaults the time of day to midnight.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ValidateHeader checks the first CSV row against the required header:
// exact field count, order and spelling.
func ValidateHeader(header []string) error {
	if len(header) != len(expectedHeader) {
		return &HeaderError{Expected: expectedHeader, Got: header}
	}
	for i := range expectedHeader {
		if header[i] != expectedHeader[i] {
			return &HeaderError{Expected: expectedHeader, Got: header}
		}
	}
	return nil
}

// ParseRow converts one CSV data row into a Transaction. line is the
// 1-based position in the file, header included, and is carried into any
// returned RowError. An id of 0 leaves assignment to the store. ParseRow
// has no side effects.
func ParseRow(record []string, line int) (model.Transaction, *RowError) {
	if len(record) != numFields {
		return model.Transaction{}, malformedRow(line, len(record))
	}

	id, err := strconv.Atoi(record[colID])
	if err != nil {
		return model.Transaction{}, invalidField(line, "id", record[colID])
	}

	userID, err := strconv.Atoi(record[colUserID])
	if err != nil {
		return model.Transaction{}, invalidField(line, "user_id", record[colUserID])
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Transaction{}, invalidField(line, "amount", record[colAmount])
	}

	dateTime, ok := parseDateTime(record[colDatetime])
	if !ok {
		return model.Transaction{}, invalidTimestamp(line, record[colDatetime])
	}

	return model.Transaction{
		ID:       id,
		UserID:   userID,
		Amount:   amount,
		DateTime: dateTime,
	}, nil
}

func parseDateTime(value string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
