package report

import (
	"fmt"
	"strings"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

const bodyTimeLayout = "2006-01-02 15:04:05"

// Body renders a migration report as the plain-text document delivered
// over the email channel.
func Body(rep *model.MigrationReport) string {
	var b strings.Builder

	b.WriteString("=== MIGRATION REPORT ===\n\n")
	fmt.Fprintf(&b, "File: %s (%d bytes)\n", rep.Filename, rep.FileSize)
	fmt.Fprintf(&b, "Timestamp: %s\n", rep.Timestamp.Format(bodyTimeLayout))
	fmt.Fprintf(&b, "Processing time: %s\n\n", rep.ProcessingTime)

	b.WriteString("=== STATISTICS ===\n")
	fmt.Fprintf(&b, "Total records: %d\n", rep.TotalRecords)
	fmt.Fprintf(&b, "Success records: %d\n", rep.SuccessRecords)
	fmt.Fprintf(&b, "Error records: %d\n", rep.ErrorRecords)
	if rep.TotalRecords > 0 {
		rate := float64(rep.SuccessRecords) / float64(rep.TotalRecords) * 100
		fmt.Fprintf(&b, "Success rate: %.2f%%\n", rate)
	}
	b.WriteString("\n")

	b.WriteString("=== DATA ANALYSIS ===\n")
	fmt.Fprintf(&b, "Users affected: %d\n", rep.UsersAffected)
	fmt.Fprintf(&b, "Total amount: %s\n", rep.TotalAmount.StringFixed(2))
	fmt.Fprintf(&b, "Average amount: %s\n", rep.AverageAmount.StringFixed(2))
	fmt.Fprintf(&b, "Largest amount: %s\n", rep.LargestAmount.StringFixed(2))
	fmt.Fprintf(&b, "Smallest amount: %s\n", rep.SmallestAmount.StringFixed(2))

	if rep.DateRange != nil {
		fmt.Fprintf(&b, "Date range: %s to %s\n",
			rep.DateRange.From.Format("2006-01-02"),
			rep.DateRange.To.Format("2006-01-02"))
	}
	b.WriteString("\n")

	if len(rep.Errors) > 0 {
		b.WriteString("=== ERRORS ===\n")
		for i, e := range rep.Errors {
			fmt.Fprintf(&b, "%d. %s\n", i+1, e)
		}
		b.WriteString("\n")
	}

	b.WriteString("=== END REPORT ===")
	return b.String()
}
