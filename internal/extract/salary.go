// Package extract derives display-ready values from a RawJob. Every function
// is total: missing or unparseable input yields a sentinel, never an error.
package extract

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/amishk599/remotefeed/internal/model"
)

// SalaryNotSpecified is shown when a job carries no usable salary information.
const SalaryNotSpecified = "Не указана"

const defaultCurrency = "USD"

// Salary prefers the provider's pre-formatted salary string, then numeric
// bounds, then SalaryNotSpecified. A lone minimum is not shown.
func Salary(job model.RawJob) string {
	raw := strings.TrimSpace(job.Salary)
	if raw != "" && raw != SalaryNotSpecified && !strings.EqualFold(raw, "Not specified") {
		return raw
	}

	currency := strings.ToUpper(strings.TrimSpace(job.Currency))
	if currency == "" {
		currency = defaultCurrency
	}

	minSal, maxSal := job.MinSalary, job.MaxSalary
	switch {
	case minSal > 0 && maxSal > 0:
		return fmt.Sprintf("$%s-$%s %s", humanize.Comma(minSal), humanize.Comma(maxSal), currency)
	case maxSal > 0:
		return fmt.Sprintf("до $%s %s", humanize.Comma(maxSal), currency)
	}
	return SalaryNotSpecified
}
