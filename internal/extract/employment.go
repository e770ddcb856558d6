package extract

import (
	"strings"

	"github.com/amishk599/remotefeed/internal/model"
)

const (
	EmploymentFull        = "⏰ Полная занятость"
	EmploymentPart        = "⏱ Частичная занятость"
	EmploymentContract    = "📝 Контракт"
	EmploymentUnspecified = "⏰ Не указана"
)

// EmploymentType maps a free-text employment type onto a display label.
func EmploymentType(job model.RawJob) string {
	emp := strings.TrimSpace(job.EmploymentType)
	lower := strings.ToLower(emp)

	switch {
	case strings.Contains(lower, "full") || strings.Contains(lower, "полная"):
		return EmploymentFull
	case strings.Contains(lower, "part") || strings.Contains(lower, "частичная"):
		return EmploymentPart
	case strings.Contains(lower, "contract") || strings.Contains(lower, "контракт"):
		return EmploymentContract
	case emp != "":
		return "⏰ " + emp
	}
	return EmploymentUnspecified
}
