package notifier

import (
	"context"
	"time"

	"github.com/amishk599/remotefeed/internal/model"
)

// SendTestMessage publishes a sample job announcement to verify the integration works.
func SendTestMessage(ctx context.Context, p model.Publisher, channelID string) error {
	job := model.ClassifiedJob{
		RawJob: model.RawJob{
			Title:          "Test Notification: Junior Go Developer",
			Company:        "remotefeed",
			Description:    "<p>This is a test message. If you can read it, publishing works.</p>",
			URL:            "https://github.com/amishk599/remotefeed",
			Location:       "Remote",
			MinSalary:      3000,
			MaxSalary:      5000,
			Currency:       "USD",
			PublishedAt:    time.Now().Format(time.RFC3339),
			EmploymentType: "full_time",
			Source:         "test",
			Tags:           []string{"Go", "Docker"},
		},
		Level: model.LevelJunior,
	}
	return p.Publish(ctx, Truncate(FormatJobMessage(job), MaxMessageLength), channelID)
}
