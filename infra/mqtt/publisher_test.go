package mqtt

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kilianp07/orsched/core/alerts"
	"github.com/kilianp07/orsched/core/model"
	"github.com/kilianp07/orsched/infra/logger"
)

func TestMockPublisherWithNotifier(t *testing.T) {
	pub := NewMockPublisher()
	pub.FailTopics["orsched/alerts/info"] = true
	n := alerts.NewNotifier(pub, "orsched/alerts/", logger.NopLogger{})

	err := n.Notify([]model.Alert{
		{ID: "a1", Severity: model.SeverityCritical, Title: "Scheduling Conflict"},
		{ID: "a2", Severity: model.SeverityInfo, Title: "Schedule Advisory"},
	})
	require.ErrorContains(t, err, "publish alert a2")

	msgs := pub.Messages()
	require.Len(t, msgs, 1)
	require.Equal(t, "orsched/alerts/critical", msgs[0].Topic)
	require.Contains(t, string(msgs[0].Payload), `"Scheduling Conflict"`)
}
