package alerts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kilianp07/orsched/core/events"
	"github.com/kilianp07/orsched/core/logger"
	"github.com/kilianp07/orsched/core/model"
)

// Publisher delivers a payload on a topic.
type Publisher interface {
	Publish(topic string, payload []byte) error
}

// Notifier forwards newly raised alerts to a Publisher, one topic per
// severity under the configured prefix.
type Notifier struct {
	pub    Publisher
	prefix string
	log    logger.Logger
}

// NewNotifier returns a Notifier publishing under prefix.
func NewNotifier(pub Publisher, prefix string, log logger.Logger) *Notifier {
	return &Notifier{pub: pub, prefix: strings.TrimSuffix(prefix, "/"), log: log}
}

// Topic returns the topic used for alerts of severity s.
func (n *Notifier) Topic(s model.Severity) string { return n.prefix + "/" + string(s) }

// Notify publishes every alert and returns the joined errors.
func (n *Notifier) Notify(alerts []model.Alert) error {
	var errs []error
	for _, a := range alerts {
		b, err := json.Marshal(a)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := n.pub.Publish(n.Topic(a.Severity), b); err != nil {
			errs = append(errs, fmt.Errorf("publish alert %s: %w", a.ID, err))
		}
	}
	return errors.Join(errs...)
}

// Run publishes the alerts of each analysis event until ctx is done or the
// channel is closed.
func (n *Notifier) Run(ctx context.Context, sub <-chan events.AnalysisCompleted) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub:
			if !ok {
				return
			}
			if len(ev.NewAlerts) == 0 {
				continue
			}
			if err := n.Notify(ev.NewAlerts); err != nil {
				n.log.Errorf("alert notification for run %s: %v", ev.RunID, err)
				continue
			}
			n.log.Debugw("alerts published", map[string]any{"run_id": ev.RunID, "count": len(ev.NewAlerts)})
		}
	}
}
