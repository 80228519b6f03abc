package analyzer

import (
	"fmt"

	"github.com/kilianp07/orsched/core/model"
)

// EvaluateScheduleBalance warns when emergency and routine bookings share the
// schedule. Urgent bookings are ignored.
func EvaluateScheduleBalance(surgeries []model.Surgery) (Advisory, bool) {
	var emergency, routine int
	for _, s := range surgeries {
		switch s.Priority {
		case model.PriorityEmergency:
			emergency++
		case model.PriorityRoutine:
			routine++
		}
	}
	if emergency == 0 || routine == 0 {
		return Advisory{}, false
	}
	return Advisory{
		Message: fmt.Sprintf("%d emergency surgeries may delay routine procedures", emergency),
		Action:  "Consider rescheduling non-urgent routine surgeries to accommodate emergencies",
	}, true
}
