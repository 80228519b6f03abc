// Package events defines the events emitted on the event bus.
//
// Available event types:
//   - AnalysisCompleted: one analysis run over the current schedule
//   - ScheduleChanged: a booking was updated through the API
package events
