package model

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurgeryValidate(t *testing.T) {
	start := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
	s := Surgery{ID: "s1", ScheduledStart: start, ScheduledEnd: start.Add(2 * time.Hour), Status: StatusScheduled, Priority: PriorityRoutine}
	require.NoError(t, s.Validate())
	assert.Equal(t, 120.0, s.ScheduledMinutes())

	s.ScheduledEnd = start
	err := s.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidWindow))

	s.ScheduledEnd = start.Add(time.Hour)
	s.Status = "paused"
	assert.Error(t, s.Validate())
}

func TestSurgeryValidateMissingID(t *testing.T) {
	start := time.Now()
	s := Surgery{ScheduledStart: start, ScheduledEnd: start.Add(time.Minute)}
	assert.Error(t, s.Validate())
}

func TestParseEnums(t *testing.T) {
	st, err := ParseSurgeryStatus("in-progress")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, st)
	_, err = ParseSurgeryStatus("done")
	assert.Error(t, err)

	p, err := ParsePriority("emergency")
	require.NoError(t, err)
	assert.Equal(t, PriorityEmergency, p)
	_, err = ParsePriority("low")
	assert.Error(t, err)

	rs, err := ParseRoomStatus("sterilization")
	require.NoError(t, err)
	assert.Equal(t, RoomSterilization, rs)
	_, err = ParseRoomStatus("closed")
	assert.Error(t, err)
}

func TestSurgeonAverageDuration(t *testing.T) {
	s := Surgeon{ID: "surgeon-1", AverageDurations: map[string]float64{"Angioplasty": 90}}
	v, ok := s.AverageDuration("Angioplasty")
	assert.True(t, ok)
	assert.Equal(t, 90.0, v)
	_, ok = s.AverageDuration("Craniotomy")
	assert.False(t, ok)
	_, ok = Surgeon{}.AverageDuration("Angioplasty")
	assert.False(t, ok)
}
