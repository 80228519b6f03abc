package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/orsched/core/model"
)

func TestWriteUtilizationChart(t *testing.T) {
	var buf bytes.Buffer
	rooms := []model.RoomUtilization{
		{RoomID: "or-1", RoomName: "OR 1 - Cardiac Suite", UtilizationRate: 50},
		{RoomID: "or-3", RoomName: "OR 3 - Orthopedic Suite", UtilizationRate: 25},
	}
	require.NoError(t, WriteUtilizationChart(&buf, rooms))
	html := buf.String()
	assert.Contains(t, html, "echarts")
	assert.Contains(t, html, "Room Utilization")
	assert.Contains(t, html, "OR 3 - Orthopedic Suite")
}
