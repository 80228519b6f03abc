package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kilianp07/orsched/core/factory"
	coremetrics "github.com/kilianp07/orsched/core/metrics"
)

func TestBuiltinSinksRegistered(t *testing.T) {
	s, err := coremetrics.NewMetricsSink([]factory.ModuleConfig{{Type: "nop"}})
	require.NoError(t, err)
	require.IsType(t, coremetrics.NopSink{}, s)

	s, err = coremetrics.NewMetricsSink([]factory.ModuleConfig{{Type: "nop"}, {Type: "prometheus"}})
	require.NoError(t, err)
	multi, ok := s.(*coremetrics.MultiSink)
	require.True(t, ok)
	require.IsType(t, &PromSink{}, multi.Sinks[1])
}
