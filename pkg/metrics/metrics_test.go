package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	require.NotNil(t, r)

	assert.NotNil(t, r.GraphNodes)
	assert.NotNil(t, r.CommunityRunsTotal)
	assert.NotNil(t, r.CommunityLevelDurations)
	assert.NotNil(t, r.AlgorithmDuration)
	assert.NotNil(t, r.GetPrometheusRegistry())
}

func TestDefaultRegistry(t *testing.T) {
	assert.Same(t, DefaultRegistry(), DefaultRegistry())
}

func TestRecordGraph(t *testing.T) {
	r := NewRegistry()
	r.RecordGraph(6, 6, 6, 5*time.Millisecond)

	assert.Equal(t, 6.0, testutil.ToFloat64(r.GraphNodes))
	assert.Equal(t, 6.0, testutil.ToFloat64(r.GraphEdges))
	assert.Equal(t, 6.0, testutil.ToFloat64(r.GraphTotalWeight))
	assert.Equal(t, 1, testutil.CollectAndCount(r.GraphBuildDuration))
}

func TestRecordCommunityRun(t *testing.T) {
	r := NewRegistry()
	r.RecordCommunityRun(2, 4, 2, 3, 0.5, 10*time.Millisecond)
	r.RecordCommunityRun(1, 3, 1, 6, 0.0, time.Millisecond)
	r.RecordCommunityFailure()

	assert.Equal(t, 2.0, testutil.ToFloat64(r.CommunityRunsTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.CommunityRunsTotal.WithLabelValues("error")))
	assert.Equal(t, 7.0, testutil.ToFloat64(r.CommunityMovesTotal))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.CommunityModularity), "gauge holds the latest run")
	assert.Equal(t, 6.0, testutil.ToFloat64(r.CommunityLargestSize))

	var m dto.Metric
	require.NoError(t, r.CommunityPasses.Write(&m))
	assert.Equal(t, uint64(2), m.GetHistogram().GetSampleCount())
	assert.Equal(t, 3.0, m.GetHistogram().GetSampleSum())
}

func TestRecordLevelAndAlgorithm(t *testing.T) {
	r := NewRegistry()
	r.RecordLevel(0, time.Millisecond)
	r.RecordLevel(1, time.Millisecond)
	r.RecordAlgorithm("betweenness", 20*time.Millisecond)

	assert.Equal(t, 2, testutil.CollectAndCount(r.CommunityLevelDurations))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.AlgorithmRunsTotal.WithLabelValues("betweenness")))
}

func TestWriteTextfile(t *testing.T) {
	r := NewRegistry()
	r.RecordCommunityRun(2, 4, 2, 3, 0.5, 10*time.Millisecond)

	path := filepath.Join(t.TempDir(), "cluso.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "cluso_community_modularity 0.5"), string(data))
}

func TestWriteTextfile_BadDirectory(t *testing.T) {
	r := NewRegistry()
	err := r.WriteTextfile(filepath.Join(t.TempDir(), "missing", "cluso.prom"))
	assert.Error(t, err)
}
