package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v2"

	"github.com/xiaogaogaoxiao/cf-ra-spatial-separability/pkg/model"
	"github.com/xiaogaogaoxiao/cf-ra-spatial-separability/pkg/simulator"
	"github.com/xiaogaogaoxiao/cf-ra-spatial-separability/pkg/statistics"
)

func TestWriteArtifactStampsRunID(t *testing.T) {
	dir := t.TempDir()
	result := simulator.Result{
		RunID: "8d56ee7a-2f4c-4f4e-9e6c-0d7d1c8a0b42",
		NMSE: []statistics.NMSE{
			{CollisionSize: 1, P25: 0.1, Median: 0.2, P75: 0.3},
			{CollisionSize: 2, P25: 0.4, Median: 0.5, P75: 0.6},
		},
	}

	err := writeArtifact(dir, model.EstClosedForm, result)
	assert.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "nmse_cellfree_est1.yaml"))
	assert.NoError(t, err)

	var a artifact
	assert.NoError(t, yaml.Unmarshal(data, &a))
	assert.Equal(t, result.RunID, a.RunID)
	assert.Equal(t, model.EstClosedForm, a.Estimator)
	assert.Equal(t, result.NMSE, a.NMSE)
}
