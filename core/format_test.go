package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		template string
		values   map[string]interface{}
		want     string
	}{
		{"plain", "module list\n", nil, "module list\n"},
		{"named", "mpiexec -n {cores}", map[string]interface{}{"cores": 8}, "mpiexec -n 8"},
		{"repeated", "ncpus={ppn}:mpiprocs={ppn}", map[string]interface{}{"ppn": 24}, "ncpus=24:mpiprocs=24"},
		{"escaped", "awk '{{print $2}}' > ./nodes_$SLURM_JOBID", nil, "awk '{print $2}' > ./nodes_$SLURM_JOBID"},
		{"unused values", "#PBS -q {queue}", map[string]interface{}{"queue": "long", "cores": 1}, "#PBS -q long"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(tt.template, tt.values)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatErrors(t *testing.T) {
	for _, template := range []string{
		"#SBATCH --time={walltime}",
		"{cores",
		"cores}",
		"{a{b}",
	} {
		_, err := Format(template, map[string]interface{}{"cores": 1})
		assert.Error(t, err, template)
	}
}
