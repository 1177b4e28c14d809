package core

import (
	"fmt"
	"path/filepath"
)

const runHeaderTemplate = `# stop if a variable is not defined
set -u
# stop on errors
set -e

# path to the config file
config="{config}"
# path to the input directory (input data sets are contained in this directory)
input_dir="{input_dir}"
# output directory
output_dir="{output_dir}"
# temporary directory for spatial files
spatial_tmp_dir="{spatial_tmp_dir}"

# create required output directories
for each in $output_dir $spatial_tmp_dir;
do
  mkdir -p $each
  # set maximum stripe count
  which lfs || lfs setstripe -c -1 $each
done
`

// RunHeader renders the preamble of a simulation run script. Paths are
// made absolute relative to the working directory.
func RunHeader(config, inputDir, outputDir, spatialTmpDir string) (string, error) {
	values := map[string]interface{}{}
	for _, path := range []struct {
		key   string
		value string
	}{
		{"config", config},
		{"input_dir", inputDir},
		{"output_dir", outputDir},
		{"spatial_tmp_dir", spatialTmpDir},
	} {
		abs, err := filepath.Abs(path.value)
		if err != nil {
			return "", fmt.Errorf("run header: %s: %w", path.key, err)
		}
		values[path.key] = abs
	}
	return Format(runHeaderTemplate, values)
}
