package main

import (
	"fmt"

	batch "github.com/pism/batchscript/core"
)

type RunHeaderCommand struct {
	Help          bool   `short:"h" long:"help" description:"Show this help message"`
	Config        string `short:"c" long:"config" description:"path to the config file" required:"true"`
	InputDir      string `short:"i" long:"input-dir" description:"directory holding the input data sets" required:"true"`
	OutputDir     string `short:"o" long:"output-dir" description:"output directory" required:"true"`
	SpatialTmpDir string `short:"t" long:"spatial-tmp-dir" description:"temporary directory for spatial files" required:"true"`
}

func (x *RunHeaderCommand) Execute(args []string) error {
	if x.Help {
		return createHelpErr()
	}
	header, err := batch.RunHeader(x.Config, x.InputDir, x.OutputDir, x.SpatialTmpDir)
	if err != nil {
		return fmt.Errorf("run-header: %w", err)
	}
	fmt.Fprint(stdout, header)
	return nil
}

func init() {
	addCommand("run-header",
		"Simulation run preamble",
		"Print the shell preamble that sets up paths and output directories for a run",
		func() interface{} { return &RunHeaderCommand{} })
}
