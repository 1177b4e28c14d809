package main

import (
	"errors"
	"fmt"
	"strings"

	batch "github.com/pism/batchscript/core"
)

type HeaderCommand struct {
	Config     CatalogFlags `group:"Catalog Options"`
	System     string       `short:"s" long:"system" description:"system name" default:"debug"`
	Cores      int          `short:"n" long:"cores" description:"number of cores (MPI tasks)" required:"true"`
	Walltime   string       `short:"w" long:"walltime" description:"wall clock limit in the scheduler's format" default:"1:00:00"`
	Queue      string       `short:"q" long:"queue" description:"queue (partition) name" default:"debug"`
	Strict     bool         `long:"strict" description:"fail on unknown systems instead of using debug"`
	Mpido      bool         `long:"mpido" description:"print the MPI launch command after the header"`
	Footer     bool         `long:"footer" description:"print the system footer after the header"`
	Directives bool         `long:"directives" description:"print only the scheduler directives, one argument per line"`
}

func (x *HeaderCommand) Execute(args []string) error {
	if x.Config.Help {
		return createHelpErr()
	}
	registry, err := x.Config.registry()
	if err != nil {
		return errors.New("header: " + err.Error())
	}
	generator := batch.NewGenerator(registry)
	generator.Strict = x.Strict
	generator.Warnings = stdout

	header, system, err := generator.Header(x.System, x.Cores, x.Walltime, x.Queue)
	if err != nil {
		return fmt.Errorf("header: %w", err)
	}
	if x.Directives {
		return printDirectives(system, header)
	}
	fmt.Fprint(stdout, header)
	if x.Mpido {
		fmt.Fprintln(stdout, system.Mpido)
	}
	if x.Footer && len(system.Footer) > 0 {
		fmt.Fprint(stdout, system.Footer)
	}
	return nil
}

func printDirectives(system *batch.SystemProfile, header string) error {
	directive := batch.PbsDirective
	if system.Submit == "sbatch" {
		directive = batch.SlurmDirective
	}
	script, err := batch.ParseJobScript(directive, strings.NewReader(header))
	if err != nil {
		return errors.New("header: " + err.Error())
	}
	for _, arg := range script.Args {
		fmt.Fprintln(stdout, arg)
	}
	return nil
}

func init() {
	addCommand("header",
		"Batch job header",
		"Print the batch header for running a number of cores on a system and queue",
		func() interface{} { return &HeaderCommand{} })
}
