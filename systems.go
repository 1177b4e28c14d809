package main

import (
	"errors"
	"strconv"

	batch "github.com/pism/batchscript/core"
)

type SystemsCommand struct {
	Config CatalogFlags `group:"Catalog Options"`
	System string       `short:"s" long:"system" description:"only show this system"`
}

func systemTable(registry *batch.Registry, names []string) [][]string {
	table := [][]string{
		{"SYSTEM", "SUBMIT", "JOBID", "WORKDIR", "QUEUE", "PPN"},
	}
	for _, name := range names {
		system := registry.Lookup(name)
		workDir := system.WorkDir
		if len(workDir) == 0 {
			workDir = "-"
		}
		queues := system.Queues.Names()
		if len(queues) == 0 {
			table = append(table, []string{name, system.Submit, system.JobID, workDir, "*", "cores"})
			continue
		}
		for _, queue := range queues {
			table = append(table, []string{
				name,
				system.Submit,
				system.JobID,
				workDir,
				queue,
				strconv.Itoa(system.Queues[queue])})
		}
	}
	return table
}

func (x *SystemsCommand) Execute(args []string) error {
	if x.Config.Help {
		return createHelpErr()
	}
	registry, err := x.Config.registry()
	if err != nil {
		return errors.New("systems: " + err.Error())
	}
	names := registry.Declared()
	if len(x.System) > 0 {
		if _, err := registry.LookupStrict(x.System); err != nil {
			return errors.New("systems: " + err.Error())
		}
		names = []string{x.System}
	}
	return batch.PrintTable(stdout, systemTable(registry, names))
}

func init() {
	addCommand("systems",
		"List systems",
		"List the supported systems with their queues and cores per node",
		func() interface{} { return &SystemsCommand{} })
}
