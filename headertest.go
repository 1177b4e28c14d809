package main

import (
	"errors"
	"fmt"

	batch "github.com/pism/batchscript/core"
)

type HeaderTestCommand struct {
	Config   CatalogFlags `group:"Catalog Options"`
	Cores    int          `short:"n" long:"cores" description:"number of cores (MPI tasks)" default:"100"`
	Walltime string       `short:"w" long:"walltime" description:"wall clock limit" default:"1:00:00"`
}

// Print headers of all supported systems and queues
func (x *HeaderTestCommand) Execute(args []string) error {
	if x.Config.Help {
		return createHelpErr()
	}
	registry, err := x.Config.registry()
	if err != nil {
		return errors.New("header-test: " + err.Error())
	}
	generator := batch.NewGenerator(registry)
	generator.Warnings = stdout
	for _, name := range registry.Declared() {
		for _, queue := range registry.Lookup(name).Queues.Names() {
			fmt.Fprintf(stdout, "# system: %s, queue: %s\n", name, queue)
			header, _, err := generator.Header(name, x.Cores, x.Walltime, queue)
			if err != nil {
				return fmt.Errorf("header-test: %w", err)
			}
			fmt.Fprintln(stdout, header)
		}
	}
	return nil
}

func init() {
	addCommand("header-test",
		"Print all headers",
		"Print the headers of all supported systems and queues",
		func() interface{} { return &HeaderTestCommand{} })
}
