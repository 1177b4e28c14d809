package main

import (
	"errors"
	"fmt"

	batch "github.com/pism/batchscript/core"
)

type PostHeaderCommand struct {
	Config CatalogFlags `group:"Catalog Options"`
	System string       `short:"s" long:"system" description:"system name" default:"debug"`
}

func (x *PostHeaderCommand) Execute(args []string) error {
	if x.Config.Help {
		return createHelpErr()
	}
	registry, err := x.Config.registry()
	if err != nil {
		return errors.New("post-header: " + err.Error())
	}
	fmt.Fprint(stdout, batch.NewGenerator(registry).PostHeader(x.System))
	return nil
}

func init() {
	addCommand("post-header",
		"Post-processing job header",
		"Print the header for a post-processing job on a system",
		func() interface{} { return &PostHeaderCommand{} })
}
