package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	batch "github.com/pism/batchscript/core"
	logger "github.com/pism/batchscript/logger"
)

// Generated text is written here
var stdout io.Writer = os.Stdout

type CatalogFlags struct {
	Help    bool   `short:"h" long:"help" description:"Show this help message"`
	Catalog string `long:"catalog" env:"PISM_BATCH_CATALOG" description:"HCL system catalog replacing the built-in one"`
}

func (c *CatalogFlags) registry() (*batch.Registry, error) {
	return batch.LoadRegistry(c.Catalog)
}

type Options struct {
	Help bool `short:"h" long:"help" description:"Show this help message"`
}

type command struct {
	name  string
	short string
	long  string
	data  func() interface{}
}

// Filled by the init functions of the command files
var commands []command

func addCommand(name, short, long string, data func() interface{}) {
	commands = append(commands, command{name, short, long, data})
}

// newParser builds a parser with fresh option values for every command
func newParser() *flags.Parser {
	var options Options
	parser := flags.NewNamedParser("pism-batch", flags.PassDoubleDash)
	if _, err := parser.AddGroup("Application Options", "", &options); err != nil {
		panic(err)
	}
	for _, c := range commands {
		if _, err := parser.AddCommand(c.name, c.short, c.long, c.data()); err != nil {
			panic(err)
		}
	}
	return parser
}

func createHelpErr() error {
	err := flags.Error{
		Type:    flags.ErrHelp,
		Message: "show help message",
	}
	return &err
}

func printHelp(parser *flags.Parser) {
	// Print help for active command
	parser.Command = parser.Command.Active
	var b bytes.Buffer
	parser.WriteHelp(&b)
	fmt.Println(b.String())
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	parser := newParser()
	var err error
	if _, err = parser.ParseArgs(args); err != nil {
		goto errHandler
	}
	return 0
errHandler:
	switch flagsErr := err.(type) {
	case *flags.Error:
		if flagsErr.Type == flags.ErrHelp ||
			flagsErr.Type == flags.ErrCommandRequired {
			if parser.Command.Active != nil {
				printHelp(parser)
			} else {
				parser.WriteHelp(os.Stdout)
			}
			return 0
		} else if flagsErr.Type == flags.ErrUnknownCommand {
			fmt.Fprintf(os.Stderr, "%v\n\n", flagsErr.Message)
			parser.WriteHelp(os.Stderr)
			return 1
		} else if flagsErr.Type == flags.ErrMarshal {
			fmt.Fprintln(os.Stderr, "Invalid syntax")
		}
		fmt.Fprintln(os.Stderr, flagsErr.Error())
		return 1

	default:
		logger.ErrorPrintf("%v", err)
		fmt.Fprintln(os.Stderr, flagsErr.Error())
		return 1
	}
}
