package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Provenance records what produced a generated script
type Provenance struct {
	Script  string `json:"script"`
	Command string `json:"command"`
	Version string `json:"version"`
}

// CurrentProvenance describes the running process
func CurrentProvenance() Provenance {
	var script string
	if len(os.Args) > 0 {
		script = realPath(os.Args[0])
	}
	return Provenance{
		Script:  script,
		Command: strings.Join(os.Args, " "),
		Version: Version,
	}
}

// Banner renders the three comment lines appended to generated headers
func (p Provenance) Banner() string {
	return fmt.Sprintf("# Generated by %s\n# Command: %s\n# Version: %s\n",
		p.Script, p.Command, p.Version)
}

func realPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}
