package core

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Version is written into every provenance banner
var Version = "0.1"

const (
	BatchConfigPath     = "/.config/pism-batch/"
	BatchCatalogFile    = "catalog.hcl"
	BatchCatalogEnv     = "PISM_BATCH_CATALOG"
	DebugSystem         = "debug"
	DefaultScriptShell  = "/bin/sh"
	SlurmDirective      = "SBATCH"
	PbsDirective        = "PBS"
	WasteWarningPattern = "# Warning! Running %d tasks on %d %d-processor nodes, wasting %d processors!"
)

// Placeholders understood by header templates
const (
	KeyQueue    = "queue"
	KeyWalltime = "walltime"
	KeyNodes    = "nodes"
	KeyPpn      = "ppn"
	KeyCores    = "cores"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnknownQueue  = errors.New("unknown queue")
	ErrUnknownSystem = errors.New("unknown system")
)

// InvalidInputError reports a core count that cannot be scheduled.
type InvalidInputError struct {
	Cores int
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("number of cores must be positive, got %d", e.Cores)
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// UnknownQueueError names the rejected queue and the queues the system
// does provide so the caller can retry.
type UnknownQueueError struct {
	System string
	Queue  string
	Valid  []string
}

func (e *UnknownQueueError) Error() string {
	return fmt.Sprintf("there is no queue %s on %s, pick one of [%s]",
		e.Queue, e.System, strings.Join(e.Valid, " "))
}

func (e *UnknownQueueError) Is(target error) bool {
	return target == ErrUnknownQueue
}

// QueueTable maps a scheduler partition to its cores per node
type QueueTable map[string]int

// Names returns the queue names in sorted order
func (q QueueTable) Names() []string {
	names := make([]string, 0, len(q))
	for name := range q {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (q QueueTable) Clone() QueueTable {
	clone := make(QueueTable, len(q))
	for name, ppn := range q {
		clone[name] = ppn
	}
	return clone
}

// Scheduler settings for one cluster
/*
system "pleiades" {
	mpido    = "mpiexec -n {cores}"
	submit   = "qsub"
	work_dir = "PBS_O_WORKDIR"
	job_id   = "PBS_JOBID"
	model    = "ivy"
	queues   = { long = 20, normal = 20 }
	header   = <<EOT
#PBS -q {queue}
#PBS -lselect={nodes}:ncpus={ppn}:mpiprocs={ppn}:model=${model}
EOT
}
*/
type SystemProfile struct {
	Name    string     `json:"name"`
	Mpido   string     `json:"mpido"`
	Submit  string     `json:"submit"`
	JobID   string     `json:"job_id"`
	WorkDir string     `json:"work_dir,omitempty"`
	Model   string     `json:"model,omitempty"`
	Queues  QueueTable `json:"queue"`
	Header  string     `json:"header"`
	Footer  string     `json:"footer,omitempty"`
	// Set on the copy returned by Generator.Header
	Topology *Topology `json:"topology,omitempty"`
}

// Clone returns a copy that shares no mutable state with p
func (p *SystemProfile) Clone() *SystemProfile {
	clone := *p
	clone.Queues = p.Queues.Clone()
	if p.Topology != nil {
		topology := *p.Topology
		clone.Topology = &topology
	}
	return &clone
}

// IsDebug reports whether queue lookup is bypassed for this profile.
// Unknown system names resolve to the debug profile and so bypass it too.
func (p *SystemProfile) IsDebug() bool {
	return p.Name == DebugSystem
}

// Scheduler directives found at the top of a generated script
type JobScript struct {
	Shell string `json:"batch_shell"`
	// Args parsed from the directive block
	Args   []string `json:"batch_args"`
	Script []byte   `json:"batch_script"`
}

// ParseJobScript splits a script into its shell, the arguments of the
// leading #<directive> lines and the remaining body.
func ParseJobScript(directive string, r io.Reader) (JobScript, error) {
	var shell string
	var args []string
	var script []byte

	prefix := "#" + directive
	scanner := bufio.NewScanner(r)
	parsed := false
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			first = false
			if strings.HasPrefix(line, "#!") {
				shell = strings.TrimSpace(line[2:])
				continue
			}
		}
		if !parsed && strings.HasPrefix(line, prefix+" ") {
			args = append(args, strings.Fields(line[len(prefix):])...)
			continue
		}
		parsed = true
		script = append(script, scanner.Bytes()...)
		script = append(script, '\n')
	}
	if err := scanner.Err(); err != nil {
		return JobScript{}, fmt.Errorf("core: parse job script: %w", err)
	}
	if len(shell) == 0 {
		shell = DefaultScriptShell
	}
	return JobScript{
		Shell:  shell,
		Args:   args,
		Script: script,
	}, nil
}

func fileExist(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// Build path for catalog file
// Set from flag or environment, then the per-user file
// Empty means the built-in catalog
func getCatalogPath(path string) string {
	if len(path) > 0 {
		return path
	}
	if env := os.Getenv(BatchCatalogEnv); len(env) > 0 {
		return env
	}
	if home := os.Getenv("HOME"); len(home) > 0 {
		if userPath := home + BatchConfigPath + BatchCatalogFile; fileExist(userPath) {
			return userPath
		}
	}
	return ""
}
