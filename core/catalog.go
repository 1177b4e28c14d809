package core

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/pism/batchscript/logger"
)

//go:embed catalog.hcl
var builtinCatalog []byte

// Post-processing header kinds
const (
	PostDefault = "default"
	PostPbs     = "pbs"
	PostSlurm   = "slurm"
)

type catalogFile struct {
	Systems     []*systemBlock     `hcl:"system,block"`
	PostHeaders []*postHeaderBlock `hcl:"post_header,block"`
}

// Every attribute is kept as an expression so that an unset attribute
// (a null value) can be told apart from an empty one and inherited.
type systemBlock struct {
	Name    string         `hcl:"name,label"`
	Base    hcl.Expression `hcl:"base,optional"`
	Mpido   hcl.Expression `hcl:"mpido,optional"`
	Submit  hcl.Expression `hcl:"submit,optional"`
	JobID   hcl.Expression `hcl:"job_id,optional"`
	WorkDir hcl.Expression `hcl:"work_dir,optional"`
	Model   hcl.Expression `hcl:"model,optional"`
	Queues  hcl.Expression `hcl:"queues,optional"`
	Header  hcl.Expression `hcl:"header,optional"`
	Footer  hcl.Expression `hcl:"footer,optional"`
}

type postHeaderBlock struct {
	Kind     string   `hcl:"kind,label"`
	Systems  []string `hcl:"systems,optional"`
	Template string   `hcl:"template"`
}

// PostHeader is one post-processing header template and the systems
// it is selected for.
type PostHeader struct {
	Kind     string   `json:"kind"`
	Systems  []string `json:"systems,omitempty"`
	Template string   `json:"template"`
}

// builtSystem keeps the header expression next to the evaluated profile
// so that derived systems can evaluate it again with their own model.
type builtSystem struct {
	profile *SystemProfile
	header  hcl.Expression
}

// ParseCatalog decodes an HCL catalog and builds a registry from it.
func ParseCatalog(src []byte, filename string) (*Registry, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("catalog: failed to parse %s: %w", filename, diags)
	}

	var root catalogFile
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("catalog: failed to decode %s: %w", filename, diags)
	}

	reg := &Registry{
		systems: make(map[string]*SystemProfile),
		post:    make(map[string]PostHeader),
	}
	built := make(map[string]*builtSystem)
	for _, block := range root.Systems {
		if _, ok := built[block.Name]; ok {
			return nil, fmt.Errorf("catalog: %s: duplicate system %q", filename, block.Name)
		}
		system, err := buildSystem(block, built)
		if err != nil {
			return nil, fmt.Errorf("catalog: %s: system %q: %w", filename, block.Name, err)
		}
		built[block.Name] = system
		reg.systems[block.Name] = system.profile
		reg.order = append(reg.order, block.Name)
		logger.DebugPrintf("catalog: loaded system %s (%d queues)", block.Name, len(system.profile.Queues))
	}
	if _, ok := reg.systems[DebugSystem]; !ok {
		return nil, fmt.Errorf("catalog: %s: missing %q system", filename, DebugSystem)
	}

	for _, block := range root.PostHeaders {
		switch block.Kind {
		case PostDefault, PostPbs, PostSlurm:
		default:
			return nil, fmt.Errorf("catalog: %s: unknown post_header kind %q", filename, block.Kind)
		}
		if _, ok := reg.post[block.Kind]; ok {
			return nil, fmt.Errorf("catalog: %s: duplicate post_header %q", filename, block.Kind)
		}
		reg.post[block.Kind] = PostHeader{
			Kind:     block.Kind,
			Systems:  append([]string(nil), block.Systems...),
			Template: block.Template,
		}
	}
	if _, ok := reg.post[PostDefault]; !ok {
		return nil, fmt.Errorf("catalog: %s: missing %q post_header", filename, PostDefault)
	}
	return reg, nil
}

// LoadCatalogFile reads and parses a catalog from disk.
func LoadCatalogFile(path string) (*Registry, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return ParseCatalog(src, path)
}

func buildSystem(block *systemBlock, built map[string]*builtSystem) (*builtSystem, error) {
	system := &builtSystem{
		profile: &SystemProfile{Name: block.Name, Queues: QueueTable{}},
	}

	base, ok, err := evalString(block.Base, nil)
	if err != nil {
		return nil, err
	}
	if ok {
		parent, found := built[base]
		if !found {
			return nil, fmt.Errorf("base %q is not defined before it", base)
		}
		system.profile = parent.profile.Clone()
		system.profile.Name = block.Name
		system.header = parent.header
	}

	p := system.profile
	for _, field := range []struct {
		expr hcl.Expression
		dst  *string
	}{
		{block.Mpido, &p.Mpido},
		{block.Submit, &p.Submit},
		{block.JobID, &p.JobID},
		{block.WorkDir, &p.WorkDir},
		{block.Model, &p.Model},
		{block.Footer, &p.Footer},
	} {
		if val, ok, err := evalString(field.expr, nil); err != nil {
			return nil, err
		} else if ok {
			*field.dst = val
		}
	}

	queues, ok, err := evalQueues(block.Queues)
	if err != nil {
		return nil, err
	}
	if ok {
		p.Queues = queues
	}

	if !isNull(block.Header) {
		system.header = block.Header
	}
	if system.header != nil {
		ctx := &hcl.EvalContext{
			Variables: map[string]cty.Value{
				"name":  cty.StringVal(p.Name),
				"model": cty.StringVal(p.Model),
			},
		}
		header, _, err := evalString(system.header, ctx)
		if err != nil {
			return nil, err
		}
		p.Header = header
	}
	return system, nil
}

func isNull(expr hcl.Expression) bool {
	if expr == nil {
		return true
	}
	val, diags := expr.Value(nil)
	return !diags.HasErrors() && val.IsNull()
}

func evalString(expr hcl.Expression, ctx *hcl.EvalContext) (string, bool, error) {
	if expr == nil {
		return "", false, nil
	}
	val, diags := expr.Value(ctx)
	if diags.HasErrors() {
		return "", false, diags
	}
	if val.IsNull() {
		return "", false, nil
	}
	var s string
	if err := gocty.FromCtyValue(val, &s); err != nil {
		return "", false, fmt.Errorf("%s: %w", expr.Range(), err)
	}
	return s, true, nil
}

func evalQueues(expr hcl.Expression) (QueueTable, bool, error) {
	if expr == nil {
		return nil, false, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, false, diags
	}
	if val.IsNull() {
		return nil, false, nil
	}
	val, err := convert.Convert(val, cty.Map(cty.Number))
	if err != nil {
		return nil, false, fmt.Errorf("%s: queues: %w", expr.Range(), err)
	}
	queues := QueueTable{}
	if err := gocty.FromCtyValue(val, &queues); err != nil {
		return nil, false, fmt.Errorf("%s: queues: %w", expr.Range(), err)
	}
	for name, ppn := range queues {
		if ppn <= 0 {
			return nil, false, fmt.Errorf("%s: queue %q: cores per node must be positive, got %d",
				expr.Range(), name, ppn)
		}
	}
	return queues, true, nil
}
