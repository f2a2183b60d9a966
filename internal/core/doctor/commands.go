package doctor

import (
	"context"
	"os/exec"
	"strings"

	"github.com/pentaxis93/spandaworks/pkg/executil"
	"github.com/pentaxis93/spandaworks/pkg/workpool"
)

// lookPathFunc is the function used to find executables on PATH.
// Package-level variable to allow test overrides.
var lookPathFunc = exec.LookPath

// Tool is an external program the doctor looks for.
type Tool struct {
	Name     string
	Required bool
}

// CommandCheck verifies that external tools are installed and reports their
// versions. Missing required tools fail; missing optional tools warn.
type CommandCheck struct {
	tools []Tool
	exec  executil.Executor
	pool  *workpool.Pool
}

// NewCommandCheck creates a new command check. Version probes run on pool.
func NewCommandCheck(tools []Tool, exec executil.Executor, pool *workpool.Pool) *CommandCheck {
	return &CommandCheck{tools: tools, exec: exec, pool: pool}
}

// ToolsFrom builds the tool list from required and optional names.
func ToolsFrom(required, optional []string) []Tool {
	tools := make([]Tool, 0, len(required)+len(optional))
	for _, name := range required {
		tools = append(tools, Tool{Name: name, Required: true})
	}
	for _, name := range optional {
		tools = append(tools, Tool{Name: name})
	}
	return tools
}

func (c *CommandCheck) Name() string {
	return "Commands"
}

func (c *CommandCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}
	if len(c.tools) == 0 {
		result.Items = append(result.Items, CheckItem{
			Label:  "tools",
			Status: StatusPass,
			Detail: "none configured",
		})
		return result
	}

	items := make([]CheckItem, len(c.tools))
	err := c.pool.Each(ctx, len(c.tools), func(i int) {
		items[i] = c.probe(ctx, c.tools[i])
	})
	if err != nil {
		for i := range items {
			if items[i].Label == "" {
				items[i] = CheckItem{Label: c.tools[i].Name, Status: StatusWarn, Detail: "not checked: " + err.Error()}
			}
		}
	}

	result.Items = items
	return result
}

func (c *CommandCheck) probe(ctx context.Context, tool Tool) CheckItem {
	path, err := lookPathFunc(tool.Name)
	if err != nil {
		status := StatusWarn
		if tool.Required {
			status = StatusFail
		}
		return CheckItem{
			Label:  tool.Name,
			Status: status,
			Detail: "not found on PATH",
		}
	}

	detail := path
	if out, err := c.exec.Run(ctx, path, "--version"); err == nil {
		if v := firstLine(string(out)); v != "" {
			detail = v
		}
	}

	return CheckItem{
		Label:  tool.Name,
		Status: StatusPass,
		Detail: detail,
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(line)
}
