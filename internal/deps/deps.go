// Package deps reports the availability of the external executables
// bookbind can be configured to use.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"bookbind/internal/config"
)

// Requirement defines an external dependency bookbind relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements derives the dependency list from configuration. The zip and
// unzip binaries are mandatory only when the external facility is enabled;
// the validator is always optional and used by external collaborators.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "zip",
			Command:     cfg.ZipBinary(),
			Description: "archive compression (external facility)",
			Optional:    !cfg.Tools.UseExternalZip,
		},
		{
			Name:        "unzip",
			Command:     cfg.UnzipBinary(),
			Description: "archive decompression (external facility)",
			Optional:    !cfg.Tools.UseExternalZip,
		},
		{
			Name:        "validator",
			Command:     cfg.Tools.Validator,
			Description: "EPUB validation (epubcheck or compatible)",
			Optional:    true,
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}
