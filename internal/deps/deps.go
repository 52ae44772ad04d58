package deps

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const versionProbeTimeout = 5 * time.Second

// Requirement defines an external dependency discauthor relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	// VersionArgs, when set, are passed to the binary to read its version
	// banner. The exit status is ignored because several authoring tools
	// print their banner and exit non-zero.
	VersionArgs []string
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Path        string
	Version     string
	Detail      string
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(ctx context.Context, requirements []Requirement) []Status {
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
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		path, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		status.Path = path
		if len(req.VersionArgs) > 0 {
			status.Version = probeVersion(ctx, path, req.VersionArgs)
		}
		results = append(results, status)
	}
	return results
}

// MissingRequired returns the required dependencies that are unavailable.
func MissingRequired(statuses []Status) []Status {
	var missing []Status
	for _, s := range statuses {
		if !s.Available && !s.Optional {
			missing = append(missing, s)
		}
	}
	return missing
}

func probeVersion(ctx context.Context, path string, args []string) string {
	probeCtx, cancel := context.WithTimeout(ctx, versionProbeTimeout)
	defer cancel()
	out, _ := exec.CommandContext(probeCtx, path, args...).CombinedOutput() //nolint:gosec
	return parseVersion(string(out))
}

// parseVersion extracts "x.y.z" from the first line mentioning a version,
// falling back to the first non-empty line.
func parseVersion(output string) string {
	var first string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if first == "" {
			first = line
		}
		lower := strings.ToLower(line)
		idx := strings.Index(lower, "version")
		if idx < 0 {
			continue
		}
		fields := strings.Fields(line[idx+len("version"):])
		if len(fields) > 0 {
			return strings.TrimRight(fields[0], ".,;")
		}
	}
	return first
}
