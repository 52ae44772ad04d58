package preflight

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"golang.org/x/sys/unix"

	"discauthor/internal/config"
	"discauthor/internal/deps"
)

// DVDCapacityBytes is the usable capacity of a single-layer DVD-R.
const DVDCapacityBytes = 4_700_000_000

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckCreatableDirectory passes when path is a writable directory or when
// its nearest existing ancestor is writable so the directory can be created.
func CheckCreatableDirectory(name, path string) Result {
	if _, err := os.Stat(path); err == nil {
		return CheckDirectoryAccess(name, path)
	}
	ancestor, err := existingAncestor(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	if err := unix.Access(ancestor, unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: cannot create under %s: %v)", path, ancestor, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", path)}
}

// CheckFreeSpace verifies the filesystem holding path has at least minBytes
// available to unprivileged users.
func CheckFreeSpace(name, path string, minBytes uint64) Result {
	target, err := existingAncestor(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	var stat unix.Statfs_t
	if err := unix.Statfs(target, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: statfs: %v)", target, err)}
	}
	available := stat.Bavail * uint64(stat.Bsize) //nolint:gosec
	if available < minBytes {
		return Result{Name: name, Detail: fmt.Sprintf("%s free, need %s", humanize.IBytes(available), humanize.IBytes(minBytes))}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s free", humanize.IBytes(available))}
}

// Requirements lists the external binaries used to author a disc.
func Requirements(cfg *config.Config) []deps.Requirement {
	return []deps.Requirement{
		{
			Name:        "dvdauthor",
			Command:     cfg.DVDAuthor.Binary,
			Description: "Required to author VIDEO_TS from the rendered document",
			VersionArgs: []string{"-h"},
		},
		{
			Name:        "spumux",
			Command:     "spumux",
			Description: "Multiplexes menu button highlights into menu streams",
			Optional:    true,
			VersionArgs: []string{"-h"},
		},
		{
			Name:        "xorriso",
			Command:     "xorriso",
			Description: "Builds ISO images from an authored VIDEO_TS tree",
			Optional:    true,
			VersionArgs: []string{"-version"},
		},
	}
}

// CheckSystemDeps evaluates the authoring binaries for the given config.
func CheckSystemDeps(ctx context.Context, cfg *config.Config) []deps.Status {
	return deps.CheckBinaries(ctx, Requirements(cfg))
}

func existingAncestor(path string) (string, error) {
	current := filepath.Clean(path)
	for {
		info, err := os.Stat(current)
		if err == nil {
			if !info.IsDir() {
				return "", fmt.Errorf("%s is not a directory", current)
			}
			return current, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("no existing ancestor for %s", path)
		}
		current = parent
	}
}
