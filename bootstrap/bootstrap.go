// Package bootstrap prepares the simulator build once the configuration
// files are in place.
package bootstrap

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
)

// CommandRunner runs an external program in a directory.
type CommandRunner interface {
	Run(dir, name string, args []string) error
}

// ExecRunner runs commands as child processes.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// execCommand is wrapped for testability.
var execCommand = exec.Command

// Run starts the command and waits for it.
func (r ExecRunner) Run(dir, name string, args []string) error {
	cmd := execCommand(name, args...)
	cmd.Dir = dir
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	return cmd.Run()
}

// DefaultBuildType is the CMake build type used when none is given.
const DefaultBuildType = "Debug"

// BuildDir returns the build directory under the simulator root.
func BuildDir(root string) string {
	return filepath.Join(root, "build")
}

// CMakeArgs returns the arguments of the configure step.
func CMakeArgs(designs []string, buildType string) []string {
	if buildType == "" {
		buildType = DefaultBuildType
	}
	return []string{
		"-DCMAKE_BUILD_TYPE=" + buildType,
		"-DDESIGN_NAMES=" + strings.Join(designs, ";"),
		"..",
	}
}

// Prepare recreates an empty build directory and runs cmake in it. A failing
// cmake run is logged and does not fail the configuration.
func Prepare(
	root string,
	designs []string,
	buildType string,
	runner CommandRunner,
	log logr.Logger,
) error {
	dir := BuildDir(root)

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("removing %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	args := CMakeArgs(designs, buildType)
	log.Info("running cmake", "dir", dir, "args", strings.Join(args, " "))

	if err := runner.Run(dir, "cmake", args); err != nil {
		log.Error(err, "cmake failed", "dir", dir)
		return nil
	}

	log.Info("build directory prepared", "dir", dir)
	return nil
}
