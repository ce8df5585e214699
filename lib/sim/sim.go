/*package sim invokes the reservoir simulator on a deck. The simulator is an
external program: a locally installed flow binary when one can be found, or
the containerised release otherwise. Run streams the simulator's own log
output and reports its exit status, it does not interpret the results. The
result files land in the chosen output directory and are read back with
lib/sumio and lib/table.
*/
package sim

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
)

// DefaultImage is the container image used when no local simulator binary
// is available.
const DefaultImage = "openporousmedia/opmreleases:latest"

// Options configures how the simulator is invoked. The zero value prefers a
// flow binary on PATH and falls back to the default container image.
type Options struct {
	// Flow is the path of a local simulator binary. Empty means "look for
	// flow on PATH".
	Flow string
	// Docker forces the containerised simulator even when a local binary
	// exists.
	Docker bool
	// Image is the container image to run. Empty means DefaultImage.
	Image string
	// Stdout and Stderr receive the simulator's log output. Nil writers
	// fall back to the process's own streams.
	Stdout, Stderr io.Writer
}

// Run executes the simulator on the deck at deckPath and writes the result
// files into outDir, creating the directory if needed. The simulator's
// output streams through as it runs. A non-zero exit status is returned as
// an error wrapping the underlying *exec.ExitError.
func Run(ctx context.Context, deckPath, outDir string, opts Options) error {
	if _, err := os.Stat(deckPath); err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	cmd, err := command(ctx, deckPath, outDir, opts)
	if err != nil {
		return err
	}
	cmd.Stdout = opts.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = opts.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("the simulator run on %s failed: %w",
			filepath.Base(deckPath), err)
	}
	return nil
}

// command builds the simulator invocation without starting it. Both paths
// are made absolute first: the container mounts need them, and a local run
// should not depend on the working directory either.
func command(ctx context.Context, deckPath, outDir string,
	opts Options) (*exec.Cmd, error) {
	deckPath, err := filepath.Abs(deckPath)
	if err != nil {
		return nil, err
	}
	outDir, err = filepath.Abs(outDir)
	if err != nil {
		return nil, err
	}

	if !opts.Docker {
		bin := opts.Flow
		if bin == "" {
			bin, _ = exec.LookPath("flow")
		}
		if bin != "" {
			return exec.CommandContext(ctx, bin, deckPath,
				"--output-dir="+outDir), nil
		}
	}
	if opts.Flow != "" {
		return nil, fmt.Errorf("both a local simulator binary (%s) and "+
			"the containerised simulator were requested: drop one of the "+
			"two", opts.Flow)
	}

	image := opts.Image
	if image == "" {
		image = DefaultImage
	}
	return exec.CommandContext(ctx, "docker",
		dockerArgs(deckPath, outDir, image)...), nil
}

// dockerArgs lists the arguments of the containerised run: the deck's
// directory is mounted read-only at /deck, the output directory writable at
// /run, and the container is discarded when the simulator exits.
func dockerArgs(deckPath, outDir, image string) []string {
	return []string{
		"run", "--platform", "linux/amd64", "--rm",
		"-v", filepath.Dir(deckPath) + ":/deck:ro",
		"-v", outDir + ":/run",
		image,
		"/usr/bin/flow", "/deck/" + filepath.Base(deckPath),
		"--output-dir=/run",
	}
}
