package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/kestrel-lab/blogsmith/pkg/blogsmith"
)

// ForcedApprover implements the Approver interface for forced (non-interactive)
// approval. It displays a countdown and automatically approves after the countdown,
// used when the --force flag is provided.
type ForcedApprover struct {
	verbose bool
	output  io.Writer
	sleepFn func(time.Duration)
}

// NewForcedApprover creates a new ForcedApprover writing to stderr.
func NewForcedApprover(verbose bool) blogsmith.Approver {
	return &ForcedApprover{verbose: verbose, output: os.Stderr, sleepFn: time.Sleep}
}

// RequestApproval displays a countdown and automatically approves after the countdown.
func (a *ForcedApprover) RequestApproval(ctx context.Context, outputDir string) (bool, error) {
	fmt.Fprintln(a.output)
	fmt.Fprintf(a.output, "WARNING: %s was not created by blogsmith (no %s marker).\n", outputDir, blogsmith.OutputMarkerFile)
	if contents := describeContents(outputDir); contents != "" {
		fmt.Fprintf(a.output, "It holds %s\n", contents)
	}
	fmt.Fprintln(a.output, "Everything in it will be replaced by the generated site.")
	fmt.Fprintln(a.output)

	countdownSeconds := int(blogsmith.DefaultForceApprovalCountdown.Seconds())
	for i := countdownSeconds; i > 0; i-- {
		select {
		case <-ctx.Done():
			fmt.Fprintln(a.output)
			return false, ctx.Err()
		default:
			fmt.Fprintf(a.output, "\rReplacing in: %d seconds... (Press Ctrl+C to cancel)", i)
			a.sleepFn(time.Second)
		}
	}

	if err := ctx.Err(); err != nil {
		fmt.Fprintln(a.output)
		return false, err
	}

	fmt.Fprintf(a.output, "\r✓ Replacing %s...                                        \n", outputDir)
	return true, nil
}

var _ blogsmith.Approver = (*ForcedApprover)(nil)
