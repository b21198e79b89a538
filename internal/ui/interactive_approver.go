package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kestrel-lab/blogsmith/pkg/blogsmith"
)

// InteractiveApprover implements the Approver interface for console-based
// interactive confirmation. It prompts the user to type the name of the
// output directory before it is replaced.
type InteractiveApprover struct {
	verbose bool
	input   io.Reader
	output  io.Writer
}

// NewInteractiveApprover creates a new InteractiveApprover reading stdin.
func NewInteractiveApprover(verbose bool) blogsmith.Approver {
	return &InteractiveApprover{verbose: verbose, input: os.Stdin, output: os.Stderr}
}

// RequestApproval lists what the output directory holds and asks for its
// name. A final line without a newline still counts, so piped answers work.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, outputDir string) (bool, error) {
	name := confirmationName(outputDir)

	fmt.Fprintf(a.output, "\n⚠️  %s exists and has no %s marker\n", outputDir, blogsmith.OutputMarkerFile)
	if contents := describeContents(outputDir); contents != "" {
		fmt.Fprintf(a.output, "   It holds %s\n", contents)
	}
	fmt.Fprintln(a.output, "Publishing deletes all of it and writes the generated site in its place.")
	fmt.Fprintf(a.output, "\nType '%s' to replace it: ", name)

	answers := make(chan string, 1)
	failures := make(chan error, 1)

	go func() {
		line, err := bufio.NewReader(a.input).ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			failures <- err
			return
		}
		answers <- strings.TrimSpace(line)
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(a.output)
		return false, ctx.Err()
	case err := <-failures:
		return false, fmt.Errorf("read confirmation for %s: %w", outputDir, err)
	case answer := <-answers:
		if answer == name {
			fmt.Fprintf(a.output, "✓ Replacing %s...\n", outputDir)
			return true, nil
		}
		if answer == "" {
			fmt.Fprintln(a.output, "✗ No name entered. Nothing was changed.")
			return false, nil
		}
		fmt.Fprintf(a.output, "✗ '%s' is not '%s'. Nothing was changed.\n", answer, name)
		return false, nil
	}
}

var _ blogsmith.Approver = (*InteractiveApprover)(nil)
