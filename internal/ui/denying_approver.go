package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/kestrel-lab/blogsmith/pkg/blogsmith"
)

// DenyingApprover refuses every request. It is used when no terminal is
// attached and --force was not given.
type DenyingApprover struct {
	output io.Writer
}

// NewDenyingApprover creates a DenyingApprover that explains itself on stderr.
func NewDenyingApprover() blogsmith.Approver {
	return &DenyingApprover{output: os.Stderr}
}

// RequestApproval always returns false.
func (a *DenyingApprover) RequestApproval(ctx context.Context, outputDir string) (bool, error) {
	fmt.Fprintf(a.output, "%s exists and was not created by blogsmith. Re-run with --force to replace it.\n", outputDir)
	return false, nil
}

var _ blogsmith.Approver = (*DenyingApprover)(nil)
