package blogsmith

import "context"

// Approver handles user interaction before an existing output directory that
// blogsmith did not create is replaced.
//
// Implementations:
//   - ForcedApprover: Shows countdown and automatically approves
//   - InteractiveApprover: Prompts user to type the directory name for confirmation
//   - DenyingApprover: Refuses without prompting, for non-interactive sessions
type Approver interface {
	// RequestApproval prompts for confirmation before replacing outputDir.
	//
	// Returns:
	//   - bool: true if approved, false if denied
	//   - error: Any error that occurred during the approval process
	RequestApproval(ctx context.Context, outputDir string) (bool, error)
}
