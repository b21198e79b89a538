// Package retry repeats operations that fail for transient reasons, waiting
// an exponentially growing delay between attempts.
//
// The publisher uses it for the renames that swap a staged site into place:
// on some platforms a directory that a file indexer, editor or preview
// server briefly holds open cannot be renamed, and the condition clears on
// its own within a second or two.
//
//	executor := retry.NewExecutor(retry.NewFilesystemErrorClassifier(), retry.NewExponentialBackoff(4))
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return os.Rename(staging, output)
//	})
//
// Executor instances are safe for concurrent use. WithOnRetry returns a copy.
package retry
