// Package publish writes a rendered site into its output directory as a
// single all-or-nothing step.
//
// Files are first written to a staging directory beside the output, in
// parallel. The staging directory then replaces the output with two renames
// (output to backup, staging to output) and the backup is removed. If any
// step fails the staging directory is discarded and the previous output is
// left, or put back, where it was.
//
// Every published directory carries a marker file. A non-empty output
// directory without one was not created by blogsmith and is replaced only
// once the configured Approver agrees.
package publish
