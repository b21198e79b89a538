package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/kestrel-lab/blogsmith/internal/cli"
	"github.com/kestrel-lab/blogsmith/pkg/blogsmith"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(blogsmith.ExitPanic)
		}
	}()

	if os.Getenv("BLOGSMITH_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(blogsmith.ExitCodeForError(err))
	}
}
