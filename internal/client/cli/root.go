package cli

import (
	"bufio"
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userName)
}

// Root runs the interactive REPL on the App's input until the user exits.
func (a *App) Root(ctx context.Context) {
	printlnFn("zkpauth prover (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}
