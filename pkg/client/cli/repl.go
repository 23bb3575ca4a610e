package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = func(a ...any) { fmt.Println(a...) }

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	Search(ctx context.Context, term string) error
	Show(ctx context.Context, arg string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, arg string) error
	Delete(ctx context.Context, arg string) error
	Discover(ctx context.Context, query string) error
}

// runREPL reads a line, parses the first token as the command, and
// dispatches to methods on 'a'. The mutating commands are only offered
// when logged in; reads are always available. The loop exits on scanner
// EOF or when the user types "exit" or "quit".
//
// Errors from command handlers are ignored here; handlers report their own
// errors. This keeps the loop focused on I/O.
func runREPL(ctx context.Context, a execIface, scanner *bufio.Scanner) {
	for {
		if a.isLoggedIn() {
			printlnFn("movies> ")
		} else {
			printlnFn("movies (anonymous)> ")
		}
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		arg := strings.TrimSpace(strings.TrimPrefix(line, cmd))

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, search <genre>, show <n>, add, edit <n>, delete <n>, discover [query], logout, exit")
			} else {
				printlnFn("Available commands: (l)ist, search <genre>, show <n>, discover [query], register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "search":
			_ = a.Search(ctx, arg)

		case "show":
			_ = a.Show(ctx, arg)

		case "discover":
			_ = a.Discover(ctx, arg)

		case "add":
			if !a.isLoggedIn() {
				printlnFn("Log in to add movies")
				continue
			}
			_ = a.Add(ctx)

		case "edit":
			if !a.isLoggedIn() {
				printlnFn("Log in to edit movies")
				continue
			}
			_ = a.Edit(ctx, arg)

		case "delete":
			if !a.isLoggedIn() {
				printlnFn("Log in to delete movies")
				continue
			}
			_ = a.Delete(ctx, arg)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
