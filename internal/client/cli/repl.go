package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	takeRedirect() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Appearance(ctx context.Context, args []string) error
	Notifications(ctx context.Context, args []string) error
	Profile(ctx context.Context, args []string) error
	ChangePassword(ctx context.Context) error
	Avatar(ctx context.Context, args []string) error
	Export(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
	DemoReset(ctx context.Context) error
	ClearAll(ctx context.Context) error
}

const (
	helpGuest  = "Available commands: login, appearance, notifications, clear-all, exit"
	helpMember = "Available commands: whoami, appearance, notifications, profile, passwd, avatar, export, delete-account, demo-reset, clear-all, logout, exit"
)

// runREPL reads commands from reader until EOF or "exit"/"quit".
//
// Handler errors are reported by the handlers themselves. When a handler
// caused a redirect to the login view (a guarded command without a
// session, or a logout) the login prompt runs before the next command.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("gs %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := splitArgs(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpMember)
			} else {
				printlnFn(helpGuest)
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "appearance":
			_ = a.Appearance(ctx, args)

		case "notifications":
			_ = a.Notifications(ctx, args)

		case "profile":
			_ = a.Profile(ctx, args)

		case "passwd":
			_ = a.ChangePassword(ctx)

		case "avatar":
			_ = a.Avatar(ctx, args)

		case "export":
			_ = a.Export(ctx)

		case "delete-account":
			_ = a.DeleteAccount(ctx)

		case "demo-reset":
			_ = a.DemoReset(ctx)

		case "clear-all":
			_ = a.ClearAll(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if a.takeRedirect() && !a.isLoggedIn() {
			_ = a.Login(ctx)
		}
	}
}
