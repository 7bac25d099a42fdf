package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	s := ""
	if sess := a.gate.Session(); sess != nil {
		s = sess.User.Email + " "
	}
	if m := a.currentMode(); m != "" {
		s = s + string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root restores the session, asks for credentials when there is none and
// runs the REPL until the user exits.
func (a *App) Root(ctx context.Context) {
	a.println("Welcome to gophsession CLI (type 'help' for commands)")

	if _, err := a.gate.Init(ctx); err != nil {
		a.report(ctx, err)
	}
	if a.isLoggedIn() {
		a.println("Session restored for", a.gate.Session().User.Email)
	} else {
		_ = a.Login(ctx)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}
