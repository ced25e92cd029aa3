package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/zkpauth/internal/cryptox"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) credentials(user string) (string, []byte, error) {
	if user == "" {
		var err error
		user, err = getSimpleText(a.reader, "User id", a.out)
		if err != nil {
			return "", nil, err
		}
	}
	if user == "" {
		return "", nil, fmt.Errorf("user id required")
	}

	password, err := getPassword(a.out, user)
	if err != nil {
		return "", nil, err
	}
	return user, password, nil
}

// Register prompts for the missing user id and the password, then registers
// the user's commitments. On success it prints "Success!". The password is
// wiped before returning.
func (a *App) Register(ctx context.Context, user string) error {
	user, password, err := a.credentials(user)
	if err != nil {
		return err
	}
	defer cryptox.Wipe(password)

	if err := a.authService.Register(ctx, user, password); err != nil {
		a.logger.Warn(ctx, "register failed", "user", user, "error", err)
		return err
	}

	fmt.Fprintln(a.out, "Success!")
	return nil
}

// Login prompts for the missing user id and the password and runs one
// authentication attempt. On success it prints SessionID=<id> and remembers
// the session for the REPL prompt.
func (a *App) Login(ctx context.Context, user string) error {
	user, password, err := a.credentials(user)
	if err != nil {
		return err
	}
	defer cryptox.Wipe(password)

	sessionID, err := a.authService.Login(ctx, user, password)
	if err != nil {
		a.logger.Warn(ctx, "login failed", "user", user, "error", err)
		return err
	}

	a.userName = user
	a.sessionID = sessionID
	fmt.Fprintf(a.out, "SessionID=%s\n", sessionID)
	return nil
}

// Logout forgets the session locally. The server keeps no logout state.
func (a *App) Logout(ctx context.Context) error {
	a.userName = ""
	a.sessionID = ""
	return nil
}
