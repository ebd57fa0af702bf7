package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. App implements it.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error
	UpdateProfile(ctx context.Context) error
	Users(ctx context.Context) error
	User(ctx context.Context, id string) error
	Status(ctx context.Context) error
	Reset(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, status, reset, exit"
	helpLoggedIn  = "Available commands: profile, update-profile, users, user <id>, status, logout, reset, exit"
)

// runREPL reads commands from reader until EOF, "exit" or "quit", or until
// ctx is done, and writes prompts, help and errors to out. Handler errors are
// printed and the loop continues. Command handlers prompt through the same
// reader, so no input is buffered twice.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(out, "gs %s> \n", statusFn())

		line, rerr := reader.ReadString('\n')
		if rerr != nil && !(errors.Is(rerr, io.EOF) && line != "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(out, helpLoggedIn)
			} else {
				fmt.Fprintln(out, helpLoggedOut)
			}

		case "register":
			err = a.Register(ctx)

		case "login":
			err = a.Login(ctx)

		case "logout":
			err = a.Logout(ctx)

		case "profile":
			err = a.Profile(ctx)

		case "update-profile":
			err = a.UpdateProfile(ctx)

		case "users":
			err = a.Users(ctx)

		case "user":
			if len(args) == 0 {
				fmt.Fprintln(out, "Usage: user <id>")
				continue
			}
			err = a.User(ctx, args[0])

		case "status":
			err = a.Status(ctx)

		case "reset":
			err = a.Reset(ctx)

		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return

		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}

		if err != nil {
			fmt.Fprintln(out, "Error:", err.Error())
		}
	}
}
