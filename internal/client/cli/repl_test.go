package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
	err      error
}

func (f *fakeExec) record(name string) error {
	f.calls = append(f.calls, name)
	return f.err
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(context.Context) error {
	return f.record("register")
}
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) Profile(context.Context) error       { return f.record("profile") }
func (f *fakeExec) UpdateProfile(context.Context) error { return f.record("update-profile") }
func (f *fakeExec) Users(context.Context) error         { return f.record("users") }
func (f *fakeExec) User(_ context.Context, id string) error {
	return f.record("user " + id)
}
func (f *fakeExec) Status(context.Context) error { return f.record("status") }
func (f *fakeExec) Reset(context.Context) error  { return f.record("reset") }

// lines splits captured REPL output into lines.
func lines(b *bytes.Buffer) []string {
	return strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
}

func TestRunREPL_Dispatch(t *testing.T) {
	var buf bytes.Buffer

	input := strings.Join([]string{
		"help",
		"login",
		"help",
		"profile",
		"update-profile",
		"users",
		"user 42",
		"user",
		"",
		"status",
		"foobar",
		"logout",
		"reset",
		"register",
		"exit",
		"status",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, rdr(input), &buf)
	out := lines(&buf)

	assert.Equal(t, []string{
		"login", "profile", "update-profile", "users", "user 42", "status", "logout", "reset", "register",
	}, exec.calls, "commands after exit are not read")

	assert.Contains(t, out, helpLoggedOut)
	assert.Contains(t, out, helpLoggedIn)
	assert.Contains(t, out, "Usage: user <id>")
	assert.Contains(t, out, "Unknown command: foobar")
	assert.Contains(t, out, "Bye!")
}

func TestRunREPL_PrintsHandlerErrorsAndContinues(t *testing.T) {
	var buf bytes.Buffer

	exec := &fakeExec{err: errors.New("api request failed: Unauthorized")}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("profile\nusers"), &buf)
	out := lines(&buf)

	assert.Equal(t, []string{"profile", "users"}, exec.calls, "a final line without newline is still run")
	assert.Contains(t, out, "Error: api request failed: Unauthorized")
}

func TestRunREPL_StopsWhenContextDone(t *testing.T) {
	var buf bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, rdr("login\n"), &buf)

	assert.Empty(t, exec.calls)
	assert.Zero(t, buf.Len())
}

func TestRunREPL_PromptShowsStatus(t *testing.T) {
	var buf bytes.Buffer

	runREPL(context.Background(), &fakeExec{}, func() string { return "(a@example.com) " }, rdr("quit\n"), &buf)

	assert.Equal(t, []string{"gs (a@example.com) > ", "Bye!"}, lines(&buf))
}
