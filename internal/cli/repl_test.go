package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/parsepush/internal/models"
)

type fakeExec struct {
	calls  []string
	addErr error
}

func (f *fakeExec) record(name string, args ...int) error {
	call := name
	for _, a := range args {
		call += fmt.Sprintf(" %d", a)
	}
	f.calls = append(f.calls, call)
	return nil
}

func (f *fakeExec) List(context.Context) error {
	return f.record("list")
}

func (f *fakeExec) Add(context.Context) error {
	_ = f.record("add")
	return f.addErr
}

func (f *fakeExec) Edit(_ context.Context, n int) error {
	return f.record("edit", n)
}

func (f *fakeExec) Remove(_ context.Context, ns []int) error {
	return f.record("rm", ns...)
}

func (f *fakeExec) Move(_ context.Context, from, to int) error {
	return f.record("mv", from, to)
}

func (f *fakeExec) Status(_ context.Context, n int) error {
	return f.record("status", n)
}

func (f *fakeExec) Show(_ context.Context, k int) error {
	return f.record("show", k)
}

func (f *fakeExec) Templates(context.Context) error {
	return f.record("templates")
}

func (f *fakeExec) AddTemplate(context.Context) error {
	return f.record("addtemplate")
}

func (f *fakeExec) RemoveTemplate(_ context.Context, n int) error {
	return f.record("rmtemplate", n)
}

func runLines(t *testing.T, exec execIface, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	runREPL(context.Background(), exec, reader, &out)
	return out.String()
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	exec := &fakeExec{}
	out := runLines(t, exec,
		"help",
		"ls",
		"list",
		"",
		"add",
		"edit 2",
		"rm 1 3",
		"mv 1 2",
		"status 1",
		"show 4",
		"templates",
		"addtemplate",
		"rmtemplate 2",
		"exit",
		"ls",
	)

	want := []string{
		"list", "list", "add", "edit 2", "rm 1 3", "mv 1 2",
		"status 1", "show 4", "templates", "addtemplate", "rmtemplate 2",
	}
	assert.Equal(t, want, exec.calls)
	assert.Contains(t, out, "Available commands:")
	assert.Contains(t, out, "Bye!")
}

func TestRunREPL_UsageErrors(t *testing.T) {
	exec := &fakeExec{}
	out := runLines(t, exec,
		"edit",
		"edit x",
		"rm",
		"rm 0",
		"mv 1",
		"status 1 2",
		"show -1",
		"rmtemplate",
		"frobnicate",
	)

	assert.Empty(t, exec.calls)
	for _, usage := range []string{
		"Usage: edit <n>",
		"Usage: rm <n>...",
		"Usage: mv <from> <to>",
		"Usage: status <n>",
		"Usage: show <k>",
		"Usage: rmtemplate <n>",
		"Unknown command: frobnicate",
	} {
		assert.Contains(t, out, usage)
	}
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	exec := &fakeExec{}
	out := runLines(t, exec, "ls")

	assert.Equal(t, []string{"list"}, exec.calls)
	assert.NotContains(t, out, "Bye!")
}

func TestRunREPL_ReportsErrors(t *testing.T) {
	t.Run("validation messages one per line", func(t *testing.T) {
		exec := &fakeExec{addErr: &models.ValidationError{Messages: []string{models.MsgNameRequired, models.MsgInvalidURL}}}
		out := runLines(t, exec, "add", "exit")

		require.Contains(t, out, "  - "+models.MsgNameRequired+"\n")
		require.Contains(t, out, "  - "+models.MsgInvalidURL+"\n")
	})

	t.Run("other errors", func(t *testing.T) {
		exec := &fakeExec{addErr: errors.New("boom")}
		out := runLines(t, exec, "add", "exit")

		require.Contains(t, out, "Error: boom")
		require.Contains(t, out, "Bye!")
	})
}

func TestIndices(t *testing.T) {
	ns, ok := indices([]string{"3", "1"})
	require.True(t, ok)
	assert.Equal(t, []int{3, 1}, ns)

	_, ok = indices([]string{"1", "zero"})
	assert.False(t, ok)

	_, ok = oneIndex([]string{"1", "2"})
	assert.False(t, ok)
}
