package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/parsepush/internal/models"
	"github.com/dmitrijs2005/parsepush/internal/pushstatus"
)

const helpText = `Available commands:
  ls | list          list configured servers
  add                add a server
  edit <n>           edit server n
  rm <n>...          remove one or more servers
  mv <from> <to>     move a server to another position
  status <n>         fetch the push status records of server n
  show <k>           show record k of the last status fetch
  templates          list message templates
  addtemplate        add a message template
  rmtemplate <n>     remove template n
  exit | quit        leave the program`

// execIface is the command surface the REPL dispatches to. Indices are the
// 1-based numbers shown to the user.
type execIface interface {
	List(ctx context.Context) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, n int) error
	Remove(ctx context.Context, ns []int) error
	Move(ctx context.Context, from, to int) error
	Status(ctx context.Context, n int) error
	Show(ctx context.Context, k int) error
	Templates(ctx context.Context) error
	AddTemplate(ctx context.Context) error
	RemoveTemplate(ctx context.Context, n int) error
}

// runREPL reads commands from reader until EOF, "exit" or "quit" and
// dispatches them to a. Errors returned by a command are reported to w and
// the loop goes on.
func runREPL(ctx context.Context, a execIface, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprint(w, "parsepush> ")
		line, err := readLine(reader)
		if err != nil {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			fmt.Fprintln(w, helpText)

		case "ls", "list":
			report(w, a.List(ctx))

		case "add":
			report(w, a.Add(ctx))

		case "edit":
			n, ok := oneIndex(args)
			if !ok {
				fmt.Fprintln(w, "Usage: edit <n>")
				continue
			}
			report(w, a.Edit(ctx, n))

		case "rm":
			ns, ok := indices(args)
			if !ok || len(ns) == 0 {
				fmt.Fprintln(w, "Usage: rm <n>...")
				continue
			}
			report(w, a.Remove(ctx, ns))

		case "mv":
			ns, ok := indices(args)
			if !ok || len(ns) != 2 {
				fmt.Fprintln(w, "Usage: mv <from> <to>")
				continue
			}
			report(w, a.Move(ctx, ns[0], ns[1]))

		case "status":
			n, ok := oneIndex(args)
			if !ok {
				fmt.Fprintln(w, "Usage: status <n>")
				continue
			}
			report(w, a.Status(ctx, n))

		case "show":
			k, ok := oneIndex(args)
			if !ok {
				fmt.Fprintln(w, "Usage: show <k>")
				continue
			}
			report(w, a.Show(ctx, k))

		case "templates":
			report(w, a.Templates(ctx))

		case "addtemplate":
			report(w, a.AddTemplate(ctx))

		case "rmtemplate":
			n, ok := oneIndex(args)
			if !ok {
				fmt.Fprintln(w, "Usage: rmtemplate <n>")
				continue
			}
			report(w, a.RemoveTemplate(ctx, n))

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}

func oneIndex(args []string) (int, bool) {
	ns, ok := indices(args)
	if !ok || len(ns) != 1 {
		return 0, false
	}
	return ns[0], true
}

func indices(args []string) ([]int, bool) {
	ns := make([]int, 0, len(args))
	for _, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			return nil, false
		}
		ns = append(ns, n)
	}
	return ns, true
}

// report prints err for the user. Validation problems are listed one per
// line.
func report(w io.Writer, err error) {
	if err == nil {
		return
	}
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		for _, msg := range verr.Messages {
			fmt.Fprintln(w, "  -", msg)
		}
		return
	}
	fmt.Fprintln(w, "Error:", pushstatus.Describe(err))
}
