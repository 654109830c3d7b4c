package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/parsepush/internal/models"
)

var errNoRecord = errors.New("no such status record")

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func countOrDash(n *int64) string {
	if n == nil {
		return "-"
	}
	return strconv.FormatInt(*n, 10)
}

// Status fetches the _PushStatus records of server n and prints them as a
// table. A failed fetch is shown as a message; it is not an error of the
// command.
func (a *App) Status(ctx context.Context, n int) error {
	cfg, err := a.serverAt(n)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Loading push status for %s...\n", cfg.Name)
	snap := a.board.Load(ctx, cfg)

	if snap.ErrorMessage != "" {
		fmt.Fprintln(a.out, "Error:", snap.ErrorMessage)
		return nil
	}
	if len(snap.Entries) == 0 {
		fmt.Fprintln(a.out, "No push status records.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSTATUS\tSENT\tCREATED\tID")
	for i, e := range snap.Entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, orDash(e.Status), countOrDash(e.NumSent), orDash(e.CreatedAt), e.ID)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Last updated: %s\n", snap.LastUpdated.Format(time.DateTime))
	return nil
}

// Show prints record k of the last status fetch with its payload and the
// raw JSON.
func (a *App) Show(_ context.Context, k int) error {
	snap := a.board.Snapshot()
	if k < 1 || k > len(snap.Entries) {
		return fmt.Errorf("%w: %d (run 'status <n>' first)", errNoRecord, k)
	}
	printEntry(a, snap.Entries[k-1])
	return nil
}

func printEntry(a *App, e models.PushStatusEntry) {
	fmt.Fprintf(a.out, "ID:       %s\n", e.ID)
	fmt.Fprintf(a.out, "Status:   %s\n", orDash(e.Status))
	fmt.Fprintf(a.out, "Sent:     %s\n", countOrDash(e.NumSent))
	fmt.Fprintf(a.out, "Created:  %s\n", orDash(e.CreatedAt))
	fmt.Fprintf(a.out, "Updated:  %s\n", orDash(e.UpdatedAt))

	if len(e.PayloadItems) == 0 {
		fmt.Fprintln(a.out, "Payload:  -")
	} else {
		fmt.Fprintln(a.out, "Payload:")
		for _, item := range e.PayloadItems {
			fmt.Fprintf(a.out, "  %s: %s\n", item.Key, item.Value)
		}
	}

	fmt.Fprintln(a.out, "Raw:")
	fmt.Fprintln(a.out, e.RawJSON)
}
