// Shared helpers for apptbook CLI commands.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/mesh-intelligence/apptbook/internal/jsonstore"
	"github.com/mesh-intelligence/apptbook/internal/sqlitestore"
	"github.com/mesh-intelligence/apptbook/pkg/scheduler"
	"github.com/mesh-intelligence/apptbook/pkg/types"
)

// openStore resolves the data directory and opens the configured store
// backend. The caller must defer store.Close().
func openStore() (types.Store, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	switch cfg.Backend {
	case types.BackendSQLite:
		store, err := sqlitestore.Open(dataDir)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, nil
	case types.BackendJSON:
		store, err := jsonstore.Open(dataDir)
		if err != nil {
			return nil, fmt.Errorf("open json store: %w", err)
		}
		store.Warn = func(msg string) {
			fmt.Fprintln(os.Stderr, "warning:", msg)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrBackendUnknown, cfg.Backend)
	}
}

// openScheduler opens the store and wraps it in a scheduler. The caller
// must defer store.Close().
func openScheduler() (*scheduler.Scheduler, types.Store, error) {
	store, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	return scheduler.New(store), store, nil
}

// fail prints the error and exits with the appropriate code. Conflict
// errors also list the blocking appointments, as JSON when --json is
// set.
func fail(prefix string, err error) {
	var conflictErr *scheduler.ConflictError
	if errors.As(err, &conflictErr) {
		if flagJSON {
			out, merr := json.MarshalIndent(map[string]any{
				"error":     err.Error(),
				"conflicts": conflictErr.Conflicts,
			}, "", "  ")
			if merr == nil {
				fmt.Fprintln(os.Stderr, string(out))
			}
		} else {
			fmt.Fprintf(os.Stderr, "%s: %s\n", prefix, err)
			fmt.Fprintln(os.Stderr, "Conflicting appointments:")
			for _, c := range conflictErr.Conflicts {
				fmt.Fprintf(os.Stderr, "  - [%d] %s at %s (%d min)\n",
					c.ID, c.Title, c.Time, c.DurationMinutes)
			}
		}
		os.Exit(exitUserError)
	}

	fmt.Fprintf(os.Stderr, "%s: %s\n", prefix, err)
	switch {
	case errors.Is(err, types.ErrNotFound),
		errors.Is(err, scheduler.ErrInvalidFormat),
		errors.Is(err, scheduler.ErrEmptyTitle):
		os.Exit(exitUserError)
	default:
		os.Exit(exitSysError)
	}
}

// parseID parses a positional appointment ID argument.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid appointment ID %q", arg)
	}
	return id, nil
}

// printJSON marshals v with indentation to stdout.
func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "marshal JSON:", err)
		os.Exit(exitSysError)
	}
	fmt.Println(string(out))
}

// printAppointmentTable prints appointments in a human-readable table.
func printAppointmentTable(appts []types.Appointment) {
	if len(appts) == 0 {
		fmt.Println("No appointments found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tDATE\tTIME\tDUR\tSTATUS\tTITLE\tCLIENT")
	fmt.Fprintln(w, "--\t----\t----\t---\t------\t-----\t------")
	for _, a := range appts {
		title := a.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\t%s\n",
			a.ID, a.Date, a.Time, a.DurationMinutes, a.Status, title, a.ClientName)
	}
	w.Flush()

	output := sb.String()
	for _, line := range strings.Split(output, "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}

	fmt.Printf("Total: %d appointment(s)\n", len(appts))
}

// printAppointment prints a single appointment in detail.
func printAppointment(a *types.Appointment) {
	fmt.Printf("ID:       %d\n", a.ID)
	fmt.Printf("Title:    %s\n", a.Title)
	fmt.Printf("Date:     %s\n", a.Date)
	fmt.Printf("Time:     %s\n", a.Time)
	fmt.Printf("Duration: %d minutes\n", a.DurationMinutes)
	fmt.Printf("Status:   %s\n", a.Status)
	if a.ClientName != "" {
		fmt.Printf("Client:   %s\n", a.ClientName)
	}
	if a.Description != "" {
		fmt.Printf("Notes:    %s\n", a.Description)
	}
}
