// Package shell is the text-menu front end of the roster.
//
// It is thin: it reads raw text for each field, checks and
// converts the numeric ones, calls the matching roster.Store method and
// prints the outcome. All rules about ids, search and ordering live in
// package roster.
//
// The shell reads from any io.Reader and writes to any io.Writer, so
// tests drive it with a scripted strings.Reader instead of a terminal.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aanand-mishra/roster/internal/roster"
	"github.com/aanand-mishra/roster/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// errEndOfInput is returned by prompt when the input is exhausted.
// Run treats it as a normal exit.
var errEndOfInput = errors.New("end of input")

// DefaultExportPath is used when WithExportPath is not given.
const DefaultExportPath = "students.xlsx"

// Shell runs the menu loop against one roster.Store.
type Shell struct {
	store      *roster.Store
	in         *bufio.Scanner
	out        io.Writer
	log        *slog.Logger
	validate   *validator.Validate
	exportPath string
	actions    []action
}

// action is one menu entry. run is a method value bound to the Shell,
// so every action sees the same store and output.
type action struct {
	key   string
	title string
	run   func() error
}

// Option configures a Shell.
type Option func(*Shell)

// WithExportPath sets the spreadsheet file the export action writes.
func WithExportPath(path string) Option {
	return func(s *Shell) { s.exportPath = path }
}

// WithLogger sets the logger for action traces. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(s *Shell) { s.log = log }
}

// New returns a Shell reading commands from in and printing to out.
func New(store *roster.Store, in io.Reader, out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		store:      store,
		in:         bufio.NewScanner(in),
		out:        out,
		log:        slog.Default(),
		validate:   validator.New(),
		exportPath: DefaultExportPath,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.actions = []action{
		{"1", "Add student", s.add},
		{"2", "Remove student", s.remove},
		{"3", "Edit student", s.edit},
		{"4", "Search students", s.search},
		{"5", "Sort students", s.sort},
		{"6", "Show all students", s.showAll},
		{"7", "Save to file", s.save},
		{"8", "Load from file", s.load},
		{"9", "Export to spreadsheet", s.exportXLSX},
	}

	return s
}

// ─────────────────────────────────────────────────────────────────────────────
// Run shows the menu and executes actions until the user picks 0 or the
// input ends. It returns nil in both cases.
//
// Only I/O failures on in/out end the loop with an error. Everything the
// user can get wrong (bad choice, non-numeric id, unknown id) is reported
// and the menu comes back.
// ─────────────────────────────────────────────────────────────────────────────
func (s *Shell) Run() error {
	for {
		if err := s.printMenu(); err != nil {
			return err
		}

		choice, err := s.prompt("Choose an action: ")
		if err != nil {
			return s.exitErr(err)
		}

		choice = strings.TrimSpace(choice)
		if choice == "0" {
			s.log.Debug("shell exit requested")
			return nil
		}

		act, ok := s.lookup(choice)
		if !ok {
			if err := s.reply(response.Fail("Invalid choice.")); err != nil {
				return err
			}
			continue
		}

		s.log.Debug("running action", slog.String("action", act.title))

		if err := act.run(); err != nil {
			return s.exitErr(err)
		}
	}
}

func (s *Shell) exitErr(err error) error {
	if errors.Is(err, errEndOfInput) {
		return nil
	}
	return err
}

func (s *Shell) lookup(key string) (action, bool) {
	for _, a := range s.actions {
		if a.key == key {
			return a, true
		}
	}
	return action{}, false
}

func (s *Shell) printMenu() error {
	var b strings.Builder

	b.WriteString("\nMenu:\n")
	for _, a := range s.actions {
		fmt.Fprintf(&b, "%s. %s\n", a.key, a.title)
	}
	b.WriteString("0. Exit\n")

	_, err := io.WriteString(s.out, b.String())
	return err
}

// prompt prints label and reads one line. A trailing "\r" is dropped.
func (s *Shell) prompt(label string) (string, error) {
	if _, err := io.WriteString(s.out, label); err != nil {
		return "", err
	}

	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("shell: read input: %w", err)
		}
		return "", errEndOfInput
	}

	return strings.TrimSuffix(s.in.Text(), "\r"), nil
}

func (s *Shell) reply(r response.Response) error {
	return response.Write(s.out, r)
}
