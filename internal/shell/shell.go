// Package shell provides the interactive mode: a readline loop running the
// same path-addressed operations as the one-shot CLI commands.
package shell

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ergochat/readline"

	apperrors "github.com/smurphik/vkts/internal/platform/errors"
	"github.com/smurphik/vkts/internal/userdata"
	"github.com/smurphik/vkts/internal/userdata/storage"
)

// Shell is an interactive command loop over a user-data store.
type Shell struct {
	store       *userdata.Store
	historyFile string
	rl          *readline.Instance
}

// New returns a shell over store. historyFile may be empty to disable
// persistent history.
func New(store *userdata.Store, historyFile string) *Shell {
	return &Shell{store: store, historyFile: historyFile}
}

var completer = readline.NewPrefixCompleter(
	readline.PcItem("help"),

	readline.PcItem("get", readline.PcItem("acc"), readline.PcItem("adm"), readline.PcItem("univ")),
	readline.PcItem("set", readline.PcItem("acc"), readline.PcItem("adm"), readline.PcItem("univ")),
	readline.PcItem("del", readline.PcItem("acc"), readline.PcItem("adm"), readline.PcItem("univ")),
	readline.PcItem("drop", readline.PcItem("acc"), readline.PcItem("adm"), readline.PcItem("univ")),
	readline.PcItem("active", readline.PcItem("acc"), readline.PcItem("adm"), readline.PcItem("univ")),

	readline.PcItem("exit"),
	readline.PcItem("quit"),
)

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

// Open initializes the readline instance.
func (s *Shell) Open() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "vkts> ",
		HistoryFile:     s.historyFile,
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return err
	}
	rl.CaptureExitSignal()
	s.rl = rl
	return nil
}

// Close releases the readline instance.
func (s *Shell) Close() error {
	if s.rl != nil {
		_ = s.rl.Close()
		s.rl = nil
	}
	return nil
}

// Run reads and executes lines until exit, EOF, or context cancellation.
// Errors from individual commands are printed and the loop continues.
func (s *Shell) Run(ctx context.Context, out, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	if err := s.Open(); err != nil {
		return err
	}
	defer s.Close()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := s.rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				return nil
			}
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		quit, execErr := s.Execute(ctx, line, out)
		if execErr != nil {
			fmt.Fprintln(errOut, message(execErr))
		}
		if quit {
			return nil
		}
	}
}

// Execute runs one shell line against the store and reports whether the
// loop should exit.
func (s *Shell) Execute(ctx context.Context, line string, out io.Writer) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, rest := fields[0], fields[1:]
	switch cmd {
	case "exit", "quit":
		return true, nil
	case "help":
		printHelp(out)
		return false, nil
	case "get":
		return false, s.get(ctx, rest, out)
	case "set":
		return false, s.set(ctx, rest, out)
	case "del":
		return false, s.del(ctx, rest, out)
	case "drop":
		return false, s.drop(ctx, rest, out)
	case "active":
		return false, s.active(ctx, rest, out)
	}
	return false, fmt.Errorf("unknown command %q (try help)", cmd)
}

func (s *Shell) get(ctx context.Context, args []string, out io.Writer) error {
	doc, path, err := docAndPath(args, 0)
	if err != nil {
		return err
	}
	value, found, err := s.store.Get(ctx, doc, path)
	if err != nil {
		return err
	}
	if !found {
		fmt.Fprintln(out, "not found")
		return nil
	}
	return printJSON(out, value)
}

func (s *Shell) set(ctx context.Context, args []string, out io.Writer) error {
	// the last token is the value: set <doc> <segment>... <value>
	if len(args) < 3 {
		return fmt.Errorf("usage: set <doc> <segment>... <value>")
	}
	doc, path, err := docAndPath(args[:len(args)-1], 1)
	if err != nil {
		return err
	}
	value := userdata.ParseValue(args[len(args)-1])
	if err := s.store.Set(ctx, value, doc, path, false); err != nil {
		return err
	}
	fmt.Fprintln(out, "ok")
	return nil
}

func (s *Shell) del(ctx context.Context, args []string, out io.Writer) error {
	doc, path, err := docAndPath(args, 1)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, doc, path, false); err != nil {
		return err
	}
	fmt.Fprintln(out, "ok")
	return nil
}

func (s *Shell) drop(ctx context.Context, args []string, out io.Writer) error {
	doc, path, err := docAndPath(args, 0)
	if err != nil {
		return err
	}
	if err := s.store.DropActivations(ctx, doc, path); err != nil {
		return err
	}
	fmt.Fprintln(out, "ok")
	return nil
}

func (s *Shell) active(ctx context.Context, args []string, out io.Writer) error {
	doc, path, err := docAndPath(args, 0)
	if err != nil {
		return err
	}
	key, entry, err := s.store.FindActive(ctx, doc, path)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, key)
	return printJSON(out, entry)
}

func docAndPath(args []string, minSegments int) (storage.Document, userdata.Path, error) {
	if len(args) < 1+minSegments {
		return "", nil, fmt.Errorf("expected <doc> and at least %d path segment(s)", minSegments)
	}
	doc, err := storage.ParseDocument(args[0])
	if err != nil {
		return "", nil, err
	}
	return doc, userdata.ParseSegments(args[1:]), nil
}

func printJSON(out io.Writer, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(data))
	return nil
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, "commands:")
	fmt.Fprintln(out, "  get <doc> <segment>...          print the value at a field path")
	fmt.Fprintln(out, "  set <doc> <segment>... <value>  write a value (JSON or bare string)")
	fmt.Fprintln(out, "  del <doc> <segment>...          delete the value at a field path")
	fmt.Fprintln(out, "  drop <doc> <segment>...         deactivate every entry at a field path")
	fmt.Fprintln(out, "  active <doc> <segment>...       print the active entry at a field path")
	fmt.Fprintln(out, "  exit | quit                     leave the shell")
	fmt.Fprintln(out, "docs: acc, adm, univ; decimal segments address sequence indices")
}

func message(err error) string {
	if apperrors.CodeOf(err) == apperrors.CodeNoActiveEntry {
		return err.Error() + " (add and activate an entry first)"
	}
	return err.Error()
}
