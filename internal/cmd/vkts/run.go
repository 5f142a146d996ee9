package vkts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	apperrors "github.com/smurphik/vkts/internal/platform/errors"
	"github.com/smurphik/vkts/internal/shell"
	"github.com/smurphik/vkts/internal/userdata"
	"github.com/smurphik/vkts/internal/userdata/storage"
	"github.com/smurphik/vkts/internal/userdata/storage/jsonfile"
)

// Run dispatches the parsed command against a store rooted at
// cfg.DataPath.
func Run(ctx context.Context, cfg Config, args Args, out, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}

	backend, err := jsonfile.Open(cfg.DataPath)
	if err != nil {
		return err
	}
	store := userdata.New(backend)

	switch {
	case args.Init != nil:
		if err := backend.Ensure(ctx); err != nil {
			return apperrors.Wrap(apperrors.CodePersistence, "prepare data files", err)
		}
		fmt.Fprintf(out, "initialized %s\n", backend.Dir())
		return nil
	case args.Get != nil:
		return runGet(ctx, store, *args.Get, out)
	case args.Set != nil:
		return runSet(ctx, store, *args.Set, out)
	case args.Del != nil:
		return runDel(ctx, store, *args.Del, out)
	case args.Drop != nil:
		return runDrop(ctx, store, *args.Drop, out)
	case args.Active != nil:
		return runActive(ctx, store, *args.Active, out)
	case args.Account != nil:
		return runAccount(ctx, store, *args.Account, out)
	case args.Univ != nil:
		return runUniv(ctx, store, *args.Univ, out)
	case args.Email != nil:
		return runEmail(ctx, store, *args.Email, out)
	case args.Group != nil:
		return runGroup(ctx, store, *args.Group, out)
	case args.Shell != nil:
		sh := shell.New(store, filepath.Join(cfg.DataPath, ".history"))
		return sh.Run(ctx, out, errOut)
	}
	return errors.New("no command given (see --help)")
}

func runGet(ctx context.Context, store *userdata.Store, cmd GetCmd, out io.Writer) error {
	doc, err := storage.ParseDocument(cmd.Doc)
	if err != nil {
		return err
	}
	value, found, err := store.Get(ctx, doc, userdata.ParseSegments(cmd.Path))
	if err != nil {
		return err
	}
	if !found {
		fmt.Fprintln(out, "not found")
		return nil
	}
	return printJSON(out, value)
}

func runSet(ctx context.Context, store *userdata.Store, cmd SetCmd, out io.Writer) error {
	doc, err := storage.ParseDocument(cmd.Doc)
	if err != nil {
		return err
	}
	value := userdata.ParseValue(cmd.Value)
	if err := store.Set(ctx, value, doc, userdata.ParseSegments(cmd.Path), cmd.Enforce); err != nil {
		return err
	}
	fmt.Fprintln(out, "ok")
	return nil
}

func runDel(ctx context.Context, store *userdata.Store, cmd DelCmd, out io.Writer) error {
	doc, err := storage.ParseDocument(cmd.Doc)
	if err != nil {
		return err
	}
	if err := store.Delete(ctx, doc, userdata.ParseSegments(cmd.Path), cmd.Enforce); err != nil {
		return err
	}
	fmt.Fprintln(out, "ok")
	return nil
}

func runDrop(ctx context.Context, store *userdata.Store, cmd DropCmd, out io.Writer) error {
	doc, err := storage.ParseDocument(cmd.Doc)
	if err != nil {
		return err
	}
	if err := store.DropActivations(ctx, doc, userdata.ParseSegments(cmd.Path)); err != nil {
		return err
	}
	fmt.Fprintln(out, "ok")
	return nil
}

func runActive(ctx context.Context, store *userdata.Store, cmd ActiveCmd, out io.Writer) error {
	doc, err := storage.ParseDocument(cmd.Doc)
	if err != nil {
		return err
	}
	key, entry, err := store.FindActive(ctx, doc, userdata.ParseSegments(cmd.Path))
	if err != nil {
		return err
	}
	fmt.Fprintln(out, key)
	return printJSON(out, entry)
}

func runAccount(ctx context.Context, store *userdata.Store, cmd AccountCmd, out io.Writer) error {
	switch {
	case cmd.Add != nil:
		path := userdata.NewPath(userdata.Key(cmd.Add.Provider), userdata.Key(cmd.Add.Name))
		if err := store.Set(ctx, newActivatable(), storage.DocAccounts, path, true); err != nil {
			return err
		}
		if cmd.Add.Activate {
			if err := activate(ctx, store, storage.DocAccounts, userdata.NewPath(userdata.Key(cmd.Add.Provider)), cmd.Add.Name); err != nil {
				return err
			}
		}
		fmt.Fprintf(out, "added %s account %q\n", cmd.Add.Provider, cmd.Add.Name)
		return nil
	case cmd.Rm != nil:
		path := userdata.NewPath(userdata.Key(cmd.Rm.Provider), userdata.Key(cmd.Rm.Name))
		if err := store.Delete(ctx, storage.DocAccounts, path, true); err != nil {
			return err
		}
		fmt.Fprintf(out, "removed %s account %q\n", cmd.Rm.Provider, cmd.Rm.Name)
		return nil
	case cmd.Switch != nil:
		path := userdata.NewPath(userdata.Key(cmd.Switch.Provider), userdata.Key(cmd.Switch.Name))
		if err := requireExists(ctx, store, storage.DocAccounts, path); err != nil {
			return err
		}
		if err := activate(ctx, store, storage.DocAccounts, userdata.NewPath(userdata.Key(cmd.Switch.Provider)), cmd.Switch.Name); err != nil {
			return err
		}
		fmt.Fprintf(out, "switched %s to %q\n", cmd.Switch.Provider, cmd.Switch.Name)
		return nil
	case cmd.Show != nil:
		var path userdata.Path
		if cmd.Show.Provider != "" {
			path = userdata.NewPath(userdata.Key(cmd.Show.Provider))
		}
		return show(ctx, store, storage.DocAccounts, path, out)
	}
	return errors.New("account requires a subcommand: add, rm, switch, or show")
}

func runUniv(ctx context.Context, store *userdata.Store, cmd UnivCmd, out io.Writer) error {
	switch {
	case cmd.Add != nil:
		path := userdata.NewPath(userdata.Key(cmd.Add.Key))
		if err := store.Set(ctx, newActivatable(), storage.DocUniversities, path, true); err != nil {
			return err
		}
		if cmd.Add.Activate {
			if err := activate(ctx, store, storage.DocUniversities, nil, cmd.Add.Key); err != nil {
				return err
			}
		}
		fmt.Fprintf(out, "added university %q\n", cmd.Add.Key)
		return nil
	case cmd.Rm != nil:
		if err := store.Delete(ctx, storage.DocUniversities, userdata.NewPath(userdata.Key(cmd.Rm.Key)), true); err != nil {
			return err
		}
		fmt.Fprintf(out, "removed university %q\n", cmd.Rm.Key)
		return nil
	case cmd.Switch != nil:
		path := userdata.NewPath(userdata.Key(cmd.Switch.Key))
		if err := requireExists(ctx, store, storage.DocUniversities, path); err != nil {
			return err
		}
		if err := activate(ctx, store, storage.DocUniversities, nil, cmd.Switch.Key); err != nil {
			return err
		}
		fmt.Fprintf(out, "switched university to %q\n", cmd.Switch.Key)
		return nil
	case cmd.Show != nil:
		var path userdata.Path
		if cmd.Show.Key != "" {
			path = userdata.NewPath(userdata.Key(cmd.Show.Key))
		}
		return show(ctx, store, storage.DocUniversities, path, out)
	}
	return errors.New("univ requires a subcommand: add, rm, switch, or show")
}

func runEmail(ctx context.Context, store *userdata.Store, cmd EmailCmd, out io.Writer) error {
	switch {
	case cmd.Add != nil:
		return adminListAdd(ctx, store, "bc_emails", cmd.Add.Addr, out)
	case cmd.Rm != nil:
		return adminListRm(ctx, store, "bc_emails", cmd.Rm.Addr, out)
	case cmd.Show != nil:
		return show(ctx, store, storage.DocAdmin, userdata.NewPath(userdata.Key("bc_emails")), out)
	}
	return errors.New("email requires a subcommand: add, rm, or show")
}

func runGroup(ctx context.Context, store *userdata.Store, cmd GroupCmd, out io.Writer) error {
	switch {
	case cmd.Add != nil:
		return adminListAdd(ctx, store, "mon_groups", cmd.Add.Name, out)
	case cmd.Rm != nil:
		return adminListRm(ctx, store, "mon_groups", cmd.Rm.Name, out)
	case cmd.Show != nil:
		return show(ctx, store, storage.DocAdmin, userdata.NewPath(userdata.Key("mon_groups")), out)
	}
	return errors.New("group requires a subcommand: add, rm, or show")
}

// adminListAdd appends value to one of the admin document lists.
func adminListAdd(ctx context.Context, store *userdata.Store, field, value string, out io.Writer) error {
	if err := store.Set(ctx, value, storage.DocAdmin, userdata.NewPath(userdata.Key(field)), false); err != nil {
		return err
	}
	fmt.Fprintf(out, "added %q to %s\n", value, field)
	return nil
}

// adminListRm removes the first matching value from an admin list.
func adminListRm(ctx context.Context, store *userdata.Store, field, value string, out io.Writer) error {
	path := userdata.NewPath(userdata.Key(field), userdata.Key(value))
	if err := store.Delete(ctx, storage.DocAdmin, path, false); err != nil {
		return err
	}
	fmt.Fprintf(out, "removed %q from %s\n", value, field)
	return nil
}

// activate deactivates every sibling under groupPath, then flags name.
func activate(ctx context.Context, store *userdata.Store, doc storage.Document, groupPath userdata.Path, name string) error {
	if err := store.DropActivations(ctx, doc, groupPath); err != nil {
		return err
	}
	flagPath := make(userdata.Path, 0, len(groupPath)+2)
	flagPath = append(flagPath, groupPath...)
	flagPath = append(flagPath, userdata.Key(name), userdata.Key("is_activated"))
	return store.Set(ctx, true, doc, flagPath, false)
}

func requireExists(ctx context.Context, store *userdata.Store, doc storage.Document, path userdata.Path) error {
	_, found, err := store.Get(ctx, doc, path)
	if err != nil {
		return err
	}
	if !found {
		return apperrors.WithMetadata(apperrors.CodeTargetNotFound, "no such entry", map[string]string{
			"document": string(doc),
			"path":     path.String(),
		})
	}
	return nil
}

func show(ctx context.Context, store *userdata.Store, doc storage.Document, path userdata.Path, out io.Writer) error {
	value, found, err := store.Get(ctx, doc, path)
	if err != nil {
		return err
	}
	if !found {
		fmt.Fprintln(out, "not found")
		return nil
	}
	return printJSON(out, value)
}

func newActivatable() *storage.Object {
	entry := storage.NewObject()
	entry.Set("is_activated", false)
	return entry
}

func printJSON(out io.Writer, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(data))
	return nil
}
