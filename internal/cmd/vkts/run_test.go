package vkts

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/smurphik/vkts/internal/platform/errors"
)

func tempConfig(t *testing.T) Config {
	t.Helper()
	return Config{DataPath: filepath.Join(t.TempDir(), ".vkts")}
}

func run(t *testing.T, cfg Config, args Args) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := Run(context.Background(), cfg, args, &out, &errOut)
	return out.String(), err
}

func mustRun(t *testing.T, cfg Config, args Args) string {
	t.Helper()
	out, err := run(t, cfg, args)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return out
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(Args{})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DataPath != ".vkts" {
		t.Fatalf("data path = %q, want .vkts", cfg.DataPath)
	}
}

func TestLoadConfigEnvAndFlag(t *testing.T) {
	t.Setenv("VKTS_DATA_PATH", "/tmp/env-data")

	cfg, err := LoadConfig(Args{})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DataPath != "/tmp/env-data" {
		t.Fatalf("data path = %q, want env value", cfg.DataPath)
	}

	cfg, err = LoadConfig(Args{Data: "/tmp/flag-data"})
	if err != nil {
		t.Fatalf("load config with flag: %v", err)
	}
	if cfg.DataPath != "/tmp/flag-data" {
		t.Fatalf("data path = %q, want flag to beat env", cfg.DataPath)
	}
}

func TestRunInit(t *testing.T) {
	cfg := tempConfig(t)

	out := mustRun(t, cfg, Args{Init: &InitCmd{}})
	if !strings.Contains(out, "initialized") {
		t.Fatalf("init output = %q", out)
	}
}

func TestRunSetAndGet(t *testing.T) {
	cfg := tempConfig(t)

	mustRun(t, cfg, Args{Set: &SetCmd{Doc: "acc", Path: []string{"vk", "alice"}, Value: `{"is_activated":true}`}})

	out := mustRun(t, cfg, Args{Get: &GetCmd{Doc: "acc", Path: []string{"vk", "alice", "is_activated"}}})
	if strings.TrimSpace(out) != "true" {
		t.Fatalf("get output = %q, want true", out)
	}
}

func TestRunGetMissing(t *testing.T) {
	cfg := tempConfig(t)

	out := mustRun(t, cfg, Args{Get: &GetCmd{Doc: "acc", Path: []string{"vk", "ghost"}}})
	if strings.TrimSpace(out) != "not found" {
		t.Fatalf("get output = %q, want not found", out)
	}
}

func TestRunDelAndDropAndActive(t *testing.T) {
	cfg := tempConfig(t)

	mustRun(t, cfg, Args{Set: &SetCmd{Doc: "acc", Path: []string{"vk", "alice"}, Value: `{"is_activated":false}`, Enforce: true}})
	mustRun(t, cfg, Args{Set: &SetCmd{Doc: "acc", Path: []string{"vk", "bob"}, Value: `{"is_activated":false}`, Enforce: true}})

	// alice was activated by the first enforcing set
	out := mustRun(t, cfg, Args{Active: &ActiveCmd{Doc: "acc", Path: []string{"vk"}}})
	if !strings.HasPrefix(out, "alice\n") {
		t.Fatalf("active output = %q, want alice", out)
	}

	// deleting the active entry reactivates the remaining one
	mustRun(t, cfg, Args{Del: &DelCmd{Doc: "acc", Path: []string{"vk", "alice"}, Enforce: true}})
	out = mustRun(t, cfg, Args{Active: &ActiveCmd{Doc: "acc", Path: []string{"vk"}}})
	if !strings.HasPrefix(out, "bob\n") {
		t.Fatalf("active output = %q, want bob", out)
	}

	mustRun(t, cfg, Args{Drop: &DropCmd{Doc: "acc", Path: []string{"vk"}}})
	_, err := run(t, cfg, Args{Active: &ActiveCmd{Doc: "acc", Path: []string{"vk"}}})
	if apperrors.CodeOf(err) != apperrors.CodeNoActiveEntry {
		t.Fatalf("code = %q, want %q", apperrors.CodeOf(err), apperrors.CodeNoActiveEntry)
	}
}

func TestRunUnknownDocument(t *testing.T) {
	cfg := tempConfig(t)

	if _, err := run(t, cfg, Args{Get: &GetCmd{Doc: "bogus"}}); err == nil {
		t.Fatal("expected error for unknown document")
	}
}

func TestRunNoCommand(t *testing.T) {
	cfg := tempConfig(t)

	if _, err := run(t, cfg, Args{}); err == nil {
		t.Fatal("expected error when no subcommand given")
	}
}

func TestAccountFlow(t *testing.T) {
	cfg := tempConfig(t)

	mustRun(t, cfg, Args{Account: &AccountCmd{Add: &AccountAddCmd{Provider: "vk", Name: "alice"}}})
	mustRun(t, cfg, Args{Account: &AccountCmd{Add: &AccountAddCmd{Provider: "vk", Name: "bob", Activate: true}}})

	out := mustRun(t, cfg, Args{Active: &ActiveCmd{Doc: "acc", Path: []string{"vk"}}})
	if !strings.HasPrefix(out, "bob\n") {
		t.Fatalf("active = %q, want bob after --activate", out)
	}

	mustRun(t, cfg, Args{Account: &AccountCmd{Switch: &AccountSwitchCmd{Provider: "vk", Name: "alice"}}})
	out = mustRun(t, cfg, Args{Active: &ActiveCmd{Doc: "acc", Path: []string{"vk"}}})
	if !strings.HasPrefix(out, "alice\n") {
		t.Fatalf("active = %q, want alice after switch", out)
	}

	// switching to a ghost account fails before mutating anything
	_, err := run(t, cfg, Args{Account: &AccountCmd{Switch: &AccountSwitchCmd{Provider: "vk", Name: "ghost"}}})
	if apperrors.CodeOf(err) != apperrors.CodeTargetNotFound {
		t.Fatalf("code = %q, want %q", apperrors.CodeOf(err), apperrors.CodeTargetNotFound)
	}

	mustRun(t, cfg, Args{Account: &AccountCmd{Rm: &AccountRmCmd{Provider: "vk", Name: "alice"}}})
	out = mustRun(t, cfg, Args{Active: &ActiveCmd{Doc: "acc", Path: []string{"vk"}}})
	if !strings.HasPrefix(out, "bob\n") {
		t.Fatalf("active = %q, want bob reactivated after rm", out)
	}

	out = mustRun(t, cfg, Args{Account: &AccountCmd{Show: &AccountShowCmd{Provider: "vk"}}})
	if !strings.Contains(out, "bob") || strings.Contains(out, "alice") {
		t.Fatalf("show = %q, want bob only", out)
	}
}

func TestUnivFlow(t *testing.T) {
	cfg := tempConfig(t)

	mustRun(t, cfg, Args{Univ: &UnivCmd{Add: &UnivAddCmd{Key: "mit"}}})
	mustRun(t, cfg, Args{Univ: &UnivCmd{Add: &UnivAddCmd{Key: "ethz", Activate: true}}})

	out := mustRun(t, cfg, Args{Active: &ActiveCmd{Doc: "univ"}})
	if !strings.HasPrefix(out, "ethz\n") {
		t.Fatalf("active = %q, want ethz", out)
	}

	mustRun(t, cfg, Args{Univ: &UnivCmd{Switch: &UnivSwitchCmd{Key: "mit"}}})
	out = mustRun(t, cfg, Args{Active: &ActiveCmd{Doc: "univ"}})
	if !strings.HasPrefix(out, "mit\n") {
		t.Fatalf("active = %q, want mit after switch", out)
	}

	mustRun(t, cfg, Args{Univ: &UnivCmd{Rm: &UnivRmCmd{Key: "mit"}}})
	out = mustRun(t, cfg, Args{Univ: &UnivCmd{Show: &UnivShowCmd{}}})
	if strings.Contains(out, "mit") || !strings.Contains(out, "ethz") {
		t.Fatalf("show = %q, want ethz only", out)
	}
}

func TestEmailAndGroupFlow(t *testing.T) {
	cfg := tempConfig(t)

	mustRun(t, cfg, Args{Email: &EmailCmd{Add: &EmailAddCmd{Addr: "a@x.com"}}})
	mustRun(t, cfg, Args{Email: &EmailCmd{Add: &EmailAddCmd{Addr: "b@x.com"}}})
	mustRun(t, cfg, Args{Email: &EmailCmd{Rm: &EmailRmCmd{Addr: "a@x.com"}}})

	out := mustRun(t, cfg, Args{Email: &EmailCmd{Show: &EmailShowCmd{}}})
	if strings.Contains(out, "a@x.com") || !strings.Contains(out, "b@x.com") {
		t.Fatalf("email show = %q, want b@x.com only", out)
	}

	mustRun(t, cfg, Args{Group: &GroupCmd{Add: &GroupAddCmd{Name: "golang"}}})
	out = mustRun(t, cfg, Args{Group: &GroupCmd{Show: &GroupShowCmd{}}})
	if !strings.Contains(out, "golang") {
		t.Fatalf("group show = %q, want golang", out)
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			"no active entry",
			apperrors.WithMetadata(apperrors.CodeNoActiveEntry, "no activated entry found", map[string]string{"document": "acc", "path": "vk"}),
			"no active entry in acc vk",
		},
		{
			"target not found",
			apperrors.WithMetadata(apperrors.CodeTargetNotFound, "path does not resolve to an object", map[string]string{"document": "univ", "path": "mit"}),
			"nothing to operate on at univ mit",
		},
		{
			"invalid path",
			apperrors.WithMetadata(apperrors.CodeInvalidPath, "field path is empty", map[string]string{"document": "adm"}),
			"invalid field path adm",
		},
		{
			"not activatable",
			apperrors.WithMetadata(apperrors.CodeNotActivatable, "entries are not activatable objects", map[string]string{"document": "acc", "path": "vk"}),
			"entries under acc vk",
		},
		{
			"plain error",
			bytes.ErrTooLarge,
			bytes.ErrTooLarge.Error(),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Message(tc.err); !strings.Contains(got, tc.want) {
				t.Fatalf("message = %q, want containing %q", got, tc.want)
			}
		})
	}
}
