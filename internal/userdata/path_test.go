package userdata

import "testing"

func TestParseSegments(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		want   Path
	}{
		{"keys", []string{"vk", "alice"}, NewPath(Key("vk"), Key("alice"))},
		{"index", []string{"bc_emails", "0"}, NewPath(Key("bc_emails"), Index(0))},
		{"multi digit index", []string{"12"}, NewPath(Index(12))},
		{"negative stays a key", []string{"-1"}, NewPath(Key("-1"))},
		{"mixed token stays a key", []string{"2fa"}, NewPath(Key("2fa"))},
		{"empty", nil, NewPath()},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseSegments(tc.tokens)
			if len(got) != len(tc.want) {
				t.Fatalf("segments = %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("segment %d = %#v, want %#v", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestPathString(t *testing.T) {
	path := NewPath(Key("vk"), Key("alice"), Index(3))
	if got := path.String(); got != "vk.alice.3" {
		t.Fatalf("path string = %q, want %q", got, "vk.alice.3")
	}
}

func TestSegmentString(t *testing.T) {
	if got := Key("vk").String(); got != "vk" {
		t.Fatalf("key string = %q", got)
	}
	if got := Index(7).String(); got != "7" {
		t.Fatalf("index string = %q", got)
	}
}
