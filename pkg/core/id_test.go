package core_test

import (
	"errors"
	"testing"

	"github.com/matchvault/matchvault/pkg/core"
)

func TestParseID(t *testing.T) {
	t.Run("Round Trips", func(t *testing.T) {
		id := core.NewID("/match/base.yml", 3)

		parsed, err := core.ParseID(id.String())
		if err != nil {
			t.Fatalf("ParseID failed: %v", err)
		}
		if parsed != id {
			t.Errorf("expected %v, got %v", id, parsed)
		}
	})

	t.Run("Restores Leading Slash", func(t *testing.T) {
		parsed, err := core.ParseID("match/emails.yml::0")
		if err != nil {
			t.Fatalf("ParseID failed: %v", err)
		}
		if parsed.File != "/match/emails.yml" {
			t.Errorf("expected absolute path, got %q", parsed.File)
		}
	})

	t.Run("Keeps Path With Embedded Separators", func(t *testing.T) {
		// Only the last "::" splits; anything before it belongs to the path.
		parsed, err := core.ParseID("/odd::dir/base.yml::7")
		if err != nil {
			t.Fatalf("ParseID failed: %v", err)
		}
		if parsed.File != "/odd::dir/base.yml" || parsed.Index != 7 {
			t.Errorf("unexpected identity: %v", parsed)
		}
	})

	t.Run("Rejects Malformed Input", func(t *testing.T) {
		for _, raw := range []string{
			"",
			"::0",
			"no-separator",
			"/match/base.yml::",
			"/match/base.yml::abc",
			"/match/base.yml::-1",
		} {
			if _, err := core.ParseID(raw); !errors.Is(err, core.ErrMalformedID) {
				t.Errorf("ParseID(%q): expected ErrMalformedID, got %v", raw, err)
			}
		}
	})
}

func TestDecodeID(t *testing.T) {
	t.Run("Accepts Percent Encoding", func(t *testing.T) {
		id, err := core.DecodeID("%2Fmatch%2Fmy%20file.yml%3A%3A2")
		if err != nil {
			t.Fatalf("DecodeID failed: %v", err)
		}
		if id.File != "/match/my file.yml" || id.Index != 2 {
			t.Errorf("unexpected identity: %v", id)
		}
	})

	t.Run("Accepts Plain Input", func(t *testing.T) {
		id, err := core.DecodeID("/match/base.yml::1")
		if err != nil {
			t.Fatalf("DecodeID failed: %v", err)
		}
		if id.File != "/match/base.yml" || id.Index != 1 {
			t.Errorf("unexpected identity: %v", id)
		}
	})

	t.Run("Rejects Invalid Escapes", func(t *testing.T) {
		if _, err := core.DecodeID("/match/base.yml%ZZ::0"); !errors.Is(err, core.ErrMalformedID) {
			t.Errorf("expected ErrMalformedID, got %v", err)
		}
	})
}
