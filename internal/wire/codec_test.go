package wire

import "testing"

func TestParseSerializeRoundTrip(t *testing.T) {
	msg := New(PlayCards, "Alice", "ROOM_1").
		Set("cards", "5H,5D").
		Set("reason", "opponent_disconnect")

	line := Serialize(msg)
	parsed, err := Parse(line)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", line, err)
	}

	if parsed.Type != msg.Type || parsed.Player != msg.Player || parsed.Room != msg.Room {
		t.Fatalf("envelope mismatch: got %+v, want %+v", parsed, msg)
	}
	for _, f := range msg.Fields {
		got, ok := parsed.Get(f.Key)
		if !ok || got != f.Value {
			t.Errorf("field %q: got (%q,%v), want %q", f.Key, got, ok, f.Value)
		}
	}
}

func TestSerializeUsesCompactKeysOnWire(t *testing.T) {
	line := Serialize(New(GameState, "", "ROOM_1").Set("hand", "5H,6D").Set("must_play_low", "true"))
	if !contains(line, "h=5H,6D") || !contains(line, "ml=true") {
		t.Errorf("expected compact keys on the wire, got %q", line)
	}
}

func TestParseRejectsTooFewSegments(t *testing.T) {
	if _, err := Parse("4|Alice"); err != ErrInvalidFrame {
		t.Errorf("expected ErrInvalidFrame, got %v", err)
	}
}

func TestParseRejectsNonNumericType(t *testing.T) {
	if _, err := Parse("x|Alice|ROOM_1"); err != ErrInvalidFrame {
		t.Errorf("expected ErrInvalidFrame, got %v", err)
	}
}

func TestParseRejectsFieldWithoutEquals(t *testing.T) {
	if _, err := Parse("7|Alice|ROOM_1|cardsonly"); err != ErrInvalidFrame {
		t.Errorf("expected ErrInvalidFrame, got %v", err)
	}
}

func TestParseStripsTrailingCR(t *testing.T) {
	msg, err := Parse("4|Alice|\r")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Type != Ping || msg.Player != "Alice" {
		t.Errorf("unexpected parse of CR-terminated frame: %+v", msg)
	}
}

func TestMessageSetOverwritesInPlace(t *testing.T) {
	msg := New(Error, "", "").Set("error", "first")
	msg.Set("error", "second")
	if len(msg.Fields) != 1 {
		t.Fatalf("expected Set to overwrite, got %d fields", len(msg.Fields))
	}
	if v, _ := msg.Get("error"); v != "second" {
		t.Errorf("got %q, want %q", v, "second")
	}
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
