package gameengine

import "testing"

func TestSnapshotForUnknownPlayer(t *testing.T) {
	s := New([]string{"Alice", "Bob"})
	if _, ok := s.SnapshotFor("Carol"); ok {
		t.Error("expected ok=false for a non-member viewer")
	}
}

func TestSnapshotForReflectsViewerPerspective(t *testing.T) {
	s := freshState(t)

	snap, ok := s.SnapshotFor("Alice")
	if !ok {
		t.Fatal("expected ok=true for a member viewer")
	}
	if !snap.YourTurn {
		t.Error("expected YourTurn=true for the current player")
	}
	if snap.CurrentPlayer != "Alice" {
		t.Errorf("CurrentPlayer = %q, want Alice", snap.CurrentPlayer)
	}
	if len(snap.Opponents) != 1 || snap.Opponents[0].Name != "Bob" {
		t.Errorf("expected exactly one opponent Bob, got %+v", snap.Opponents)
	}
	if snap.Opponents[0].HandSize != len(s.Players[1].Hand) {
		t.Errorf("opponent hand size mismatch: %d vs %d", snap.Opponents[0].HandSize, len(s.Players[1].Hand))
	}

	bobSnap, ok := s.SnapshotFor("Bob")
	if !ok {
		t.Fatal("expected ok=true for Bob")
	}
	if bobSnap.YourTurn {
		t.Error("expected YourTurn=false for the non-current player")
	}
}

func TestSnapshotEmptyPileUsesPlaceholder(t *testing.T) {
	s := New([]string{"Alice", "Bob"})
	s.Phase = Active
	s.Discard = nil

	snap, ok := s.SnapshotFor("Alice")
	if !ok {
		t.Fatal("expected ok=true")
	}
	if snap.TopCard != EmptyPileTopCard {
		t.Errorf("TopCard = %q, want placeholder %q", snap.TopCard, EmptyPileTopCard)
	}
}

func TestHandCSV(t *testing.T) {
	snap := Snapshot{Hand: []string{card(t, "5H").String(), card(t, "KC").String()}}
	if got, want := snap.HandCSV(), "5H,KC"; got != want {
		t.Errorf("HandCSV() = %q, want %q", got, want)
	}
}
