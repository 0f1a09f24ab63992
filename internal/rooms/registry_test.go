package rooms

import "testing"

func TestJoinOrCreateMatchesOpenRoom(t *testing.T) {
	reg := New(0)

	first, err := reg.JoinOrCreate("Alice")
	if err != nil {
		t.Fatalf("JoinOrCreate failed: %v", err)
	}
	if !first.Created || first.RoomFull {
		t.Errorf("expected a freshly created, non-full room, got %+v", first)
	}

	second, err := reg.JoinOrCreate("Bob")
	if err != nil {
		t.Fatalf("JoinOrCreate failed: %v", err)
	}
	if second.Created {
		t.Error("expected Bob to join Alice's existing room, not create one")
	}
	if second.RoomID != first.RoomID {
		t.Errorf("room id mismatch: %q vs %q", second.RoomID, first.RoomID)
	}
	if !second.RoomFull {
		t.Error("expected room to report full with two members")
	}
}

func TestJoinOrCreateMakesNewRoomWhenNoneOpen(t *testing.T) {
	reg := New(0)
	reg.JoinOrCreate("Alice")
	reg.JoinOrCreate("Bob") // fills the first room

	third, err := reg.JoinOrCreate("Carol")
	if err != nil {
		t.Fatalf("JoinOrCreate failed: %v", err)
	}
	if !third.Created {
		t.Error("expected a new room for Carol since the first is full")
	}
}

func TestJoinOrCreateRespectsMaxRooms(t *testing.T) {
	reg := New(1)
	if _, err := reg.JoinOrCreate("Alice"); err != nil {
		t.Fatalf("first JoinOrCreate failed: %v", err)
	}
	reg.JoinOrCreate("Bob") // fills the only room

	if _, err := reg.JoinOrCreate("Carol"); err != ErrMaxRooms {
		t.Errorf("expected ErrMaxRooms, got %v", err)
	}
}

func TestLeaveDestroysEmptyRoom(t *testing.T) {
	reg := New(0)
	res, _ := reg.JoinOrCreate("Alice")

	leaveRes, err := reg.Leave(res.RoomID, "Alice")
	if err != nil {
		t.Fatalf("Leave failed: %v", err)
	}
	if !leaveRes.Destroyed {
		t.Error("expected room to be destroyed once its last member leaves")
	}
	if reg.Count() != 0 {
		t.Errorf("expected 0 live rooms, got %d", reg.Count())
	}
}

func TestLeaveLeavesNonEmptyRoomIntact(t *testing.T) {
	reg := New(0)
	res, _ := reg.JoinOrCreate("Alice")
	reg.JoinOrCreate("Bob")

	leaveRes, err := reg.Leave(res.RoomID, "Alice")
	if err != nil {
		t.Fatalf("Leave failed: %v", err)
	}
	if leaveRes.Destroyed {
		t.Error("expected room to survive with one member remaining")
	}
	if len(leaveRes.Remaining) != 1 || leaveRes.Remaining[0] != "Bob" {
		t.Errorf("expected Bob remaining, got %v", leaveRes.Remaining)
	}
}

func TestWithRoomGrantsExclusiveAccess(t *testing.T) {
	reg := New(0)
	res, _ := reg.JoinOrCreate("Alice")

	var sawMembers []string
	found := reg.WithRoom(res.RoomID, func(r *Room) {
		sawMembers = r.Members
		r.Members = append(r.Members, "Bob")
	})
	if !found {
		t.Fatal("expected room to be found")
	}
	if len(sawMembers) != 1 || sawMembers[0] != "Alice" {
		t.Errorf("unexpected members seen inside WithRoom: %v", sawMembers)
	}

	members, ok := reg.Members(res.RoomID)
	if !ok || len(members) != 2 {
		t.Errorf("expected mutation inside WithRoom to persist, got %v", members)
	}
}

func TestWithRoomUnknownRoom(t *testing.T) {
	reg := New(0)
	if reg.WithRoom("ROOM_404", func(*Room) {}) {
		t.Error("expected WithRoom to report not-found for an unknown room")
	}
}

func TestDestroyRemovesRoom(t *testing.T) {
	reg := New(0)
	res, _ := reg.JoinOrCreate("Alice")
	reg.Destroy(res.RoomID)
	if reg.Count() != 0 {
		t.Errorf("expected 0 rooms after Destroy, got %d", reg.Count())
	}
}
