package domain

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestJoinAddsPlayerAtSpawn(t *testing.T) {
	w := NewWorld("ROOM01", DefaultSettings(), NewSeededRoleAssigner(1))

	events, err := w.Join("p1", "Red")
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if countEvents(events, EventPlayerJoined) != 1 {
		t.Fatalf("expected one PLAYER_JOINED event, got %+v", events)
	}

	p, err := w.GetPlayer("p1")
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if p.Location != (Location{X: 4900, Y: 1700}) {
		t.Fatalf("spawn = %v, want (4900, 1700)", p.Location)
	}
	if p.Team != TeamUndetermined || p.Status != StatusAlive || p.Target != nil {
		t.Fatalf("unexpected new player: %+v", p)
	}
	if w.Status != GameWaiting {
		t.Fatalf("status = %s, want %s", w.Status, GameWaiting)
	}
}

func TestJoinRejectsDuplicate(t *testing.T) {
	w := NewWorld("ROOM01", DefaultSettings(), NewSeededRoleAssigner(1))
	if _, err := w.Join("p1", ""); err != nil {
		t.Fatalf("join: %v", err)
	}
	assertRejected(t, w, ErrDuplicateJoin, func() ([]*GameEvent, error) {
		return w.Join("p1", "")
	})
}

func TestJoinDuplicateCheckedBeforePhase(t *testing.T) {
	w := newStartedWorld(t)
	assertRejected(t, w, ErrDuplicateJoin, func() ([]*GameEvent, error) {
		return w.Join("p1", "")
	})
}

func TestJoinRejectsWhenGameStarted(t *testing.T) {
	w := newStartedWorld(t)
	assertRejected(t, w, ErrGameClosed, func() ([]*GameEvent, error) {
		return w.Join("p5", "")
	})
	if w.PlayerCount() != 4 {
		t.Fatalf("roster size = %d, want 4", w.PlayerCount())
	}
}

func TestFullRosterStartsGame(t *testing.T) {
	w := NewWorld("ROOM01", DefaultSettings(), NewSeededRoleAssigner(7))
	var last []*GameEvent
	for _, id := range []string{"a", "b", "c", "d"} {
		events, err := w.Join(id, "")
		if err != nil {
			t.Fatalf("join %s: %v", id, err)
		}
		last = events
	}

	if w.Status != GameOngoing {
		t.Fatalf("status = %s, want %s", w.Status, GameOngoing)
	}
	if w.CanJoin() {
		t.Fatalf("full world should not accept players")
	}
	if countEvents(last, EventGameStarted) != 1 {
		t.Fatalf("expected GAME_STARTED on last join, got %+v", last)
	}
	if countEvents(last, EventRoleAssigned) != 4 {
		t.Fatalf("expected 4 ROLE_ASSIGNED events, got %d", countEvents(last, EventRoleAssigned))
	}
	for _, e := range last {
		if e.Type != EventRoleAssigned {
			continue
		}
		p, err := w.GetPlayer(e.PlayerID)
		if err != nil {
			t.Fatalf("role event for unknown player %q", e.PlayerID)
		}
		if got := e.Payload.(*RoleAssignedPayload).Team; got != p.Team {
			t.Fatalf("role event team = %s, player team = %s", got, p.Team)
		}
	}

	imposters, crew := 0, 0
	for _, p := range w.Players {
		switch p.Team {
		case TeamImposter:
			imposters++
		case TeamCrew:
			crew++
		default:
			t.Fatalf("player %s left with team %s", p.ID, p.Team)
		}
	}
	if imposters != 1 || crew != 3 {
		t.Fatalf("teams = %d imposters / %d crew, want 1 / 3", imposters, crew)
	}
}

func TestRoleAssignmentIsDeterministicForSeed(t *testing.T) {
	teamsFor := func(seed int64) []Team {
		w := NewWorld("ROOM01", DefaultSettings(), NewSeededRoleAssigner(seed))
		for _, id := range []string{"a", "b", "c", "d"} {
			if _, err := w.Join(id, ""); err != nil {
				t.Fatalf("join %s: %v", id, err)
			}
		}
		teams := make([]Team, 0, 4)
		for _, p := range w.Players {
			teams = append(teams, p.Team)
		}
		return teams
	}

	for seed := int64(0); seed < 20; seed++ {
		first := teamsFor(seed)
		second := teamsFor(seed)
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("seed %d: %v != %v", seed, first, second)
		}
	}
}

func TestRandomRoleAssignerCoversEverySeat(t *testing.T) {
	a := NewRandomRoleAssigner(rand.New(rand.NewSource(42)), 1)
	seen := make(map[int]bool)
	for i := 0; i < 200; i++ {
		teams := a.AssignTeams(4)
		imposters := 0
		for idx, team := range teams {
			if team == TeamImposter {
				imposters++
				seen[idx] = true
			}
		}
		if imposters != 1 {
			t.Fatalf("draw %d: %d imposters, want 1", i, imposters)
		}
	}
	if len(seen) != 4 {
		t.Fatalf("imposter only ever drawn at seats %v", seen)
	}
}

func TestRandomRoleAssignerMultipleImposters(t *testing.T) {
	tests := []struct {
		name      string
		players   int
		imposters int
		want      int
	}{
		{"two of six", 6, 2, 2},
		{"clamped to leave one crew", 3, 5, 2},
		{"at least one", 4, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewRandomRoleAssigner(rand.New(rand.NewSource(3)), tt.imposters)
			teams := a.AssignTeams(tt.players)
			if len(teams) != tt.players {
				t.Fatalf("len = %d, want %d", len(teams), tt.players)
			}
			got := 0
			for _, team := range teams {
				if team.IsImposter() {
					got++
				}
			}
			if got != tt.want {
				t.Fatalf("imposters = %d, want %d", got, tt.want)
			}
		})
	}
}
