package app

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"crewhunt/internal/domain"
)

func newTestHub(t *testing.T, seed int64) *GameHub {
	t.Helper()
	h := NewGameHub(HubOptions{Settings: domain.DefaultSettings(), Seed: seed}, testLogger())
	t.Cleanup(h.Close)
	return h
}

func TestHubCreateAndGetSession(t *testing.T) {
	h := newTestHub(t, 1)

	session, err := h.CreateGame()
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	code := session.GetRoomCode()
	if len(code) != DefaultRoomCodeLength {
		t.Fatalf("room code %q has length %d, want %d", code, len(code), DefaultRoomCodeLength)
	}
	for _, r := range code {
		if !strings.ContainsRune(RoomCodeChars, r) {
			t.Fatalf("room code %q contains %q", code, r)
		}
	}

	got, err := h.GetSession(code)
	if err != nil || got != session {
		t.Fatalf("get session = %v, %v", got, err)
	}
	if _, err := h.GetSession("NOPE00"); !errors.Is(err, domain.ErrGameNotFound) {
		t.Fatalf("err = %v, want %v", err, domain.ErrGameNotFound)
	}
}

func TestHubCountsPlayers(t *testing.T) {
	h := newTestHub(t, 1)
	a, _ := h.CreateGame()
	b, _ := h.CreateGame()

	for i := 0; i < 3; i++ {
		if err := a.Join(fmt.Sprintf("a%d", i), ""); err != nil {
			t.Fatalf("join: %v", err)
		}
	}
	if err := b.Join("b0", ""); err != nil {
		t.Fatalf("join: %v", err)
	}

	if got := h.GetSessionCount(); got != 2 {
		t.Fatalf("sessions = %d, want 2", got)
	}
	if got := h.GetTotalPlayerCount(); got != 4 {
		t.Fatalf("players = %d, want 4", got)
	}

	h.DeleteSession(a.GetRoomCode())
	if got := h.GetSessionCount(); got != 1 {
		t.Fatalf("sessions after delete = %d, want 1", got)
	}
}

func TestHubSeedMakesRoleAssignmentReproducible(t *testing.T) {
	teams := func() []domain.Team {
		h := newTestHub(t, 99)
		s, err := h.CreateGame()
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		for _, id := range []string{"p1", "p2", "p3", "p4"} {
			if err := s.Join(id, ""); err != nil {
				t.Fatalf("join: %v", err)
			}
		}
		snap := s.ViewerState("p1")
		out := make([]domain.Team, 0, len(snap.Players))
		for _, p := range snap.Players {
			out = append(out, p.Team)
		}
		return out
	}

	first, second := teams(), teams()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("same seed gave %v and %v", first, second)
		}
	}
}

func TestHubCleanupStaleGames(t *testing.T) {
	h := newTestHub(t, 1)
	abandoned, _ := h.CreateGame()
	active, _ := h.CreateGame()
	active.RegisterClient("p1", newFakeClient("p1"))

	removed := h.cleanupStaleGames(time.Now().Add(3 * time.Hour))
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if _, err := h.GetSession(abandoned.GetRoomCode()); !errors.Is(err, domain.ErrGameNotFound) {
		t.Fatalf("abandoned game still registered")
	}
	if _, err := h.GetSession(active.GetRoomCode()); err != nil {
		t.Fatalf("active game removed: %v", err)
	}
}
