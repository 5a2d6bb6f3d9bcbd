package domain

import (
	"reflect"
	"testing"
)

// worldWithOpenVote returns a started world with an open vote and all four players alive
func worldWithOpenVote(t *testing.T) *World {
	t.Helper()
	w := newStartedWorld(t)
	w.Vote = NewVote("p2", "x")
	return w
}

func castAll(t *testing.T, w *World, ballots [][2]string) []*GameEvent {
	t.Helper()
	var events []*GameEvent
	for _, b := range ballots {
		e, err := w.SendVote(b[0], b[1])
		if err != nil {
			t.Fatalf("vote %s -> %s: %v", b[0], b[1], err)
		}
		events = append(events, e...)
	}
	return events
}

func TestVoteConclusiveMajority(t *testing.T) {
	w := worldWithOpenVote(t)

	castAll(t, w, [][2]string{{"p1", "p3"}, {"p2", "p3"}, {"p4", "p3"}})
	if !w.Vote.InProgress {
		t.Fatalf("vote closed before every alive player voted")
	}
	if voted, required := w.VoteProgress(); voted != 3 || required != 4 {
		t.Fatalf("progress = %d/%d, want 3/4", voted, required)
	}

	events := castAll(t, w, [][2]string{{"p3", "p1"}})

	if w.Vote.InProgress {
		t.Fatalf("vote should close on the fourth ballot")
	}
	if w.Vote.Result == nil || !w.Vote.Result.Conclusive || w.Vote.Result.Player != "p3" {
		t.Fatalf("result = %+v, want conclusive for p3", w.Vote.Result)
	}
	wantTally := []TallyEntry{
		{Votee: "p3", Voters: []string{"p1", "p2", "p4"}},
		{Votee: "p1", Voters: []string{"p3"}},
	}
	if !reflect.DeepEqual(w.Vote.Tally, wantTally) {
		t.Fatalf("tally = %+v, want %+v", w.Vote.Tally, wantTally)
	}
	if countEvents(events, EventVoteConcluded) != 1 {
		t.Fatalf("events = %+v, want VOTE_CONCLUDED", events)
	}
	if w.ballots.size() != 0 {
		t.Fatalf("ballots should be cleared after tally")
	}
}

func TestVoteTieIsInconclusive(t *testing.T) {
	w := worldWithOpenVote(t)
	castAll(t, w, [][2]string{{"p1", "p3"}, {"p2", "p3"}, {"p3", "p4"}, {"p4", "p4"}})

	if w.Vote.InProgress {
		t.Fatalf("vote should be closed")
	}
	if w.Vote.Result == nil || w.Vote.Result.Conclusive || w.Vote.Result.Player != "" {
		t.Fatalf("result = %+v, want inconclusive", w.Vote.Result)
	}
	if len(w.Vote.Tally) != 2 {
		t.Fatalf("tally = %+v, want 2 entries", w.Vote.Tally)
	}
}

func TestVoteExactHalfIsNotMajority(t *testing.T) {
	w := worldWithOpenVote(t)
	castAll(t, w, [][2]string{{"p1", "p2"}, {"p2", "p1"}, {"p3", "p2"}, {"p4", "p3"}})

	if w.Vote.Result == nil || w.Vote.Result.Conclusive {
		t.Fatalf("2 of 4 votes must not be conclusive: %+v", w.Vote.Result)
	}
}

func TestConclusiveVoteDoesNotEliminate(t *testing.T) {
	w := worldWithOpenVote(t)
	castAll(t, w, [][2]string{{"p2", "p1"}, {"p3", "p1"}, {"p4", "p1"}, {"p1", "p2"}})

	if w.Vote.Result == nil || w.Vote.Result.Player != "p1" {
		t.Fatalf("result = %+v, want p1 elected", w.Vote.Result)
	}
	p1, _ := w.GetPlayer("p1")
	if !p1.IsAlive() {
		t.Fatalf("elected player status changed")
	}
	if w.Status != GameOngoing {
		t.Fatalf("status = %s, want %s", w.Status, GameOngoing)
	}
}

func TestVoteQuorumIsLive(t *testing.T) {
	w := worldWithOpenVote(t)
	castAll(t, w, [][2]string{{"p2", "p1"}})

	// p1 kills p4 mid-vote: quorum drops from 4 to 3
	for _, p := range w.Players {
		p.Location = Location{X: 10000, Y: 10000}
	}
	place(t, w, "p1", 0, 0)
	place(t, w, "p4", 0, 0)
	if _, err := w.Attack("p1"); err != nil {
		t.Fatalf("attack: %v", err)
	}

	castAll(t, w, [][2]string{{"p3", "p1"}})
	if !w.Vote.InProgress {
		t.Fatalf("vote closed with 2 of 3 ballots")
	}
	castAll(t, w, [][2]string{{"p1", "p2"}})

	if w.Vote.InProgress {
		t.Fatalf("vote should close after 3 ballots with 3 alive")
	}
	// 2 votes > 3/2
	if !w.Vote.Result.Conclusive || w.Vote.Result.Player != "p1" {
		t.Fatalf("result = %+v, want conclusive for p1", w.Vote.Result)
	}
}

func TestVoteClosesWhenVoterDiesAfterVoting(t *testing.T) {
	w := worldWithOpenVote(t)
	castAll(t, w, [][2]string{{"p2", "p1"}, {"p3", "p1"}})

	for _, p := range w.Players {
		p.Location = Location{X: 10000, Y: 10000}
	}
	place(t, w, "p1", 0, 0)
	place(t, w, "p3", 0, 0)
	if _, err := w.Attack("p1"); err != nil {
		t.Fatalf("attack: %v", err)
	}

	// 3 ballots recorded, 3 alive
	castAll(t, w, [][2]string{{"p4", "p2"}})
	if w.Vote.InProgress {
		t.Fatalf("vote should close once ballots reach the alive count")
	}
	if !w.Vote.Result.Conclusive || w.Vote.Result.Player != "p1" {
		t.Fatalf("result = %+v, want conclusive for p1", w.Vote.Result)
	}
}

func TestVoteStaysOpenWhenBallotsExceedAlive(t *testing.T) {
	w := worldWithOpenVote(t)
	castAll(t, w, [][2]string{{"p2", "p1"}, {"p3", "p1"}})

	// p1 kills both voters: 2 alive, 2 ballots already recorded
	for _, p := range w.Players {
		p.Location = Location{X: 10000, Y: 10000}
	}
	place(t, w, "p1", 0, 0)
	place(t, w, "p2", 0, 0)
	place(t, w, "p3", 0, 0)
	for i := 0; i < 2; i++ {
		if _, err := w.Attack("p1"); err != nil {
			t.Fatalf("attack: %v", err)
		}
	}
	if w.AliveCount() != 2 || w.Status != GameOngoing {
		t.Fatalf("alive = %d status = %s, want 2 %s", w.AliveCount(), w.Status, GameOngoing)
	}

	events := castAll(t, w, [][2]string{{"p4", "p1"}})
	if countEvents(events, EventVoteConcluded) != 0 {
		t.Fatalf("vote concluded with 3 ballots and 2 alive")
	}
	if !w.Vote.InProgress || w.Vote.Result != nil {
		t.Fatalf("vote = %+v, want still in progress without result", w.Vote)
	}
	if voted, required := w.VoteProgress(); voted != 3 || required != 2 {
		t.Fatalf("progress = %d/%d, want 3/2", voted, required)
	}
}

func TestNewReportResetsBallots(t *testing.T) {
	w := worldWithOpenVote(t)
	castAll(t, w, [][2]string{{"p2", "p1"}})

	spreadCrew(t, w)
	place(t, w, "p1", 0, 0)
	place(t, w, "p3", 0, 0)
	if _, err := w.Attack("p1"); err != nil {
		t.Fatalf("attack: %v", err)
	}
	place(t, w, "p2", 0, 0)
	if _, err := w.ReportBody("p2"); err != nil {
		t.Fatalf("report: %v", err)
	}

	if voted, _ := w.VoteProgress(); voted != 0 {
		t.Fatalf("ballots carried over into the new vote: %d", voted)
	}
	if _, err := w.SendVote("p2", "p1"); err != nil {
		t.Fatalf("p2 should be able to vote in the new round: %v", err)
	}
}

func TestSendVoteRejections(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, w *World)
		voter string
		votee string
		want  error
	}{
		{
			name:  "unknown voter",
			voter: "nobody", votee: "p1",
			want: ErrNotJoined,
		},
		{
			name:  "no vote",
			setup: func(t *testing.T, w *World) { w.Vote = nil },
			voter: "p1", votee: "p2",
			want: ErrNoVoteInProgress,
		},
		{
			name:  "vote closed",
			setup: func(t *testing.T, w *World) { w.Vote.InProgress = false },
			voter: "p1", votee: "p2",
			want: ErrNoVoteInProgress,
		},
		{
			name: "duplicate",
			setup: func(t *testing.T, w *World) {
				castAll(t, w, [][2]string{{"p1", "p2"}})
			},
			voter: "p1", votee: "p3",
			want: ErrDuplicateVote,
		},
		{
			name: "dead voter",
			setup: func(t *testing.T, w *World) {
				p, _ := w.GetPlayer("p2")
				p.Status = StatusGhost
			},
			voter: "p2", votee: "p3",
			want: ErrVoterDead,
		},
		{
			name:  "unknown votee",
			voter: "p1", votee: "nobody",
			want: ErrUnknownVotee,
		},
		{
			name: "dead votee",
			setup: func(t *testing.T, w *World) {
				p, _ := w.GetPlayer("p3")
				p.Status = StatusGhost
			},
			voter: "p1", votee: "p3",
			want: ErrVoteeDead,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := worldWithOpenVote(t)
			if tt.setup != nil {
				tt.setup(t, w)
			}
			assertRejected(t, w, tt.want, func() ([]*GameEvent, error) {
				return w.SendVote(tt.voter, tt.votee)
			})
		})
	}
}

func TestVoteCastHidesChoice(t *testing.T) {
	w := worldWithOpenVote(t)
	events := castAll(t, w, [][2]string{{"p1", "p2"}})
	if len(events) != 1 || events[0].Type != EventVoteCast {
		t.Fatalf("events = %+v, want one VOTE_CAST", events)
	}
	payload := events[0].Payload.(*VoteCastPayload)
	if payload.VoterID != "p1" || payload.VotedCount != 1 || payload.RequiredVotes != 4 {
		t.Fatalf("payload = %+v", payload)
	}

	snap := w.ViewerState("p3")
	if snap.VotedCount != 1 || snap.Vote.Tally != nil {
		t.Fatalf("snapshot leaks ballots: %+v", snap)
	}
}
