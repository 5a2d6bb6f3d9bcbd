package domain

// SendVote records a ballot in the open voting round. The round closes
// when the ballot count equals the number of alive players, counted as
// each ballot arrives. If voters die after voting the count can overshoot
// and the round stays open.
func (w *World) SendVote(voterID, voteeID string) ([]*GameEvent, error) {
	voter, err := w.GetPlayer(voterID)
	if err != nil {
		return nil, err
	}

	if w.Vote == nil || !w.Vote.InProgress {
		return nil, ErrNoVoteInProgress
	}

	if w.ballots.has(voterID) {
		return nil, ErrDuplicateVote
	}

	// Also rejects the eliminated player trying to vote.
	if !voter.IsAlive() {
		return nil, ErrVoterDead
	}

	votee, err := w.GetPlayer(voteeID)
	if err != nil {
		return nil, ErrUnknownVotee
	}
	if !votee.IsAlive() {
		return nil, ErrVoteeDead
	}

	w.ballots.record(voterID, voteeID)
	required := w.AliveCount()

	events := []*GameEvent{
		NewEvent(EventVoteCast, w.ID, &VoteCastPayload{
			VoterID:       voterID,
			VotedCount:    w.ballots.size(),
			RequiredVotes: required,
		}, "Player %s voted (%d/%d)", voterID, w.ballots.size(), required),
	}

	if w.ballots.size() == required {
		events = append(events, w.closeVote(required))
	}

	return events, nil
}

// closeVote tallies the ballots and ends the round.
// A conclusive result does not eliminate the elected player.
func (w *World) closeVote(required int) *GameEvent {
	tally := w.ballots.tally()
	result := decide(tally, required)

	w.Vote.Tally = tally
	w.Vote.Result = &result
	w.Vote.InProgress = false
	w.ballots.clear()

	if result.Conclusive {
		return NewEvent(EventVoteConcluded, w.ID, &VoteConcludedPayload{
			Tally:  tally,
			Result: result,
		}, "Vote concluded: %s was elected", result.Player)
	}
	return NewEvent(EventVoteConcluded, w.ID, &VoteConcludedPayload{
		Tally:  tally,
		Result: result,
	}, "Vote concluded: inconclusive")
}

// VoteProgress returns how many ballots were cast in the open round and how many are required right now
func (w *World) VoteProgress() (voted, required int) {
	if w.Vote == nil || !w.Vote.InProgress {
		return 0, 0
	}
	return w.ballots.size(), w.AliveCount()
}
