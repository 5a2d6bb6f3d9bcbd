package domain

// ReportBody reports the first unreported body within discovery radius of the
// reporter and opens a vote. Finding nothing is not an error.
func (w *World) ReportBody(reporterID string) ([]*GameEvent, error) {
	reporter, err := w.GetPlayer(reporterID)
	if err != nil {
		return nil, err
	}

	body := w.findBody(reporter)
	if body == nil {
		return nil, nil
	}

	body.Reported = true
	w.Vote = NewVote(reporter.ID, body.ID)
	w.ballots.clear()

	return []*GameEvent{
		NewEvent(EventBodyReported, w.ID, &BodyReportedPayload{
			Reporter: reporter.ID,
			DeadBody: body.ID,
		}, "Player %s reported the body of %s", reporter.ID, body.ID),
		NewEvent(EventVoteStarted, w.ID, &VoteStartedPayload{
			Reporter:      reporter.ID,
			DeadBody:      body.ID,
			RequiredVotes: w.AliveCount(),
		}, "Vote started, %d votes required", w.AliveCount()),
	}, nil
}

// findBody returns the first unreported body in creation order within reach.
// First match, not nearest.
func (w *World) findBody(reporter *Player) *CrewBody {
	for _, b := range w.Bodies {
		if b.Reported {
			continue
		}
		if reporter.Location.Within(b.Location, w.Settings.DiscoveryRadius) {
			return b
		}
	}
	return nil
}
