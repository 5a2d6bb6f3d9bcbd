package domain

import "errors"

// Domain errors
var (
	ErrGameNotFound     = errors.New("game not found")
	ErrDuplicateJoin    = errors.New("already joined")
	ErrGameClosed       = errors.New("game is no longer accepting new players")
	ErrNotJoined        = errors.New("not joined")
	ErrGameNotStarted   = errors.New("game has not started yet")
	ErrGameFinished     = errors.New("game already finished")
	ErrGameNotOngoing   = errors.New("game is not ongoing")
	ErrNotImposter      = errors.New("only imposters may attack")
	ErrNoVoteInProgress = errors.New("no vote in progress")
	ErrDuplicateVote    = errors.New("you may not vote multiple times")
	ErrVoterDead        = errors.New("only alive players are allowed to vote")
	ErrUnknownVotee     = errors.New("voted for player hasn't joined")
	ErrVoteeDead        = errors.New("you may only vote for players that are still alive")
)
