package domain

// TallyEntry groups the voters that chose the same votee
type TallyEntry struct {
	Votee  string   `json:"votee"`
	Voters []string `json:"voters"`
}

// VoteResult is the outcome of a closed voting round.
// Player is only set when Conclusive is true.
type VoteResult struct {
	Conclusive bool   `json:"conclusive"`
	Player     string `json:"player,omitempty"`
}

// Vote is the record of the current (or last) voting round
type Vote struct {
	InProgress bool         `json:"inProgress"`
	Reporter   string       `json:"reporter"`
	DeadBody   string       `json:"deadBody"`
	Tally      []TallyEntry `json:"tally,omitempty"`
	Result     *VoteResult  `json:"result,omitempty"`
}

// NewVote opens a voting round for a reported body
func NewVote(reporterID, bodyID string) *Vote {
	return &Vote{
		InProgress: true,
		Reporter:   reporterID,
		DeadBody:   bodyID,
	}
}

func (v *Vote) clone() *Vote {
	c := *v
	if v.Tally != nil {
		c.Tally = make([]TallyEntry, len(v.Tally))
		for i, e := range v.Tally {
			c.Tally[i] = TallyEntry{Votee: e.Votee, Voters: append([]string(nil), e.Voters...)}
		}
	}
	if v.Result != nil {
		r := *v.Result
		c.Result = &r
	}
	return &c
}

// ballotBox holds the transient per-voter choices of the open round.
// Voters are kept in the order their ballots arrived.
type ballotBox struct {
	choices map[string]string // voterID -> voteeID
	order   []string
}

func newBallotBox() ballotBox {
	return ballotBox{choices: make(map[string]string)}
}

func (b *ballotBox) has(voterID string) bool {
	_, ok := b.choices[voterID]
	return ok
}

func (b *ballotBox) record(voterID, voteeID string) {
	b.choices[voterID] = voteeID
	b.order = append(b.order, voterID)
}

func (b *ballotBox) size() int {
	return len(b.order)
}

func (b *ballotBox) clear() {
	b.choices = make(map[string]string)
	b.order = nil
}

// tally groups ballots by votee, votees in the order they first received a vote
func (b *ballotBox) tally() []TallyEntry {
	entries := make([]TallyEntry, 0)
	index := make(map[string]int)

	for _, voter := range b.order {
		votee := b.choices[voter]
		i, ok := index[votee]
		if !ok {
			i = len(entries)
			index[votee] = i
			entries = append(entries, TallyEntry{Votee: votee})
		}
		entries[i].Voters = append(entries[i].Voters, voter)
	}
	return entries
}

func (b *ballotBox) clone() ballotBox {
	c := ballotBox{
		choices: make(map[string]string, len(b.choices)),
		order:   append([]string(nil), b.order...),
	}
	for k, v := range b.choices {
		c.choices[k] = v
	}
	return c
}

// decide requires a strict majority of required votes
func decide(entries []TallyEntry, required int) VoteResult {
	for _, e := range entries {
		if 2*len(e.Voters) > required {
			return VoteResult{Conclusive: true, Player: e.Votee}
		}
	}
	return VoteResult{Conclusive: false}
}
