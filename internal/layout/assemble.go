package layout

// teamCursor hands out teams front to back from its own copy of the roster.
type teamCursor struct {
	teams []Team
	next  int
}

func newTeamCursor(names []string) *teamCursor {
	teams := make([]Team, len(names))
	for i, name := range names {
		teams[i] = Team{Name: name}
	}
	return &teamCursor{teams: teams}
}

func (c *teamCursor) take(n int) []Team {
	out := make([]Team, n)
	copy(out, c.teams[c.next:c.next+n])
	c.next += n
	return out
}

// Assemble lays a candidate out as timeslots of groups and fills each group
// with teams in roster order. Games are not generated here.
//
// Every timeslot but the last gets ceil(len(combo)/timeslots) pitches; the
// last takes what remains. A group is flagged for a bye when it is smaller
// than the first group of the combo.
func Assemble(teams []string, c Candidate) Layout {
	combo := make([]int, len(c.Combo))
	copy(combo, c.Combo)

	maxPitches := ceilDiv(len(combo), c.Timeslots)
	lastPitches := len(combo) - (c.Timeslots-1)*maxPitches

	cursor := newTeamCursor(teams)
	l := Layout{
		Combo:     combo,
		Timeslots: make([]Timeslot, c.Timeslots),
	}

	next := 0
	for t := range l.Timeslots {
		pitches := maxPitches
		if t == c.Timeslots-1 {
			pitches = lastPitches
		}
		groups := make([]Group, pitches)
		for p := range groups {
			size := combo[next]
			next++
			groups[p] = Group{
				Teams:     cursor.take(size),
				ByeNeeded: size < combo[0],
			}
		}
		l.Timeslots[t].Groups = groups
	}
	return l
}
