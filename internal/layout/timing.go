package layout

import "time"

// schedule assigns start times to every generated game and fills in the
// layout's duration and game counts.
//
// All pitches of a timeslot start from the same clock. A bye game is given
// the slot of the real game before it and does not advance the clock. Each
// timeslot starts once the first pitch of the previous one has played its
// real games.
func (l *Layout) schedule(start time.Time, gameDuration time.Duration) {
	l.ByeGames, l.RealGames = 0, 0

	slotStart := start
	for t := range l.Timeslots {
		groups := l.Timeslots[t].Groups
		for g := range groups {
			clock := slotStart
			games := groups[g].Games
			for i := range games {
				if games[i].IsBye() {
					games[i].Start = clock.Add(-gameDuration)
					l.ByeGames++
					continue
				}
				games[i].Start = clock
				clock = clock.Add(gameDuration)
				l.RealGames++
			}
		}
		if len(groups) > 0 {
			slotStart = slotStart.Add(gameDuration * time.Duration(realGames(groups[0].Games)))
		}
	}

	l.Duration = l.span(gameDuration)
}

// span is the time from the first game on the first pitch to the end of
// the last game on the first pitch of the last timeslot.
func (l *Layout) span(gameDuration time.Duration) time.Duration {
	if len(l.Timeslots) == 0 {
		return 0
	}
	first := l.Timeslots[0]
	last := l.Timeslots[len(l.Timeslots)-1]
	if len(first.Groups) == 0 || len(last.Groups) == 0 {
		return 0
	}
	firstGames := first.Groups[0].Games
	lastGames := last.Groups[0].Games
	if len(firstGames) == 0 || len(lastGames) == 0 {
		return 0
	}
	return lastGames[len(lastGames)-1].Start.Sub(firstGames[0].Start) + gameDuration
}

func realGames(games []Game) int {
	n := 0
	for _, g := range games {
		if !g.IsBye() {
			n++
		}
	}
	return n
}
