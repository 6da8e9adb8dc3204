package layout

// RoundRobin pairs every member of the group's roster with every other
// member exactly once using the circle method.
//
// The bye team is appended first when the group needs one. An even roster
// holds its last member fixed as the hub, which meets whoever sits in the
// last rotating position each round. An odd roster has no hub, so the team
// in the last position sits out that round. Games come back unscheduled,
// in the order the rotation produced them.
func RoundRobin(g Group) []Game {
	roster := make([]Team, len(g.Teams), len(g.Teams)+1)
	copy(roster, g.Teams)
	if g.ByeNeeded {
		roster = append(roster, Bye)
	}
	if len(roster) < 2 {
		return nil
	}

	var hub *Team
	rotating := roster
	if len(roster)%2 == 0 {
		hub = &roster[len(roster)-1]
		rotating = roster[:len(roster)-1]
	}

	n := len(rotating)
	games := make([]Game, 0, len(roster)*(len(roster)-1)/2)
	for range n {
		for i := 0; i < n/2; i++ {
			games = append(games, Game{Team1: rotating[n-2-i], Team2: rotating[i]})
		}
		if hub != nil {
			games = append(games, Game{Team1: *hub, Team2: rotating[n-1]})
		}
		rotate(rotating)
	}
	return games
}

// rotate moves every element one place right, wrapping the last to the front.
func rotate(teams []Team) {
	if len(teams) < 2 {
		return
	}
	last := teams[len(teams)-1]
	copy(teams[1:], teams[:len(teams)-1])
	teams[0] = last
}
