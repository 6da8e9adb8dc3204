package layout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidInput is wrapped by every validation failure returned from this package.
var ErrInvalidInput = errors.New("invalid input")

// Team is a participant on a pitch. The bye team is the only Team with IsBye set.
type Team struct {
	Name  string
	IsBye bool
}

// Bye is the placeholder team added to groups that are short of the largest group size.
var Bye = Team{Name: "BYE", IsBye: true}

// Game is a single pairing with its computed start time.
type Game struct {
	Team1 Team
	Team2 Team
	Start time.Time
}

// IsBye reports whether either side of the game is the bye team.
func (g Game) IsBye() bool {
	return g.Team1.IsBye || g.Team2.IsBye
}

// Group is one pitch within one timeslot.
type Group struct {
	Teams     []Team
	ByeNeeded bool
	Games     []Game
}

// Timeslot holds the groups that play concurrently, one per pitch.
type Timeslot struct {
	Groups []Group
}

// Layout is one fully timed schedule candidate.
type Layout struct {
	ID        uuid.UUID
	Combo     []int
	Timeslots []Timeslot
	Duration  time.Duration
	ByeGames  int
	RealGames int
}

// PitchCounts returns the number of pitches used in each timeslot.
func (l *Layout) PitchCounts() []int {
	counts := make([]int, len(l.Timeslots))
	for i, ts := range l.Timeslots {
		counts[i] = len(ts.Groups)
	}
	return counts
}

// Params are the inputs to Generate. Durations are whole minutes.
type Params struct {
	Teams            []string
	Pitches          int
	HalfDuration     int
	HalfTimeDuration int
	SwapDuration     int
	StartHour        int
	StartMinute      int

	// Date anchors game start times. The zero value means 1970-01-01.
	Date time.Time
}

func (p Params) validate() error {
	if p.Pitches < 1 {
		return fmt.Errorf("%w: pitch count must be at least 1, got %d", ErrInvalidInput, p.Pitches)
	}
	if len(p.Teams) < 3 {
		return fmt.Errorf("%w: at least 3 teams are required, got %d", ErrInvalidInput, len(p.Teams))
	}
	seen := make(map[string]bool, len(p.Teams))
	for _, name := range p.Teams {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: team name must not be empty", ErrInvalidInput)
		}
		if seen[name] {
			return fmt.Errorf("%w: team %q appears more than once", ErrInvalidInput, name)
		}
		seen[name] = true
	}
	if p.StartHour < 0 || p.StartHour > 23 {
		return fmt.Errorf("%w: start hour %d out of range 0-23", ErrInvalidInput, p.StartHour)
	}
	if p.StartMinute < 0 || p.StartMinute > 59 {
		return fmt.Errorf("%w: start minute %d out of range 0-59", ErrInvalidInput, p.StartMinute)
	}
	return nil
}

func (p Params) start() time.Time {
	d := p.Date
	if d.IsZero() {
		d = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), p.StartHour, p.StartMinute, 0, 0, d.Location())
}

// Generate builds every feasible layout for the given teams and pitches.
// An empty result with a nil error means no layout fits.
func Generate(p Params) ([]Layout, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	minutes, err := GameDuration(p.HalfDuration, p.HalfTimeDuration, p.SwapDuration)
	if err != nil {
		return nil, err
	}
	gameDuration := time.Duration(minutes) * time.Minute

	candidates, err := SizeCombos(len(p.Teams), p.Pitches)
	if err != nil {
		return nil, err
	}

	layouts := make([]Layout, 0, len(candidates))
	start := p.start()
	for _, c := range candidates {
		l := Assemble(p.Teams, c)
		for t := range l.Timeslots {
			groups := l.Timeslots[t].Groups
			for g := range groups {
				groups[g].Games = RoundRobin(groups[g])
			}
		}
		l.schedule(start, gameDuration)
		l.ID = layoutID(p.Teams, c)
		layouts = append(layouts, l)
	}
	return layouts, nil
}

var layoutNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/derekprior/minitourney/layout"))

func layoutID(teams []string, c Candidate) uuid.UUID {
	var b strings.Builder
	b.WriteString(strconv.Itoa(c.Timeslots))
	for _, size := range c.Combo {
		b.WriteByte('/')
		b.WriteString(strconv.Itoa(size))
	}
	for _, name := range teams {
		b.WriteByte(0)
		b.WriteString(name)
	}
	return uuid.NewSHA1(layoutNamespace, []byte(b.String()))
}
