package validator

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/derekprior/minitourney/internal/config"
	"github.com/derekprior/minitourney/internal/excel"
	"github.com/derekprior/minitourney/internal/layout"
)

// Violation represents a problem found in one option of an exported workbook.
type Violation struct {
	Option  int
	Row     int
	Type    string // "error" or "warning"
	Message string
}

// Validate reads an exported layouts workbook and checks every option sheet
// against the config's team list and the round-robin rules.
func Validate(cfg *config.Config, path string) ([]Violation, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	options := 0
	var violations []Violation
	for _, sheet := range f.GetSheetList() {
		n, ok := excel.OptionNumber(sheet)
		if !ok {
			continue
		}
		options++

		games, err := readGames(f, sheet)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", sheet, err)
		}

		var found []Violation
		found = append(found, checkDoubleBooking(games)...)
		found = append(found, checkSinglePitch(games)...)
		found = append(found, checkRoundRobin(games)...)
		found = append(found, checkTeamCompleteness(cfg, games)...)
		found = append(found, checkTimeslotFinish(games)...)
		for i := range found {
			found[i].Option = n
		}
		violations = append(violations, found...)
	}

	if options == 0 {
		return nil, fmt.Errorf("no option sheets found in %s", path)
	}
	return violations, nil
}

type parsedGame struct {
	Row      int
	Timeslot int
	Pitch    int
	Start    time.Time
	Team1    string
	Team2    string
}

func (g parsedGame) isBye() bool {
	return g.Team1 == layout.Bye.Name || g.Team2 == layout.Bye.Name
}

type pitchKey struct {
	timeslot, pitch int
}

func readGames(f *excelize.File, sheet string) ([]parsedGame, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s is empty", sheet)
	}

	var games []parsedGame
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) < len(excel.OptionHeaders) || row[0] == "" {
			continue
		}
		timeslot, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid timeslot %q", i+1, row[0])
		}
		pitch, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid pitch %q", i+1, row[1])
		}
		start, err := time.Parse(excel.TimeFormat, row[2])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid time %q", i+1, row[2])
		}
		games = append(games, parsedGame{
			Row:      i + 1,
			Timeslot: timeslot,
			Pitch:    pitch,
			Start:    start,
			Team1:    row[3],
			Team2:    row[4],
		})
	}
	return games, nil
}

// checkDoubleBooking reports a team with two real games at the same time.
func checkDoubleBooking(games []parsedGame) []Violation {
	type teamTime struct {
		team  string
		start time.Time
	}
	seen := make(map[teamTime]int)
	var violations []Violation
	for _, g := range games {
		if g.isBye() {
			continue
		}
		for _, team := range []string{g.Team1, g.Team2} {
			key := teamTime{team, g.Start}
			if prev, ok := seen[key]; ok {
				violations = append(violations, Violation{
					Row:     g.Row,
					Type:    "error",
					Message: fmt.Sprintf("%s plays twice at %s (rows %d and %d)", team, g.Start.Format(excel.TimeFormat), prev, g.Row),
				})
				continue
			}
			seen[key] = g.Row
		}
	}
	return violations
}

// checkSinglePitch reports a team that appears on more than one pitch.
func checkSinglePitch(games []parsedGame) []Violation {
	home := make(map[string]pitchKey)
	reported := make(map[string]bool)
	var violations []Violation
	for _, g := range games {
		key := pitchKey{g.Timeslot, g.Pitch}
		for _, team := range []string{g.Team1, g.Team2} {
			if team == layout.Bye.Name {
				continue
			}
			prev, ok := home[team]
			if !ok {
				home[team] = key
				continue
			}
			if prev != key && !reported[team] {
				reported[team] = true
				violations = append(violations, Violation{
					Row:  g.Row,
					Type: "error",
					Message: fmt.Sprintf("%s plays on timeslot %d pitch %d and timeslot %d pitch %d",
						team, prev.timeslot, prev.pitch, g.Timeslot, g.Pitch),
				})
			}
		}
	}
	return violations
}

// checkRoundRobin reports pitches where some pair of teams does not meet
// exactly once.
func checkRoundRobin(games []parsedGame) []Violation {
	type pair struct{ a, b string }
	byPitch := make(map[pitchKey][]parsedGame)
	var keys []pitchKey
	for _, g := range games {
		k := pitchKey{g.Timeslot, g.Pitch}
		if _, ok := byPitch[k]; !ok {
			keys = append(keys, k)
		}
		byPitch[k] = append(byPitch[k], g)
	}

	var violations []Violation
	for _, k := range keys {
		pitchGames := byPitch[k]
		counts := make(map[pair]int)
		teamSet := make(map[string]bool)
		for _, g := range pitchGames {
			a, b := g.Team1, g.Team2
			if a > b {
				a, b = b, a
			}
			counts[pair{a, b}]++
			teamSet[a] = true
			teamSet[b] = true
		}

		teams := make([]string, 0, len(teamSet))
		for t := range teamSet {
			teams = append(teams, t)
		}
		sort.Strings(teams)

		for i := range teams {
			for j := i + 1; j < len(teams); j++ {
				p := pair{teams[i], teams[j]}
				if c := counts[p]; c != 1 {
					violations = append(violations, Violation{
						Row:  pitchGames[0].Row,
						Type: "error",
						Message: fmt.Sprintf("timeslot %d pitch %d: %s vs %s played %d times",
							k.timeslot, k.pitch, p.a, p.b, c),
					})
				}
			}
		}
		for _, g := range pitchGames {
			if g.Team1 == g.Team2 {
				violations = append(violations, Violation{
					Row:     g.Row,
					Type:    "error",
					Message: fmt.Sprintf("%s plays itself", g.Team1),
				})
			}
		}
	}
	return violations
}

// checkTeamCompleteness reports config teams missing from the option and
// teams in the option that the config does not know.
func checkTeamCompleteness(cfg *config.Config, games []parsedGame) []Violation {
	present := make(map[string]bool)
	for _, g := range games {
		present[g.Team1] = true
		present[g.Team2] = true
	}

	known := make(map[string]bool)
	var violations []Violation
	for _, team := range cfg.Teams {
		known[team] = true
		if !present[team] {
			violations = append(violations, Violation{
				Type:    "error",
				Message: fmt.Sprintf("%s has no games", team),
			})
		}
	}

	var unknown []string
	for team := range present {
		if team != layout.Bye.Name && !known[team] {
			unknown = append(unknown, team)
		}
	}
	sort.Strings(unknown)
	for _, team := range unknown {
		violations = append(violations, Violation{
			Type:    "error",
			Message: fmt.Sprintf("%s is not in the config", team),
		})
	}
	return violations
}

// checkTimeslotFinish warns when pitches of one timeslot finish their real
// games at different times.
func checkTimeslotFinish(games []parsedGame) []Violation {
	last := make(map[pitchKey]time.Time)
	for _, g := range games {
		if g.isBye() {
			continue
		}
		k := pitchKey{g.Timeslot, g.Pitch}
		if g.Start.After(last[k]) {
			last[k] = g.Start
		}
	}

	byTimeslot := make(map[int][]pitchKey)
	for k := range last {
		byTimeslot[k.timeslot] = append(byTimeslot[k.timeslot], k)
	}
	timeslots := make([]int, 0, len(byTimeslot))
	for ts := range byTimeslot {
		timeslots = append(timeslots, ts)
	}
	sort.Ints(timeslots)

	var violations []Violation
	for _, ts := range timeslots {
		keys := byTimeslot[ts]
		sort.Slice(keys, func(i, j int) bool { return keys[i].pitch < keys[j].pitch })
		first := last[keys[0]]
		for _, k := range keys[1:] {
			if !last[k].Equal(first) {
				violations = append(violations, Violation{
					Type: "warning",
					Message: fmt.Sprintf("timeslot %d: pitch %d starts its last game at %s, pitch %d at %s",
						ts, keys[0].pitch, first.Format(excel.TimeFormat), k.pitch, last[k].Format(excel.TimeFormat)),
				})
			}
		}
	}
	return violations
}
