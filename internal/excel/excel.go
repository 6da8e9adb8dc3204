package excel

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/derekprior/minitourney/internal/config"
	"github.com/derekprior/minitourney/internal/layout"
)

// Sheet names and headers shared with the validator.
const (
	TournamentSheet = "Tournament"
	OptionsSheet    = "Options"
	TimeFormat      = "15:04"
)

// OptionHeaders are the columns of every option sheet.
var OptionHeaders = []string{"Timeslot", "Pitch", "Time", "Team 1", "Team 2"}

// OptionSheet returns the sheet name for the 1-based option number n.
func OptionSheet(n int) string {
	return fmt.Sprintf("Option %d", n)
}

// OptionNumber parses a sheet name produced by OptionSheet.
func OptionNumber(sheet string) (int, bool) {
	rest, ok := strings.CutPrefix(sheet, "Option ")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Generate creates a workbook with the tournament details, a summary of
// every layout option and one timetable sheet per option.
func Generate(cfg *config.Config, layouts []layout.Layout) (*excelize.File, error) {
	f := excelize.NewFile()

	// Set default font for the workbook
	f.SetDefaultFont("Arial")

	if err := writeTournamentSheet(f, cfg); err != nil {
		return nil, fmt.Errorf("writing tournament sheet: %w", err)
	}

	if err := writeOptionsSheet(f, layouts); err != nil {
		return nil, fmt.Errorf("writing options sheet: %w", err)
	}

	for i := range layouts {
		if err := writeOptionSheet(f, i+1, &layouts[i]); err != nil {
			return nil, fmt.Errorf("writing %s: %w", OptionSheet(i+1), err)
		}
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

func headerStyle(f *excelize.File) int {
	style, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 14, Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	return style
}

func writeHeaders(f *excelize.File, sheet string, headers []string) {
	for i, h := range headers {
		f.SetCellValue(sheet, cellRef(i+1, 1), h)
	}
	if style := headerStyle(f); style != 0 {
		f.SetCellStyle(sheet, cellRef(1, 1), cellRef(len(headers), 1), style)
	}
}

func writeTournamentSheet(f *excelize.File, cfg *config.Config) error {
	sheet := TournamentSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	date := ""
	if cfg.Date != nil {
		date = cfg.Date.Time.Format("01/02/2006")
	}
	minutes, err := layout.GameDuration(cfg.Timing.HalfDuration, cfg.Timing.HalfTimeDuration, cfg.Timing.SwapDuration)
	if err != nil {
		return err
	}

	rows := [][2]any{
		{"Name", cfg.Name},
		{"Location", cfg.Location},
		{"Date", date},
		{"Start", cfg.StartTime.String()},
		{"Pitches", cfg.Pitches},
		{"Game length (min)", minutes},
		{"Teams", len(cfg.Teams)},
	}
	for i, r := range rows {
		f.SetCellValue(sheet, cellRef(1, i+1), r[0])
		f.SetCellValue(sheet, cellRef(2, i+1), r[1])
	}

	labelStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Family: "Arial"}})
	if labelStyle != 0 {
		f.SetCellStyle(sheet, "A1", cellRef(1, len(rows)), labelStyle)
	}

	// Team list below the details
	start := len(rows) + 2
	f.SetCellValue(sheet, cellRef(1, start), "Team")
	for i, team := range cfg.Teams {
		f.SetCellValue(sheet, cellRef(1, start+1+i), team)
	}

	f.SetColWidth(sheet, "A", "A", 22)
	f.SetColWidth(sheet, "B", "B", 30)
	return nil
}

func writeOptionsSheet(f *excelize.File, layouts []layout.Layout) error {
	sheet := OptionsSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	writeHeaders(f, sheet, []string{"Option", "ID", "Timeslots", "Pitches", "Duration", "Games", "Bye Games"})

	for i, l := range layouts {
		row := i + 2
		f.SetCellValue(sheet, cellRef(1, row), i+1)
		f.SetCellValue(sheet, cellRef(2, row), l.ID.String())
		f.SetCellValue(sheet, cellRef(3, row), len(l.Timeslots))
		f.SetCellValue(sheet, cellRef(4, row), PitchSummary(l.PitchCounts()))
		f.SetCellValue(sheet, cellRef(5, row), FormatDuration(l.Duration))
		f.SetCellValue(sheet, cellRef(6, row), l.RealGames)
		f.SetCellValue(sheet, cellRef(7, row), l.ByeGames)
	}

	widths := map[string]float64{"A": 10, "B": 40, "C": 12, "D": 12, "E": 12, "F": 10, "G": 12}
	for col, w := range widths {
		f.SetColWidth(sheet, col, col, w)
	}
	return nil
}

func writeOptionSheet(f *excelize.File, n int, l *layout.Layout) error {
	sheet := OptionSheet(n)
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	writeHeaders(f, sheet, OptionHeaders)

	row := 2
	for t, ts := range l.Timeslots {
		for p, g := range ts.Groups {
			for _, game := range g.Games {
				f.SetCellValue(sheet, cellRef(1, row), t+1)
				f.SetCellValue(sheet, cellRef(2, row), p+1)
				f.SetCellValue(sheet, cellRef(3, row), game.Start.Format(TimeFormat))
				f.SetCellValue(sheet, cellRef(4, row), game.Team1.Name)
				f.SetCellValue(sheet, cellRef(5, row), game.Team2.Name)
				row++
			}
		}
	}

	f.SetColWidth(sheet, "A", "C", 10)
	f.SetColWidth(sheet, "D", "E", 24)

	// Conditional formatting: bye games get grey
	if row > 2 {
		greyFill, _ := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9D9D9"}},
			Font: &excelize.Font{Color: "#7F7F7F", Family: "Arial"},
		})
		formula := fmt.Sprintf(`OR($D2="%s",$E2="%s")`, layout.Bye.Name, layout.Bye.Name)
		f.SetConditionalFormat(sheet, fmt.Sprintf("A2:E%d", row-1), []excelize.ConditionalFormatOptions{
			{
				Type:     "formula",
				Criteria: formula,
				Format:   &greyFill,
			},
		})
	}
	return nil
}

// FormatDuration renders d as hours and minutes, e.g. "3:45".
func FormatDuration(d time.Duration) string {
	m := int(d.Round(time.Minute) / time.Minute)
	return fmt.Sprintf("%d:%02d", m/60, m%60)
}

// PitchSummary renders pitches per timeslot, e.g. "2/2/1".
func PitchSummary(counts []int) string {
	parts := make([]string, len(counts))
	for i, c := range counts {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, "/")
}

func cellRef(col, row int) string {
	return fmt.Sprintf("%s%d", colLetter(col), row)
}

func colLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
