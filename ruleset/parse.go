package ruleset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arloliu/zonemap/errs"
	"github.com/arloliu/zonemap/format"
	"github.com/arloliu/zonemap/zone"
)

var (
	monthNames = []string{
		"january", "february", "march", "april", "may", "june",
		"july", "august", "september", "october", "november", "december",
	}
	weekdayNames = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
)

// lookupName matches s, case-insensitively, against a prefix of at least three
// letters of one of names and returns its 1-based position.
func lookupName(s string, names []string, what string) (int, error) {
	lower := strings.ToLower(s)
	if len(lower) >= 3 {
		for i, n := range names {
			if strings.HasPrefix(n, lower) {
				return i + 1, nil
			}
		}
	}

	return 0, fmt.Errorf("%w: %s %q", errs.ErrInvalidRule, what, s)
}

func parseMonth(s string) (int, error) {
	return lookupName(s, monthNames, "month")
}

func parseWeekday(s string) (int, error) {
	return lookupName(s, weekdayNames, "weekday")
}

// parseDay fills the day selector of y from "15", "lastSun", "Sun>=8" or "Sun<=25".
func parseDay(s string, y *zone.YearOffset) error {
	if rest, ok := strings.CutPrefix(s, "last"); ok {
		dow, err := parseWeekday(rest)
		if err != nil {
			return err
		}
		y.DayOfMonth, y.DayOfWeek, y.AdvanceDayOfWeek = -1, dow, false

		return nil
	}

	for _, op := range []string{">=", "<="} {
		name, num, ok := strings.Cut(s, op)
		if !ok {
			continue
		}
		dow, err := parseWeekday(name)
		if err != nil {
			return err
		}
		day, err := strconv.Atoi(num)
		if err != nil {
			return fmt.Errorf("%w: day %q", errs.ErrInvalidRule, s)
		}
		y.DayOfMonth, y.DayOfWeek, y.AdvanceDayOfWeek = day, dow, op == ">="

		return nil
	}

	day, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("%w: day %q", errs.ErrInvalidRule, s)
	}
	y.DayOfMonth, y.DayOfWeek, y.AdvanceDayOfWeek = day, 0, false

	return nil
}

// parseDuration parses [-]h[:mm[:ss]] into seconds.
func parseDuration(s string) (int, error) {
	if s == "" || s == "-" {
		return 0, nil
	}

	sign := 1
	body := s
	if body[0] == '-' {
		sign, body = -1, body[1:]
	}

	parts := strings.Split(body, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("%w: duration %q", errs.ErrInvalidRule, s)
	}

	total := 0
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 || (i > 0 && (len(p) != 2 || v > 59)) {
			return 0, fmt.Errorf("%w: duration %q", errs.ErrInvalidRule, s)
		}
		total = total*60 + v
	}
	for range 3 - len(parts) {
		total *= 60
	}

	return sign * total, nil
}

func parseOffset(s string) (zone.Offset, error) {
	secs, err := parseDuration(s)
	if err != nil {
		return 0, err
	}

	return zone.NewOffset(secs)
}

// parseTime fills the time of day and mode of y. "24:00" becomes midnight of the next
// day.
func parseTime(s string, y *zone.YearOffset) error {
	y.Mode = format.ModeWall
	if n := len(s); n > 0 {
		switch s[n-1] {
		case 'w':
			s = s[:n-1]
		case 's':
			y.Mode, s = format.ModeStandard, s[:n-1]
		case 'u', 'g', 'z':
			y.Mode, s = format.ModeUtc, s[:n-1]
		}
	}

	secs, err := parseDuration(s)
	if err != nil {
		return err
	}
	if secs < 0 || secs > 24*3600 {
		return fmt.Errorf("%w: time of day %q", errs.ErrInvalidRule, s)
	}
	y.TimeOfDay, y.AddDay = secs, false
	if secs == 24*3600 {
		y.TimeOfDay, y.AddDay = 0, true
	}

	return nil
}

// parseTo returns the last year of a rule.
func parseTo(s string, from int) (int, error) {
	switch strings.ToLower(s) {
	case "", "only", "o":
		return from, nil
	case "max", "maximum", "m":
		return zone.MaxYear, nil
	}

	year, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: year %q", errs.ErrInvalidYearRange, s)
	}

	return year, nil
}

// parseYearOffset reads the in/on/at triple shared by rules and untils.
func parseYearOffset(in, on, at string) (zone.YearOffset, error) {
	var y zone.YearOffset

	month, err := parseMonth(in)
	if err != nil {
		return y, err
	}
	y.Month = month
	if err := parseDay(on, &y); err != nil {
		return y, err
	}
	if err := parseTime(at, &y); err != nil {
		return y, err
	}

	return y, y.Validate()
}
