package compiler

import (
	"github.com/arloliu/zonemap/format"
	"github.com/arloliu/zonemap/zone"
)

// Rule is one line of a rule set: from From to To (inclusive), at the date selected by
// YearOffset, the daylight adjustment becomes Savings and Letter fills %s in the
// era's name format.
type Rule struct {
	From       int
	To         int // zone.MaxYear means the rule never ends
	YearOffset zone.YearOffset
	Savings    zone.Offset
	Letter     string
}

// RuleSet is a named group of rules shared by zones.
type RuleSet struct {
	Name  string
	Rules []Rule
}

// Until is the local date and time at which an era ends. The time of day is read on
// the clock named by YearOffset.Mode.
type Until struct {
	Year       int
	YearOffset zone.YearOffset
}

// UntilDate builds an Until for a plain calendar date and time of day in seconds.
func UntilDate(year, month, day, timeOfDay int, mode format.TransitionMode) *Until {
	return &Until{
		Year:       year,
		YearOffset: zone.YearOffset{Mode: mode, Month: month, DayOfMonth: day, TimeOfDay: timeOfDay},
	}
}

// Instant returns the end of the era given the offsets in force at that moment.
func (u *Until) Instant(standard, savings zone.Offset) zone.Instant {
	local := u.YearOffset.OccurrenceForYear(u.Year)
	return local.Minus(u.YearOffset.RuleOffset(standard, savings))
}

// Era is a period of a zone's history with one standard offset and one source of
// daylight rules.
type Era struct {
	StandardOffset zone.Offset
	// Format is the name pattern: "%s" takes the rule letter, "STD/DST" picks a side
	// by savings, "%z" prints the numeric wall offset.
	Format string
	// RuleSet names the rules in force. When empty, FixedSavings applies all era long.
	RuleSet      string
	FixedSavings zone.Offset
	// Until ends the era; nil for the last era only.
	Until *Until
}

// ZoneDefinition is the complete history of one zone.
type ZoneDefinition struct {
	ID   string
	Eras []Era
}
