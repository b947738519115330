package compiler

import (
	"fmt"
	"strings"
)

// Error reports a zone that failed to compile. Err wraps one of the errs sentinels.
type Error struct {
	ZoneID  string
	Era     int    // era index, -1 when the whole definition is at fault
	RuleSet string // rule set involved, if any
	Index   int    // rule index within RuleSet, -1 when not rule specific
	Err     error
}

func (e *Error) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "compile zone %q", e.ZoneID)
	if e.Era >= 0 {
		fmt.Fprintf(&sb, " era %d", e.Era)
	}
	if e.RuleSet != "" {
		fmt.Fprintf(&sb, " rule set %q", e.RuleSet)
	}
	if e.Index >= 0 {
		fmt.Fprintf(&sb, " rule %d", e.Index)
	}
	fmt.Fprintf(&sb, ": %v", e.Err)

	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}
