package registry

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arloliu/zonemap/errs"
	"github.com/arloliu/zonemap/zone"
)

// FixedPrefix starts every fixed-offset id.
const FixedPrefix = "UTC"

// ParseFixedID parses "UTC", "UTC+hh", "UTC+hh:mm" or "UTC+hh:mm:ss" (with + or -)
// into a fixed zone named by the id. The boolean is false for ids that do not use
// the fixed-offset syntax.
func ParseFixedID(id string) (*zone.Fixed, bool, error) {
	if id == FixedPrefix {
		return zone.UTC, true, nil
	}

	rest, ok := strings.CutPrefix(id, FixedPrefix)
	if !ok || len(rest) < 2 || (rest[0] != '+' && rest[0] != '-') {
		return nil, false, nil
	}

	sign := 1
	if rest[0] == '-' {
		sign = -1
	}

	parts := strings.Split(rest[1:], ":")
	if len(parts) > 3 {
		return nil, true, fmt.Errorf("%w: fixed id %q", errs.ErrInvalidOffset, id)
	}

	limits := []int{18, 59, 59}
	seconds := 0
	for i, p := range parts {
		if len(p) != 2 {
			return nil, true, fmt.Errorf("%w: fixed id %q", errs.ErrInvalidOffset, id)
		}
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 || v > limits[i] {
			return nil, true, fmt.Errorf("%w: fixed id %q", errs.ErrInvalidOffset, id)
		}
		seconds = seconds*60 + v
	}
	for range 3 - len(parts) {
		seconds *= 60
	}

	offset, err := zone.NewOffset(sign * seconds)
	if err != nil {
		return nil, true, fmt.Errorf("fixed id %q: %w", id, err)
	}

	f, err := zone.FixedOffset(id, offset)
	if err != nil {
		return nil, true, err
	}

	return f, true, nil
}

// FixedID formats the canonical fixed-offset id for o, such as "UTC-08" or
// "UTC+05:30". Offset zero is "UTC".
func FixedID(o zone.Offset) string {
	if o == 0 {
		return FixedPrefix
	}

	sign := '+'
	s := o.Seconds()
	if s < 0 {
		sign = '-'
		s = -s
	}

	h, m, sec := s/3600, s/60%60, s%60
	switch {
	case sec != 0:
		return fmt.Sprintf("%s%c%02d:%02d:%02d", FixedPrefix, sign, h, m, sec)
	case m != 0:
		return fmt.Sprintf("%s%c%02d:%02d", FixedPrefix, sign, h, m)
	default:
		return fmt.Sprintf("%s%c%02d", FixedPrefix, sign, h)
	}
}
