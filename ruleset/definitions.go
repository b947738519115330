package ruleset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arloliu/zonemap/compiler"
	"github.com/arloliu/zonemap/errs"
)

// Definitions converts the document into compiler input.
func (d *Document) Definitions() ([]compiler.RuleSet, []compiler.ZoneDefinition, error) {
	sets, err := d.ruleSets()
	if err != nil {
		return nil, nil, err
	}
	defs, err := d.zoneDefinitions()
	if err != nil {
		return nil, nil, err
	}

	return sets, defs, nil
}

func (d *Document) ruleSets() ([]compiler.RuleSet, error) {
	sets := make([]compiler.RuleSet, 0, len(d.RuleSets))
	for _, rs := range d.RuleSets {
		set := compiler.RuleSet{Name: rs.Name, Rules: make([]compiler.Rule, 0, len(rs.Rules))}
		for i, rd := range rs.Rules {
			r, err := parseRule(rd)
			if err != nil {
				return nil, fmt.Errorf("rule set %q rule %d: %w", rs.Name, i, err)
			}
			set.Rules = append(set.Rules, r)
		}
		sets = append(sets, set)
	}

	return sets, nil
}

func (d *Document) zoneDefinitions() ([]compiler.ZoneDefinition, error) {
	defs := make([]compiler.ZoneDefinition, 0, len(d.Zones))
	for _, zd := range d.Zones {
		def := compiler.ZoneDefinition{ID: zd.ID, Eras: make([]compiler.Era, 0, len(zd.Eras))}
		for i, ed := range zd.Eras {
			era, err := parseEra(ed)
			if err != nil {
				return nil, fmt.Errorf("zone %q era %d: %w", zd.ID, i, err)
			}
			def.Eras = append(def.Eras, era)
		}
		defs = append(defs, def)
	}

	return defs, nil
}

func parseRule(rd RuleDoc) (compiler.Rule, error) {
	to, err := parseTo(rd.To, rd.From)
	if err != nil {
		return compiler.Rule{}, err
	}
	y, err := parseYearOffset(rd.In, rd.On, rd.At)
	if err != nil {
		return compiler.Rule{}, err
	}
	save, err := parseOffset(rd.Save)
	if err != nil {
		return compiler.Rule{}, err
	}

	letter := rd.Letter
	if letter == "-" {
		letter = ""
	}

	return compiler.Rule{From: rd.From, To: to, YearOffset: y, Savings: save, Letter: letter}, nil
}

func parseEra(ed EraDoc) (compiler.Era, error) {
	std, err := parseOffset(ed.Offset)
	if err != nil {
		return compiler.Era{}, err
	}
	era := compiler.Era{StandardOffset: std, Format: ed.Format}

	switch rules := strings.TrimSpace(ed.Rules); {
	case rules == "" || rules == "-":
	case rules[0] == '-' || (rules[0] >= '0' && rules[0] <= '9'):
		if era.FixedSavings, err = parseOffset(rules); err != nil {
			return compiler.Era{}, err
		}
	default:
		era.RuleSet = rules
	}

	if ed.Until != "" {
		if era.Until, err = parseUntil(ed.Until); err != nil {
			return compiler.Era{}, err
		}
	}

	return era, nil
}

// parseUntil reads "year [month [day [time]]]".
func parseUntil(s string) (*compiler.Until, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 4 {
		return nil, fmt.Errorf("%w: until %q", errs.ErrInvalidRule, s)
	}

	year, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("%w: until year %q", errs.ErrInvalidRule, fields[0])
	}

	parts := []string{"Jan", "1", "0"}
	copy(parts, fields[1:])

	y, err := parseYearOffset(parts[0], parts[1], parts[2])
	if err != nil {
		return nil, fmt.Errorf("until %q: %w", s, err)
	}

	return &compiler.Until{Year: year, YearOffset: y}, nil
}
