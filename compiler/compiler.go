package compiler

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/arloliu/zonemap/errs"
	"github.com/arloliu/zonemap/internal/options"
	"github.com/arloliu/zonemap/zone"
)

// DefaultCutoverYear is the first year from which an alternating tail may replace
// explicit transitions.
const DefaultCutoverYear = 2037

// Compiler compiles zone definitions against a fixed collection of rule sets.
//
// A Compiler is immutable after New and safe for concurrent use.
type Compiler struct {
	ruleSets map[string]RuleSet
	cutover  int
	logger   *slog.Logger
}

// Option configures a Compiler.
type Option = options.Option[*Compiler]

// WithCutoverYear sets the year from which the last era may switch to an alternating
// tail. Transitions before it are always listed explicitly.
func WithCutoverYear(year int) Option {
	return options.New(func(c *Compiler) error {
		if year < zone.MinYear || year > zone.MaxYear {
			return fmt.Errorf("%w: cutover year %d", errs.ErrInvalidYearRange, year)
		}
		c.cutover = year

		return nil
	})
}

// WithLogger sets the logger receiving compilation diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(c *Compiler) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// New creates a compiler for the given rule sets. Rule set names must be unique.
func New(ruleSets []RuleSet, opts ...Option) (*Compiler, error) {
	c := &Compiler{
		ruleSets: make(map[string]RuleSet, len(ruleSets)),
		cutover:  DefaultCutoverYear,
		logger:   slog.New(slog.DiscardHandler),
	}
	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}

	for _, rs := range ruleSets {
		if _, dup := c.ruleSets[rs.Name]; dup {
			return nil, fmt.Errorf("%w: rule set %q defined twice", errs.ErrInvalidRule, rs.Name)
		}
		c.ruleSets[rs.Name] = rs
	}

	return c, nil
}

// RuleSet returns the rule set with the given name.
func (c *Compiler) RuleSet(name string) (RuleSet, bool) {
	rs, ok := c.ruleSets[name]
	return rs, ok
}

// Compile compiles one zone. Any malformed rule or era fails the whole zone with an
// *Error.
//
// The result is a *zone.Fixed when the zone never changes, otherwise a
// *zone.Precomputed.
func (c *Compiler) Compile(def ZoneDefinition) (zone.Map, error) {
	if len(def.Eras) == 0 {
		return nil, &Error{ZoneID: def.ID, Era: -1, Index: -1, Err: errs.ErrNoEras}
	}

	parts := make([]zone.Part, 0, len(def.Eras))
	start := zone.StartOfTime
	var savings zone.Offset
	for i, era := range def.Eras {
		last := i == len(def.Eras)-1
		if !last && era.Until == nil {
			return nil, &Error{ZoneID: def.ID, Era: i, Index: -1,
				Err: fmt.Errorf("%w: only the last era may run forever", errs.ErrEraOrder)}
		}

		res, err := c.compileEra(def.ID, i, era, start, savings, last)
		if err != nil {
			return nil, err
		}
		parts = append(parts, zone.Part{Start: start, Map: res.m})

		if !last {
			if res.until <= start {
				return nil, &Error{ZoneID: def.ID, Era: i, Index: -1,
					Err: fmt.Errorf("%w: era ends at %s, not after its start %s", errs.ErrEraOrder, res.until, start)}
			}
			start, savings = res.until, res.savings
		}
	}

	composite, err := zone.NewComposite(parts)
	if err != nil {
		return nil, &Error{ZoneID: def.ID, Era: -1, Index: -1, Err: err}
	}
	flat, err := zone.Flatten(composite)
	if err != nil {
		return nil, &Error{ZoneID: def.ID, Era: -1, Index: -1, Err: err}
	}

	if ivs := flat.Intervals(); len(ivs) == 1 && flat.Tail() == nil {
		c.logger.Debug("compiled fixed zone", "zone", def.ID, "name", ivs[0].Name, "offset", ivs[0].Wall.String())
		return zone.NewFixed(ivs[0].Name, ivs[0].Wall, ivs[0].Standard)
	}

	c.logger.Debug("compiled zone",
		"zone", def.ID,
		"intervals", len(flat.Intervals()),
		"tail", flat.Tail() != nil,
		"tail_start", flat.TailStart().String())

	return flat, nil
}

// CompileAll compiles every definition. Failures are reported independently: the
// returned map holds every zone that compiled and the error joins every *Error.
func (c *Compiler) CompileAll(defs []ZoneDefinition) (map[string]zone.Map, error) {
	out := make(map[string]zone.Map, len(defs))
	var failures []error
	for _, def := range defs {
		m, err := c.Compile(def)
		if err != nil {
			c.logger.Warn("zone failed to compile", "zone", def.ID, "error", err)
			failures = append(failures, err)

			continue
		}
		if _, dup := out[def.ID]; dup {
			c.logger.Warn("zone defined twice, keeping the later definition", "zone", def.ID)
		}
		out[def.ID] = m
	}

	return out, errors.Join(failures...)
}

// eraResult is one compiled era: a map valid for the era's range, the instant at which
// the era ends and the savings in force at that moment.
type eraResult struct {
	m       zone.Map
	until   zone.Instant
	savings zone.Offset
}

type transition struct {
	at   zone.Instant
	wall zone.Offset
	name string
}

func (c *Compiler) compileEra(id string, idx int, era Era, start zone.Instant, prevSavings zone.Offset, last bool) (eraResult, error) {
	fail := func(ruleSet string, index int, err error) (eraResult, error) {
		return eraResult{}, &Error{ZoneID: id, Era: idx, RuleSet: ruleSet, Index: index, Err: err}
	}

	std := era.StandardOffset
	if !std.Valid() {
		return fail("", -1, fmt.Errorf("%w: standard offset %d", errs.ErrInvalidOffset, std))
	}
	if era.Until != nil {
		if err := era.Until.YearOffset.Validate(); err != nil {
			return fail("", -1, fmt.Errorf("until: %w", err))
		}
	}

	rules, err := c.eraRecurrences(era)
	if err != nil {
		var ce *Error
		if errors.As(err, &ce) {
			ce.ZoneID, ce.Era = id, idx
			return eraResult{}, ce
		}

		return fail(era.RuleSet, -1, err)
	}

	savings, name, err := initialState(era, rules, start, prevSavings)
	if err != nil {
		return fail("", -1, err)
	}

	untilAt := func(savings zone.Offset) zone.Instant {
		if era.Until == nil {
			return zone.EndOfTime
		}

		return era.Until.Instant(std, savings)
	}

	trans := []transition{{at: start, wall: std + savings, name: name}}
	switchYear := c.switchYear(rules)
	coalesced := 0

	var tail *zone.AlternatingMap
	cursor := start
	for len(rules) > 0 {
		k, tr, ok := nextTransition(rules, cursor, std, savings)
		if !ok || tr.At >= untilAt(savings) {
			break
		}

		r := rules[k]
		cursor = tr.At
		savings = r.Savings

		prev := trans[len(trans)-1]
		changed := prev.wall != tr.Wall || prev.name != r.Name
		if changed {
			trans = append(trans, transition{at: tr.At, wall: tr.Wall, name: r.Name})
		} else {
			coalesced++
		}

		if !last || !r.Infinite() || yearOf(cursor, tr.Wall) < switchYear {
			continue
		}

		infinite := infiniteRules(rules)
		if len(infinite) == 1 {
			// Nothing can change any more.
			break
		}
		if len(infinite) != 2 {
			return fail(era.RuleSet, -1, fmt.Errorf("%w: %d infinite rules", errs.ErrUnsupportedTail, len(infinite)))
		}
		if !changed {
			continue
		}

		tail, err = zone.NewAlternatingMap(std, infinite[0], infinite[1])
		if err != nil {
			return fail(era.RuleSet, -1, err)
		}
		trans = trans[:len(trans)-1]
		c.logger.Debug("switching to alternating tail",
			"zone", id, "era", idx, "tail_start", cursor.String(), "year", yearOf(cursor, tr.Wall))

		break
	}

	if coalesced > 0 {
		c.logger.Debug("dropped transitions without change", "zone", id, "era", idx, "count", coalesced)
	}

	end := zone.EndOfTime
	if tail != nil {
		end = cursor
	}

	intervals := make([]zone.Interval, len(trans))
	for j, t := range trans {
		iv := zone.Interval{Start: t.at, End: end, Wall: t.wall, Standard: std, Name: t.name}
		if j+1 < len(trans) {
			iv.End = trans[j+1].at
		}
		intervals[j] = iv
	}
	// The era map answers for all time; the composite clips it to the era.
	intervals[0].Start = zone.StartOfTime

	m, err := zone.NewPrecomputed(intervals, tail)
	if err != nil {
		return fail(era.RuleSet, -1, err)
	}

	return eraResult{m: m, until: untilAt(savings), savings: savings}, nil
}

// eraRecurrences builds the named recurrences of an era's rule set.
func (c *Compiler) eraRecurrences(era Era) ([]zone.Recurrence, error) {
	std := era.StandardOffset
	if era.RuleSet == "" {
		if !era.FixedSavings.Valid() {
			return nil, fmt.Errorf("%w: fixed savings %d", errs.ErrInvalidOffset, era.FixedSavings)
		}
		if _, err := formatName(era.Format, "", std, era.FixedSavings); err != nil {
			return nil, err
		}

		return nil, nil
	}

	rs, ok := c.ruleSets[era.RuleSet]
	if !ok {
		return nil, &Error{RuleSet: era.RuleSet, Index: -1, Err: fmt.Errorf("%w: %q", errs.ErrUnknownRuleSet, era.RuleSet)}
	}

	recs := make([]zone.Recurrence, len(rs.Rules))
	for k, rule := range rs.Rules {
		name, err := formatName(era.Format, rule.Letter, std, rule.Savings)
		if err != nil {
			return nil, &Error{RuleSet: rs.Name, Index: k, Err: err}
		}

		recs[k] = zone.Recurrence{
			Name:       name,
			Savings:    rule.Savings,
			YearOffset: rule.YearOffset,
			FromYear:   rule.From,
			ToYear:     rule.To,
		}
		if err := recs[k].Validate(); err != nil {
			return nil, &Error{RuleSet: rs.Name, Index: k, Err: err}
		}
	}

	return recs, nil
}

// initialState returns the savings and name in force at the start of an era: those of
// the latest rule transition at or before start, or zero savings with the letter of
// the first rule without savings when no rule has fired yet.
func initialState(era Era, rules []zone.Recurrence, start zone.Instant, prevSavings zone.Offset) (zone.Offset, string, error) {
	std := era.StandardOffset
	if len(rules) == 0 {
		name, err := formatName(era.Format, "", std, era.FixedSavings)
		return era.FixedSavings, name, err
	}

	best := -1
	var bestAt zone.Instant
	for k, r := range rules {
		tr, ok := r.PreviousOrSame(start, std, prevSavings)
		if ok && (best < 0 || tr.At >= bestAt) {
			best, bestAt = k, tr.At
		}
	}
	if best >= 0 {
		return rules[best].Savings, rules[best].Name, nil
	}

	for _, r := range rules {
		if r.Savings == 0 {
			return 0, r.Name, nil
		}
	}

	name, err := formatName(era.Format, "", std, 0)

	return 0, name, err
}

// nextTransition returns the earliest transition strictly after cursor across rules.
// On an exact tie the rule defined later wins.
func nextTransition(rules []zone.Recurrence, cursor zone.Instant, std, savings zone.Offset) (int, zone.Transition, bool) {
	best := -1
	var bestTr zone.Transition
	for k, r := range rules {
		tr, ok := r.Next(cursor, std, savings)
		if ok && (best < 0 || tr.At <= bestTr.At) {
			best, bestTr = k, tr
		}
	}

	return best, bestTr, best >= 0
}

// switchYear is the first year in which the tail may take over: no finite rule and no
// late-starting infinite rule can fire from then on.
func (c *Compiler) switchYear(rules []zone.Recurrence) int {
	year := c.cutover
	for _, r := range rules {
		if r.Infinite() {
			year = max(year, r.FromYear+1)
		} else {
			year = max(year, r.ToYear+1)
		}
	}

	return year
}

func infiniteRules(rules []zone.Recurrence) []zone.Recurrence {
	var out []zone.Recurrence
	for _, r := range rules {
		if r.Infinite() {
			out = append(out, r)
		}
	}

	return out
}

func yearOf(t zone.Instant, wall zone.Offset) int {
	return t.Plus(wall).DateTime().Year
}
