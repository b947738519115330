// Package compiler turns rule-based zone definitions into zone maps.
//
// A ZoneDefinition is an ordered list of eras. Each era has a standard offset, a name
// format and either no daylight rules, a fixed daylight adjustment, or a named
// RuleSet of recurring rules. Eras end at their Until date/time; the last era runs
// forever.
//
// Compilation walks the rules of each era in time order and emits a transition each
// time the offsets or the name change. Eras are joined into a zone.Composite, which is
// flattened into a zone.Precomputed. Once only two infinite rules remain in the last
// era and the cutover year is reached, the remaining future is handed to a
// zone.AlternatingMap tail instead of being enumerated.
//
// Basic usage:
//
//	c, err := compiler.New([]compiler.RuleSet{us}, compiler.WithLogger(logger))
//	m, err := c.Compile(compiler.ZoneDefinition{
//		ID: "America/Los_Angeles",
//		Eras: []compiler.Era{
//			{StandardOffset: zone.HoursMinutes(-8, 0), Format: "P%sT", RuleSet: "US"},
//		},
//	})
package compiler
