// Package ruleset reads rule-set documents and turns them into compiler definitions.
//
// A document holds rule sets, zones, aliases and platform ids, using the field
// syntax of the tz source files:
//
//	version: 2024a
//	rulesets:
//	  - name: US
//	    rules:
//	      - {from: 2007, to: max, in: Mar, on: Sun>=8, at: "2:00", save: "1:00", letter: D}
//	      - {from: 2007, to: max, in: Nov, on: Sun>=1, at: "2:00", save: "0", letter: S}
//	zones:
//	  - id: America/Los_Angeles
//	    eras:
//	      - {offset: "-7:52:58", format: LMT, until: "1883 Nov 18 12:07:02"}
//	      - {offset: "-8:00", rules: US, format: P%sT}
//	aliases:
//	  US/Pacific: America/Los_Angeles
//
// Documents are read from YAML or from CBOR; both carry the same structure.
//
// Field syntax:
//
//	to      year, "only" (same as from) or "max"
//	in      month name, at least three letters
//	on      day of month, "lastSun", "Sun>=8" or "Sun<=25"
//	at      h[:mm[:ss]] with an optional suffix: w wall (default), s standard, u/g/z UTC
//	save    h[:mm[:ss]], optionally negative
//	rules   rule set name, "-" or empty for none, or a fixed savings amount
//	until   year [month [day [time]]]
package ruleset
