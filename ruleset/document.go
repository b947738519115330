package ruleset

// Document is a complete rule-set document.
type Document struct {
	Version     string            `yaml:"version,omitempty" cbor:"version,omitempty"`
	RuleSets    []RuleSetDoc      `yaml:"rulesets,omitempty" cbor:"rulesets,omitempty"`
	Zones       []ZoneDoc         `yaml:"zones,omitempty" cbor:"zones,omitempty"`
	Aliases     map[string]string `yaml:"aliases,omitempty" cbor:"aliases,omitempty"`
	PlatformIDs map[string]string `yaml:"platform_ids,omitempty" cbor:"platform_ids,omitempty"`
}

// RuleSetDoc is a named list of rules.
type RuleSetDoc struct {
	Name  string    `yaml:"name" cbor:"name"`
	Rules []RuleDoc `yaml:"rules" cbor:"rules"`
}

// RuleDoc is one rule line.
type RuleDoc struct {
	From   int    `yaml:"from" cbor:"from"`
	To     string `yaml:"to,omitempty" cbor:"to,omitempty"`
	In     string `yaml:"in" cbor:"in"`
	On     string `yaml:"on" cbor:"on"`
	At     string `yaml:"at" cbor:"at"`
	Save   string `yaml:"save" cbor:"save"`
	Letter string `yaml:"letter,omitempty" cbor:"letter,omitempty"`
}

// ZoneDoc is the history of one zone.
type ZoneDoc struct {
	ID   string   `yaml:"id" cbor:"id"`
	Eras []EraDoc `yaml:"eras" cbor:"eras"`
}

// EraDoc is one continuation line of a zone.
type EraDoc struct {
	Offset string `yaml:"offset" cbor:"offset"`
	Rules  string `yaml:"rules,omitempty" cbor:"rules,omitempty"`
	Format string `yaml:"format" cbor:"format"`
	Until  string `yaml:"until,omitempty" cbor:"until,omitempty"`
}
