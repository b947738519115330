package ruleset

import (
	"maps"

	"github.com/arloliu/zonemap/compiler"
	"github.com/arloliu/zonemap/registry"
	"github.com/arloliu/zonemap/zone"
)

// Compiled is the result of compiling a document.
type Compiled struct {
	Version     string
	Zones       map[string]zone.Map
	Aliases     map[string]string
	PlatformIDs map[string]string
}

// Compile converts and compiles every zone of the document.
//
// A zone that fails to compile does not stop the others: the result holds every zone
// that compiled and the error joins one *compiler.Error per failure. Conversion
// errors in the document itself return a nil result.
func (d *Document) Compile(opts ...compiler.Option) (*Compiled, error) {
	sets, defs, err := d.Definitions()
	if err != nil {
		return nil, err
	}

	c, err := compiler.New(sets, opts...)
	if err != nil {
		return nil, err
	}

	zones, err := c.CompileAll(defs)

	return &Compiled{
		Version:     d.Version,
		Zones:       zones,
		Aliases:     maps.Clone(d.Aliases),
		PlatformIDs: maps.Clone(d.PlatformIDs),
	}, err
}

// Source returns an in-memory registry source over the compiled zones.
func (c *Compiled) Source() *registry.MapSource {
	return registry.NewMapSource(c.Version, c.Zones, c.Aliases, c.PlatformIDs)
}
