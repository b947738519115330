package zone

// Fixed is a zone with a single interval over all time.
type Fixed struct {
	interval Interval
}

var _ Map = (*Fixed)(nil)

// UTC is the fixed zone with offset zero.
var UTC = &Fixed{interval: Interval{Start: StartOfTime, End: EndOfTime, Name: "UTC"}}

// NewFixed creates a fixed zone. Wall and standard offsets differ only for a zone
// that keeps a constant daylight adjustment.
func NewFixed(name string, wall, standard Offset) (*Fixed, error) {
	iv, err := NewInterval(name, StartOfTime, EndOfTime, wall, standard)
	if err != nil {
		return nil, err
	}

	return &Fixed{interval: iv}, nil
}

// FixedOffset creates a fixed zone whose wall and standard offsets are both o.
func FixedOffset(name string, o Offset) (*Fixed, error) {
	return NewFixed(name, o, o)
}

// Interval returns the single interval of the zone.
func (f *Fixed) Interval() Interval {
	return f.interval
}

// Offset returns the wall offset of the zone.
func (f *Fixed) Offset() Offset {
	return f.interval.Wall
}

// Name returns the display name of the zone.
func (f *Fixed) Name() string {
	return f.interval.Name
}

// IntervalAt returns the single interval, whatever t is.
func (f *Fixed) IntervalAt(Instant) Interval {
	return f.interval
}

// IntervalAtLocal returns the single interval; no local time is skipped or repeated.
func (f *Fixed) IntervalAtLocal(LocalInstant) (Interval, bool) {
	return f.interval, true
}

func (*Fixed) sealed() {}
