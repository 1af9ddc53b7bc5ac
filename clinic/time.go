package clinic

import (
	"time"
)

// =============================================================================
// TIME POINT - Hour-granularity instant (slots are fixed one-hour spans)
// =============================================================================

// TimePoint is a specific clinic instant, normalized to the hour. The engine
// never reads a system clock; every temporal check receives an explicitly
// passed TimePoint so the core stays deterministic and testable.
type TimePoint struct {
	Time time.Time
}

// Constructors
func NewTimePoint(year int, month time.Month, day, hour int) TimePoint {
	return TimePoint{Time: time.Date(year, month, day, hour, 0, 0, 0, time.UTC)}
}

func NewTimePointAt(t time.Time) TimePoint {
	return TimePoint{Time: t.UTC()}
}

// Comparison
func (tp TimePoint) Before(other TimePoint) bool { return tp.normalize().Before(other.normalize()) }
func (tp TimePoint) Equal(other TimePoint) bool  { return tp.normalize().Equal(other.normalize()) }
func (tp TimePoint) After(other TimePoint) bool  { return tp.normalize().After(other.normalize()) }

func (tp TimePoint) normalize() time.Time {
	t := tp.Time.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
}

// Arithmetic
func (tp TimePoint) AddHours(n int) TimePoint { return TimePoint{Time: tp.Time.Add(time.Duration(n) * time.Hour)} }
func (tp TimePoint) AddDays(n int) TimePoint  { return TimePoint{Time: tp.Time.AddDate(0, 0, n)} }

// Properties
func (tp TimePoint) IsZero() bool { return tp.Time.IsZero() }

func (tp TimePoint) String() string {
	return tp.normalize().Format("2006-01-02 15:04")
}

// ParseTimePoint parses the "2006-01-02 15:04" form produced by String.
func ParseTimePoint(s string) (TimePoint, error) {
	t, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		return TimePoint{}, err
	}
	return TimePoint{Time: t.UTC()}, nil
}
