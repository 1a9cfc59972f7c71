package subscription

import (
	"fmt"
	"time"

	"github.com/orris-inc/backoffice/internal/shared/biztime"
)

// DateRange is an inclusive calendar-date interval [Start, End].
type DateRange struct {
	Start time.Time
	End   time.Time
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	r := DateRange{Start: start.UTC(), End: end.UTC()}
	if !r.End.After(r.Start) {
		return DateRange{}, fmt.Errorf("%w: %s..%s", ErrInvalidDateRange, biztime.FormatDate(start), biztime.FormatDate(end))
	}
	return r, nil
}

// Overlaps uses the inclusive test s1 <= e2 && s2 <= e1, so ranges that
// share a single boundary day overlap. The relation is symmetric.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.Start.After(other.End) && !other.Start.After(r.End)
}

func (r DateRange) Contains(day time.Time) bool {
	return !day.Before(r.Start) && !day.After(r.End)
}

func (r DateRange) String() string {
	return biztime.FormatDate(r.Start) + ".." + biztime.FormatDate(r.End)
}
