package biztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		months int
		want   time.Time
	}{
		{"quarter from new year", Date(2026, 1, 1), 3, Date(2026, 4, 1)},
		{"jan 31 clamps to feb 28", Date(2026, 1, 31), 1, Date(2026, 2, 28)},
		{"jan 31 clamps to feb 29 in leap year", Date(2028, 1, 31), 1, Date(2028, 2, 29)},
		{"aug 31 plus half year", Date(2026, 8, 31), 6, Date(2027, 2, 28)},
		{"crosses year end", Date(2026, 11, 15), 3, Date(2027, 2, 15)},
		{"yearly on leap day", Date(2028, 2, 29), 12, Date(2029, 2, 28)},
		{"mar 31 plus one month", Date(2026, 3, 31), 1, Date(2026, 4, 30)},
		{"zero months", Date(2026, 5, 10), 0, Date(2026, 5, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddMonths(tt.start, tt.months))
		})
	}
}

func TestAddMonths_ChainedFromClampedDate(t *testing.T) {
	// clamping is applied per call, so the day does not grow back
	feb := AddMonths(Date(2026, 1, 31), 1)
	assert.Equal(t, Date(2026, 3, 28), AddMonths(feb, 1))
}

func TestParseAndFormatDate(t *testing.T) {
	d, err := ParseDate("2026-04-01")
	require.NoError(t, err)
	assert.Equal(t, Date(2026, 4, 1), d)
	assert.Equal(t, "2026-04-01", FormatDate(d))

	_, err = ParseDate("01/04/2026")
	assert.Error(t, err)
}

func TestDateOf_UsesBusinessTimezone(t *testing.T) {
	MustInit(DefaultTimezone)

	// 20:00 UTC on Jan 1 is already Jan 2 in India (UTC+5:30)
	instant := time.Date(2026, 1, 1, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, Date(2026, 1, 2), DateOf(instant))
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 29, DaysIn(2028, time.February))
	assert.Equal(t, 28, DaysIn(2026, time.February))
	assert.Equal(t, 31, DaysIn(2026, time.December))
}
