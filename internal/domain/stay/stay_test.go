package stay

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := ToDateOnly(s)
	require.NoError(t, err)
	return v
}

func TestToDateOnly(t *testing.T) {
	got := mustTime(t, "2026-03-10")
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), got)

	got = mustTime(t, "2026-03-10T05:30:00+01:00")
	assert.Equal(t, time.Date(2026, 3, 10, 4, 30, 0, 0, time.UTC), got)

	_, err := ToDateOnly("2026-13-45")
	assert.ErrorIs(t, err, ErrInvalidDate)
	_, err = ToDateOnly("tomorrow")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestToDateOnly_IgnoresLocalZone(t *testing.T) {
	orig := time.Local
	t.Cleanup(func() { time.Local = orig })

	time.Local = time.FixedZone("WAT", 3600)
	a := mustTime(t, "2026-03-10")
	time.Local = time.FixedZone("PST", -8*3600)
	b := mustTime(t, "2026-03-10")

	assert.True(t, a.Equal(b))
}

func TestNights(t *testing.T) {
	tests := []struct {
		in, out string
		want    int
	}{
		{"2026-03-10", "2026-03-13", 3},
		{"2026-03-10", "2026-03-11", 1},
		{"2026-03-10", "2026-03-10", 0},
		{"2026-03-12", "2026-03-10", -2},
		{"2026-02-27", "2026-03-02", 3},
		{"2026-03-10", "2026-03-11T01:00:00Z", 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Nights(mustTime(t, tt.in), mustTime(t, tt.out)), "%s -> %s", tt.in, tt.out)
	}
}

func TestOverlaps(t *testing.T) {
	assert.True(t, Overlaps(
		mustTime(t, "2026-03-10"), mustTime(t, "2026-03-12"),
		mustTime(t, "2026-03-11"), mustTime(t, "2026-03-14"),
	))
	assert.False(t, Overlaps(
		mustTime(t, "2026-03-10"), mustTime(t, "2026-03-12"),
		mustTime(t, "2026-03-12"), mustTime(t, "2026-03-14"),
	))
	assert.True(t, Overlaps(
		mustTime(t, "2026-03-01"), mustTime(t, "2026-03-31"),
		mustTime(t, "2026-03-10"), mustTime(t, "2026-03-11"),
	))
}

func TestValidate(t *testing.T) {
	n, err := Validate(mustTime(t, "2026-03-10"), mustTime(t, "2026-03-13"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = Validate(mustTime(t, "2026-03-10"), mustTime(t, "2026-03-10"))
	assert.ErrorIs(t, err, ErrInvalidStay)

	_, err = Validate(time.Time{}, mustTime(t, "2026-03-10"))
	assert.ErrorIs(t, err, ErrInvalidStay)
}

func TestValidateStrings(t *testing.T) {
	in, out, n, err := ValidateStrings("2026-03-10", "2026-03-12")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-10", in.String())
	assert.Equal(t, "2026-03-12", out.String())
	assert.Equal(t, 2, n)

	_, _, _, err = ValidateStrings("bad", "2026-03-12")
	assert.ErrorIs(t, err, ErrInvalidStay)
}

func TestDate_JSON(t *testing.T) {
	type payload struct {
		CheckIn  Date `json:"checkInDate"`
		CheckOut Date `json:"checkOutDate"`
	}

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"checkInDate":"2026-03-10","checkOutDate":null}`), &p))
	assert.Equal(t, "2026-03-10", p.CheckIn.String())
	assert.True(t, p.CheckOut.IsZero())

	p.CheckOut = p.CheckIn.AddDays(2)
	raw, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"checkInDate":"2026-03-10","checkOutDate":"2026-03-12"}`, string(raw))

	assert.Error(t, json.Unmarshal([]byte(`{"checkInDate":"nope"}`), &p))
}
