package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateParseAndFormat(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", d.String())
	assert.Equal(t, "2024-03-01", d.AddDays(1).String())

	z, err := ParseDate("")
	require.NoError(t, err)
	assert.True(t, z.IsZero())
	assert.Equal(t, "", z.String())

	_, err = ParseDate("29/02/2024")
	assert.Error(t, err)
}

func TestToday(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	now := time.Date(2025, time.March, 11, 5, 0, 0, 0, loc)
	assert.Equal(t, "2025-03-10", Today(now).String())
	assert.True(t, Today(time.Time{}).IsZero())
}

func TestDateValueAndScan(t *testing.T) {
	v, err := Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	d := NewDate(2025, time.June, 1)
	v, err = d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", v)

	tests := []struct {
		name string
		src  any
		want string
	}{
		{name: "nil", src: nil, want: ""},
		{name: "text", src: "2025-06-01", want: "2025-06-01"},
		{name: "bytes", src: []byte("2025-06-01"), want: "2025-06-01"},
		{name: "timestamp text", src: "2025-06-01T00:00:00Z", want: "2025-06-01"},
		{name: "time", src: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), want: "2025-06-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewDate(1999, time.January, 1)
			require.NoError(t, got.Scan(tt.src))
			assert.Equal(t, tt.want, got.String())
		})
	}

	var bad Date
	assert.Error(t, bad.Scan(42))
}

func TestDateJSON(t *testing.T) {
	type wrapper struct {
		Start Date `json:"start"`
	}
	b, err := json.Marshal(wrapper{Start: NewDate(2025, time.January, 2)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"2025-01-02"}`, string(b))

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"start":"2025-12-31"}`), &w))
	assert.Equal(t, "2025-12-31", w.Start.String())
}
