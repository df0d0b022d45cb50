package schema

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{1.234, 1.23},
		{1.235, 1.24}, // 1.235 is stored slightly above the tie
		{2.675, 2.67}, // 2.675 is stored slightly below the tie
		{0.125, 0.12}, // exact tie rounds to even
		{0.375, 0.38},
		{-1.005, -1},
		{1.0 / 3.0, 0.33},
		{2.5, 2.5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Round2(tt.in), "Round2(%v)", tt.in)
	}
	assert.True(t, math.IsNaN(Round2(math.NaN())))
	assert.True(t, math.IsInf(Round2(math.Inf(1)), 1))
}

func TestDayOf(t *testing.T) {
	offset := time.FixedZone("IST", 5*3600+1800)
	local := time.Date(2024, 3, 10, 2, 0, 0, 0, offset)

	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), DayOf(local))
	assert.Equal(t, 4, DaysBetween(time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC), time.Date(2024, 1, 5, 1, 0, 0, 0, time.UTC)))
}

func TestLastValue(t *testing.T) {
	assert.Zero(t, LastValue(nil))
	assert.Equal(t, 3.0, LastValue([]*float64{Float(1), Float(3), nil, nil}))
	assert.Zero(t, LastValue([]*float64{nil}))
}

func TestAbbreviateName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Ana", "Ana"},
		{"Ana Souza", "Ana S"},
		{"Maria da Silva", "Maria S"},
		{"  Bo  Tran ", "Bo T"},
		{"Anne-Marie O'Neill", "Anne-Marie O"},
		{"Ana (Contractor)", "Ana C"},
		{UnassignedUser, UnassignedUser},
		{"Élodie Ødegaard", "Élodie Ø"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AbbreviateName(tt.name), "AbbreviateName(%q)", tt.name)
	}
	assert.Equal(t, []string{"Ana S", "Bo"}, AbbreviateUsers([]string{"Ana Souza", "Bo"}))
}
