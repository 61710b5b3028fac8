package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reflowfx/reflow/core"
)

func TestParseTimecode_SecondsOnly(t *testing.T) {
	n, err := core.ParseTimecode("1.5", 30)
	assert.NoError(t, err)
	assert.Equal(t, int64(45), n)
}

func TestParseTimecode_MinutesSeconds(t *testing.T) {
	n, err := core.ParseTimecode("1:30", 30)
	assert.NoError(t, err)
	assert.Equal(t, int64(2700), n)
}

func TestParseTimecode_HoursMinutesSeconds(t *testing.T) {
	n, err := core.ParseTimecode("1:00:00", 25)
	assert.NoError(t, err)
	assert.Equal(t, int64(90000), n)
}

func TestParseTimecode_Negative(t *testing.T) {
	n, err := core.ParseTimecode("-2", 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(-20), n)
}

func TestParseTimecode_ExplicitPlus(t *testing.T) {
	n, err := core.ParseTimecode("+2", 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(20), n)
}

func TestParseTimecode_Malformed(t *testing.T) {
	_, err := core.ParseTimecode("1:2:3:4", 30)
	assert.ErrorIs(t, err, core.ErrBadTimecode)
}

func TestParseTimecode_NonNumeric(t *testing.T) {
	_, err := core.ParseTimecode("abc", 30)
	assert.ErrorIs(t, err, core.ErrBadTimecode)
}
