package core

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseTimecode converts a "[±][[h:]m:]s(.frac)" timecode string to a frame
// number at the given fps, grounded on timecodeToFrame in the original
// engine's core/util.py. Returns ErrBadTimecode for malformed input.
func ParseTimecode(tc string, fps float64) (int64, error) {
	raw := tc
	sign := int64(1)
	if strings.HasPrefix(tc, "-") {
		sign = -1
		tc = tc[1:]
	} else if strings.HasPrefix(tc, "+") {
		tc = tc[1:]
	}
	if tc == "" {
		return 0, fmt.Errorf("ParseTimecode(%q): %w", raw, ErrBadTimecode)
	}

	parts := strings.Split(tc, ":")
	var h, m, s float64
	var err error
	switch len(parts) {
	case 1:
		s, err = strconv.ParseFloat(parts[0], 64)
	case 2:
		m, err = strconv.ParseFloat(parts[0], 64)
		if err == nil {
			s, err = strconv.ParseFloat(parts[1], 64)
		}
	case 3:
		h, err = strconv.ParseFloat(parts[0], 64)
		if err == nil {
			m, err = strconv.ParseFloat(parts[1], 64)
		}
		if err == nil {
			s, err = strconv.ParseFloat(parts[2], 64)
		}
	default:
		return 0, fmt.Errorf("ParseTimecode(%q): %w", raw, ErrBadTimecode)
	}
	if err != nil {
		return 0, fmt.Errorf("ParseTimecode(%q): %w", raw, ErrBadTimecode)
	}

	totalSeconds := s + m*60 + h*3600
	return sign * int64(roundHalfAwayFromZero(totalSeconds*fps)), nil
}

func roundHalfAwayFromZero(f float64) float64 {
	if f >= 0 {
		return float64(int64(f + 0.5))
	}
	return -float64(int64(-f + 0.5))
}
