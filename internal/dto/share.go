package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Share is a split percentage. It travels as a string ("50", "33.5") but clients may
// send a bare JSON number too.
type Share string

func (s *Share) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = Share(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("share must be a number or numeric string: %w", err)
	}
	*s = Share(n.String())
	return nil
}

// Float parses the share. Empty, non-numeric, NaN and infinite values are rejected.
func (s Share) Float() (float64, error) {
	str := strings.TrimSpace(string(s))
	if str == "" {
		return 0, fmt.Errorf("share is empty")
	}
	f, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, fmt.Errorf("share %q is not a number", str)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("share %q is not a finite number", str)
	}
	return f, nil
}

// FormatShare renders a stored share the way the client expects it: no trailing zeros.
func FormatShare(f float64) Share {
	return Share(strconv.FormatFloat(f, 'f', -1, 64))
}
