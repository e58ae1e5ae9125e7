package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Number is a float64 that unmarshals from either a JSON number or a numeric
// string. Older backend revisions serialized prices as strings, so string
// coercion is part of the wire contract; anything non-numeric is a decode
// failure rather than a silent zero.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return fmt.Errorf("number: empty value")
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("number: %q is not numeric", s)
		}
		*n = Number(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = Number(v)
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(n))
}

// Float64 returns the plain value.
func (n Number) Float64() float64 {
	return float64(n)
}
