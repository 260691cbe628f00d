package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Profile payloads arrive from a form layer that historically sent booleans
// and numbers as strings ("yes", "3.5"). FlexBool and FlexNumber resolve
// those loose shapes once at the JSON boundary; everything downstream sees
// a plain nullable value.

// FlexBool is a nullable boolean that also accepts the string forms
// "true"/"1"/"yes"/"on" and "false"/"0"/"no"/"off". Anything else
// decodes to null.
type FlexBool struct {
	Value *bool
}

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	// json.Unmarshal treats null as a no-op on a plain bool, which would
	// read as an explicit false here.
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		b.Value = nil
		return nil
	}

	var native bool
	if err := json.Unmarshal(data, &native); err == nil {
		b.Value = &native
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		b.Value = nil
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		v := true
		b.Value = &v
	case "false", "0", "no", "off":
		v := false
		b.Value = &v
	default:
		b.Value = nil
	}
	return nil
}

func (b FlexBool) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Value)
}

// Bool returns the value, defaulting to false when null.
func (b FlexBool) Bool() bool {
	return b.Value != nil && *b.Value
}

// FlexNumber is a nullable number that also accepts numeric strings.
// Non-numeric input decodes to null.
type FlexNumber struct {
	Value *float64
}

func (n *FlexNumber) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}

	var native float64
	if err := json.Unmarshal(data, &native); err == nil {
		n.Value = &native
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		n.Value = nil
		return nil
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		n.Value = nil
		return nil
	}
	n.Value = &parsed
	return nil
}

func (n FlexNumber) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Value)
}

// Set wraps a concrete value.
func (n *FlexNumber) Set(v float64) {
	n.Value = &v
}
