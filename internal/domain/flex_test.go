package domain_test

import (
	"encoding/json"
	"testing"

	"go-applytrack-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestFlexBoolAcceptsLooseForms(t *testing.T) {
	tests := []struct {
		in   string
		want *bool
	}{
		{`true`, boolptr(true)},
		{`false`, boolptr(false)},
		{`"true"`, boolptr(true)},
		{`"Yes"`, boolptr(true)},
		{`"1"`, boolptr(true)},
		{`"on"`, boolptr(true)},
		{`"false"`, boolptr(false)},
		{`"no"`, boolptr(false)},
		{`"0"`, boolptr(false)},
		{`"maybe"`, nil},
		{`null`, nil},
	}
	for _, tt := range tests {
		var b domain.FlexBool
		err := json.Unmarshal([]byte(tt.in), &b)
		assert.NoError(t, err, "input %s", tt.in)
		if tt.want == nil {
			assert.Nil(t, b.Value, "input %s", tt.in)
		} else if assert.NotNil(t, b.Value, "input %s", tt.in) {
			assert.Equal(t, *tt.want, *b.Value, "input %s", tt.in)
		}
	}
}

func TestFlexNumberAcceptsLooseForms(t *testing.T) {
	tests := []struct {
		in   string
		want *float64
	}{
		{`3.5`, floatptr(3.5)},
		{`"3.5"`, floatptr(3.5)},
		{`7`, floatptr(7)},
		{`"seven"`, nil},
		{`null`, nil},
	}
	for _, tt := range tests {
		var n domain.FlexNumber
		err := json.Unmarshal([]byte(tt.in), &n)
		assert.NoError(t, err, "input %s", tt.in)
		if tt.want == nil {
			assert.Nil(t, n.Value, "input %s", tt.in)
		} else if assert.NotNil(t, n.Value, "input %s", tt.in) {
			assert.Equal(t, *tt.want, *n.Value, "input %s", tt.in)
		}
	}
}

func TestFlexMarshalRoundTrip(t *testing.T) {
	b := domain.FlexBool{Value: boolptr(true)}
	data, err := json.Marshal(b)
	assert.NoError(t, err)
	assert.Equal(t, `true`, string(data))

	var empty domain.FlexNumber
	data, err = json.Marshal(empty)
	assert.NoError(t, err)
	assert.Equal(t, `null`, string(data))
}

func boolptr(v bool) *bool        { return &v }
func floatptr(v float64) *float64 { return &v }
