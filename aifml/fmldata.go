package aifml

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FuzzyVar is one (name, value, membership) triple of an inference result.
type FuzzyVar struct {
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Membership string  `json:"membership"`
}

func (v FuzzyVar) String() string {
	return v.Name + "(" + formatValue(v.Value) + ")" + v.Membership
}

// FmlData is the decoded fmldata document.
type FmlData struct {
	Type          string     `json:"type"`
	Inputs        []FuzzyVar `json:"inputs"`
	Output        FuzzyVar   `json:"output"`
	DateTimestamp string     `json:"datetimestamp"`
}

// Summary renders the rule as "IF a(1)low and b(2)high THEN out(50)mid".
// It is meant for display only.
func (d *FmlData) Summary() string {
	parts := make([]string, len(d.Inputs))
	for i, in := range d.Inputs {
		parts[i] = in.String()
	}
	return "IF " + strings.Join(parts, " and ") + " THEN " + d.Output.String()
}

// Display renders the text shown on the device display: the input values
// and the output value.
func (d *FmlData) Display() string {
	values := make([]string, len(d.Inputs))
	for i, in := range d.Inputs {
		values[i] = formatValue(in.Value)
	}
	return "Input:\n[" + strings.Join(values, ",") + "]\n\nOutput:\n " + formatValue(d.Output.Value)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// fmlDocument is the wire shape of the nested fmldata string. Inputs come as
// three parallel arrays.
type fmlDocument struct {
	Type          string   `json:"type"`
	InNames       []string `json:"inFV_n"`
	InValues      []number `json:"inFV_v"`
	InMembership  []string `json:"inFV_s"`
	OutName       string   `json:"outFV_n"`
	OutValue      *number  `json:"outFV_v"`
	OutMembership string   `json:"outFV_s"`
	DateTimestamp string   `json:"datetimestamp"`
}

// number accepts a JSON number or a string holding one.
type number float64

func (n *number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		b = []byte(strings.TrimSpace(s))
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("not a number: %s", b)
	}
	*n = number(f)
	return nil
}

// decodeFmlData decodes and validates the nested fmldata document.
func decodeFmlData(doc string) (*FmlData, error) {
	var raw fmlDocument
	if err := json.Unmarshal([]byte(doc), &raw); err != nil {
		return nil, fmt.Errorf("%w: fmldata: %v", ErrJSON, err)
	}

	n := len(raw.InNames)
	if len(raw.InValues) != n || len(raw.InMembership) != n {
		return nil, fmt.Errorf("%w: inFV_n, inFV_v and inFV_s have lengths %d, %d and %d",
			ErrInvalidFml, n, len(raw.InValues), len(raw.InMembership))
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: no input variables", ErrInvalidFml)
	}
	if raw.OutValue == nil {
		return nil, fmt.Errorf("%w: fmldata has no outFV_v", ErrJSON)
	}

	if !finite(float64(*raw.OutValue)) {
		return nil, fmt.Errorf("%w: outFV_v is %v", ErrInvalidFml, float64(*raw.OutValue))
	}
	for i, v := range raw.InValues {
		if !finite(float64(v)) {
			return nil, fmt.Errorf("%w: inFV_v[%d] is %v", ErrInvalidFml, i, float64(v))
		}
	}

	data := &FmlData{
		Type:          raw.Type,
		Inputs:        make([]FuzzyVar, n),
		Output:        FuzzyVar{Name: raw.OutName, Value: float64(*raw.OutValue), Membership: raw.OutMembership},
		DateTimestamp: raw.DateTimestamp,
	}
	for i := range n {
		data.Inputs[i] = FuzzyVar{
			Name:       raw.InNames[i],
			Value:      float64(raw.InValues[i]),
			Membership: raw.InMembership[i],
		}
	}
	return data, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
