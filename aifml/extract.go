package aifml

import "strings"

// ExtractJSON slices raw from its first '{' to its last '}', both included.
//
// The raw reply mixes modem diagnostics and HTTP headers with the body. This
// assumes the body's outermost value is an object and that no '}' follows it
// in trailing diagnostics; neither is verified.
func ExtractJSON(raw string) (string, error) {
	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start < 0 || end < 0 || end < start {
		return "", ErrJSON
	}
	return raw[start : end+1], nil
}
