package at

import (
	"bufio"
	"bytes"
	"strings"
)

// Splitter is used for tokenizing AT command modem replies. It uses
// the signature of bufio.SplitFunc so it can be directly used with bufio.Scanner.
//
// It splits the input by CRLF line endings and also recognizes the CIPSEND
// input prompt ("> "). A bare LF is accepted as a line ending because HTTP
// bodies relayed through +IPD frames are not guaranteed to use CRLF.
//
// The atEOF parameter indicates whether any more data will be available.
// When true, any remaining data is returned as the final token.
func Splitter(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	// 1. Match CIPSEND prompt
	if data[0] == '>' {
		if len(data) > 1 && data[1] == ' ' {
			return 2, data[0:1], nil
		}
		return 1, data[0:1], nil
	}

	// 2. Match line ending, CRLF or LF
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, bytes.TrimSuffix(data[0:i], []byte("\r")), nil
	}

	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

var _ bufio.SplitFunc = Splitter

// Lines splits a raw reply into its non-empty lines.
func Lines(reply string) []string {
	scanner := bufio.NewScanner(strings.NewReader(reply))
	scanner.Buffer(make([]byte, 0, 1024), len(reply)+1)
	scanner.Split(Splitter)

	var lines []string
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Classify identifies the nature of the modem output
func Classify(line string) ResponseType {
	if line == Prompt {
		return TypePrompt
	}

	// Direct matches for final results
	switch line {
	case OK, ERROR, Fail, SendOK, SendFail, MarkerAlreadyConnect:
		return TypeFinal
	}

	// Asynchronous notifications
	switch {
	case strings.HasPrefix(line, "WIFI "), line == MarkerClosed,
		strings.HasSuffix(line, ","+MarkerClosed), line == MarkerConnect,
		strings.HasSuffix(line, ","+MarkerConnect), strings.HasPrefix(line, "+IPD,"):
		return TypeURC
	default:
		return TypeData
	}
}

// FinalResult returns the last final result code in reply, or "" when the
// reply holds none.
func FinalResult(reply string) string {
	lines := Lines(reply)
	for i := len(lines) - 1; i >= 0; i-- {
		if Classify(lines[i]) == TypeFinal {
			return lines[i]
		}
	}
	return ""
}
