package main

import (
	"sync"
	"time"

	"i4.energy/across/fmlgw/aifml"
)

// Status keeps the most recent poll result for the status endpoint. It is
// written by the poll loop and read by HTTP handlers.
type Status struct {
	mu       sync.RWMutex
	started  time.Time
	localIP  string
	polls    int
	failures int
	last     *aifml.Result
}

// StatusReport is the JSON view of Status.
type StatusReport struct {
	Started  time.Time     `json:"started"`
	LocalIP  string        `json:"local_ip,omitempty"`
	Polls    int           `json:"polls"`
	Failures int           `json:"failures"`
	Last     *ResultReport `json:"last,omitempty"`
}

// ResultReport is the JSON view of one poll result.
type ResultReport struct {
	At      time.Time      `json:"at"`
	Error   string         `json:"error,omitempty"`
	Summary string         `json:"summary,omitempty"`
	Display string         `json:"display,omitempty"`
	Data    *aifml.FmlData `json:"data,omitempty"`
	Fired   []string       `json:"fired"`
}

func NewStatus(started time.Time) *Status {
	return &Status{started: started}
}

// SetLocalIP records the station address reported by the modem.
func (s *Status) SetLocalIP(ip string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.localIP = ip
}

// Record stores res as the latest result. It has the signature of
// aifml.Config.OnResult.
func (s *Status) Record(res aifml.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.polls++
	if res.Err != nil {
		s.failures++
	}
	s.last = &res
}

// Report returns a snapshot of the status.
func (s *Status) Report() StatusReport {
	s.mu.RLock()
	defer s.mu.RUnlock()

	report := StatusReport{
		Started:  s.started,
		LocalIP:  s.localIP,
		Polls:    s.polls,
		Failures: s.failures,
	}
	if s.last == nil {
		return report
	}

	last := &ResultReport{
		At:    s.last.At,
		Data:  s.last.Data,
		Fired: append([]string{}, s.last.Fired...),
	}
	if s.last.Err != nil {
		last.Error = s.last.Err.Error()
	}
	if s.last.Data != nil {
		last.Summary = s.last.Data.Summary()
		last.Display = s.last.Data.Display()
	}
	report.Last = last
	return report
}
