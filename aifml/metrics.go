package aifml

import (
	"fmt"

	"github.com/VictoriaMetrics/metrics"
)

var (
	signIns     = metrics.NewCounter(`fmlgw_signin_total`)
	outputValue = metrics.NewHistogram(`fmlgw_output_value`)
)

func pollResult(result string) {
	metrics.GetOrCreateCounter(fmt.Sprintf(`fmlgw_polls_total{result=%q}`, result)).Inc()
}

func bucketFired(name string) {
	metrics.GetOrCreateCounter(fmt.Sprintf(`fmlgw_bucket_fired_total{bucket=%q}`, name)).Inc()
}

// resultLabel maps a cycle outcome onto the polls_total label.
func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case IsRecoverable(err):
		return "recoverable"
	default:
		return "failed"
	}
}
