package observability

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "token_demo"

// Verification results recorded by RecordVerification.
const (
	ResultOK               = "ok"
	ResultInvalidSignature = "invalid_signature"
	ResultExpired          = "expired"
	ResultMalformed        = "malformed"
	ResultError            = "error"
)

// Metrics counts token operations on a private registry.
type Metrics struct {
	registry      *prometheus.Registry
	issued        *prometheus.CounterVec
	verifications *prometheus.CounterVec
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		issued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_issued_total",
			Help:      "Tokens issued by signing algorithm.",
		}, []string{"algorithm"}),
		verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_verifications_total",
			Help:      "Token verifications by result.",
		}, []string{"result"}),
	}
	m.registry.MustRegister(m.issued, m.verifications)
	return m
}

// RecordIssued counts one issued token.
func (m *Metrics) RecordIssued(algorithm string) {
	if m == nil {
		return
	}
	m.issued.WithLabelValues(algorithm).Inc()
}

// RecordVerification counts one verification outcome. Error codes such as
// INVALID_SIGNATURE are folded to lower case; anything that is not a known
// result is counted as ResultError.
func (m *Metrics) RecordVerification(result string) {
	if m == nil {
		return
	}
	m.verifications.WithLabelValues(verificationResult(result)).Inc()
}

func verificationResult(code string) string {
	switch result := strings.ToLower(code); result {
	case ResultOK, ResultInvalidSignature, ResultExpired, ResultMalformed:
		return result
	default:
		return ResultError
	}
}

// Gatherer exposes the registry for scraping or inspection.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteToTextfile writes the current counters to path in the Prometheus text
// exposition format, for pickup by a node_exporter textfile collector.
func (m *Metrics) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
