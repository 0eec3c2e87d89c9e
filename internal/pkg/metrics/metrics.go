// Package metrics concentra os contadores Prometheus do GoTrace.
// Os rótulos são fechados (nível, etapa, motivo), sem cardinalidade ilimitada.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	codesGenerated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gotrace_sscc_codes_generated_total",
		Help: "Códigos SSCC gerados e persistidos, por nível de embalagem",
	}, []string{"level"})

	allocationFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gotrace_sscc_allocation_failures_total",
		Help: "Gerações rejeitadas ou com falha, por código de motivo",
	}, []string{"reason"})

	quotaRefunds = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gotrace_quota_refunds_total",
		Help: "Estornos de cota após falha posterior ao consumo, por etapa",
	}, []string{"stage"})

	quotaRefundErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gotrace_quota_refund_errors_total",
		Help: "Estornos que não puderam ser aplicados ao ledger",
	})

	decodes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gotrace_gs1_decodes_total",
		Help: "Leituras decodificadas, por formato detectado e resultado",
	}, []string{"format", "parsed"})

	encodes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gotrace_gs1_encodes_total",
		Help: "Requisições de codificação, por resultado",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(codesGenerated, allocationFailures, quotaRefunds, quotaRefundErrors, decodes, encodes)
}

// CodesGenerated soma n códigos emitidos no nível.
func CodesGenerated(level string, n int) {
	codesGenerated.WithLabelValues(level).Add(float64(n))
}

// AllocationFailed conta uma requisição de geração encerrada com erro.
func AllocationFailed(reason string) {
	allocationFailures.WithLabelValues(reason).Inc()
}

// QuotaRefunded conta um estorno emitido na etapa informada.
func QuotaRefunded(stage string) {
	quotaRefunds.WithLabelValues(stage).Inc()
}

// QuotaRefundFailed conta um estorno que não pôde ser aplicado.
func QuotaRefundFailed() {
	quotaRefundErrors.Inc()
}

// Decoded conta uma leitura decodificada.
func Decoded(format string, parsed bool) {
	p := "false"
	if parsed {
		p = "true"
	}
	decodes.WithLabelValues(format, p).Inc()
}

// Encoded conta uma codificação ("ok" ou o motivo da falha).
func Encoded(outcome string) {
	encodes.WithLabelValues(outcome).Inc()
}

// Handler expõe o registro padrão em /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
