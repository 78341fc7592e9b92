package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pushupbot"

// PrometheusRecorder реализует Recorder через метрики Prometheus
type PrometheusRecorder struct {
	commands        *prom.CounterVec
	commandDuration *prom.HistogramVec
	reps            prom.Counter
}

// NewPrometheusRecorder создает и регистрирует метрики в reg.
// Если reg == nil, используется новый реестр.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}

	pr := &PrometheusRecorder{
		commands: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Handled chat commands by outcome",
		}, []string{"command", "outcome"}),
		commandDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "command_duration_seconds",
			Help:      "Command handling duration including storage access",
			Buckets:   prom.DefBuckets,
		}, []string{"command"}),
		reps: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "reps_total",
			Help:      "Push-up repetitions logged since start",
		}),
	}
	reg.MustRegister(pr.commands, pr.commandDuration, pr.reps)
	return pr
}

func (p *PrometheusRecorder) ObserveCommand(command string, outcome Outcome, d time.Duration) {
	if p == nil {
		return
	}
	p.commands.WithLabelValues(command, string(outcome)).Inc()
	p.commandDuration.WithLabelValues(command).Observe(d.Seconds())
}

func (p *PrometheusRecorder) AddReps(n int) {
	if p == nil || n <= 0 {
		return
	}
	p.reps.Add(float64(n))
}

// NewRegistry возвращает реестр со стандартными метриками процесса и рантайма Go
func NewRegistry() *prom.Registry {
	reg := prom.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// HTTPHandler отдает метрики реестра в формате Prometheus
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
