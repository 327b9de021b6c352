package metrics

import (
	"io"
	"time"

	"github.com/rcrowley/go-metrics"
	"nodesim/interfaces"
)

var enabled = true
var registry = metrics.NewRegistry()

// Initialize starts a fresh registry for a run. Recording is skipped entirely when
// the config disables metrics.
func Initialize(conf interfaces.IConfig) {
	enabled = conf == nil || conf.UseMetrics()
	registry = metrics.NewRegistry()
}

func Registry() metrics.Registry {
	return registry
}

func NameFormat(name interfaces.IMetricName, id string) string {
	return name.String() + "_" + id
}

func Timer(name string, value time.Duration) {
	if enabled {
		metrics.GetOrRegisterTimer(name+"_Timer", registry).Update(value)
	}
}

func Gauge(name string, value int64) {
	if enabled {
		metrics.GetOrRegisterGauge(name+"_Gauge", registry).Update(value)
	}
}

func FloatGauge(name string, value float64) {
	if enabled {
		metrics.GetOrRegisterGaugeFloat64(name+"_FloatGauge", registry).Update(value)
	}
}

// Histogram keeps a uniform sample of float values scaled by 1000, fees and
// latencies are recorded with three decimals.
func Histogram(name string, value float64) {
	if enabled {
		metrics.GetOrRegisterHistogram(name+"_Histogram", registry, metrics.NewUniformSample(1028)).Update(int64(value * 1000))
	}
}

func Counter(name string, value int64) {
	if enabled {
		if value > 0 {
			metrics.GetOrRegisterCounter(name+"_Counter", registry).Inc(value)
		} else {
			metrics.GetOrRegisterCounter(name+"_Counter", registry).Dec(value * -1)
		}
	}
}

func WriteToFile(writer io.Writer) {
	metrics.WriteJSONOnce(registry, writer)
}
