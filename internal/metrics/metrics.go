package metrics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"mindline/internal/db"
)

var (
	assessmentDesc = prometheus.NewDesc(
		"mindline_assessments_total",
		"Total risk assessment count by level and outcome",
		[]string{"level", "outcome"},
		nil,
	)

	contextualUp = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "mindline_contextual_up",
		Help: "1 when the contextual analysis provider responded to the last probe",
	})
)

// AssessmentCollector is a custom Prometheus collector that reads assessment
// counts from the database on each scrape.
type AssessmentCollector struct {
	db *db.DB
}

// Describe sends the metric descriptor to the channel.
func (c *AssessmentCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- assessmentDesc
}

// Collect queries the database for all assessment counts and emits them as counters.
func (c *AssessmentCollector) Collect(ch chan<- prometheus.Metric) {
	counts, err := c.db.GetAllAssessmentCounts(context.Background())
	if err != nil {
		slog.Error("failed to collect assessment metrics", "error", err)
		return
	}
	for _, cnt := range counts {
		ch <- prometheus.MustNewConstMetric(
			assessmentDesc,
			prometheus.CounterValue,
			float64(cnt.Count),
			cnt.Level,
			cnt.Outcome,
		)
	}
}

// Recorder provides async assessment recording.
type Recorder struct {
	db *db.DB
}

var (
	recorder     *Recorder
	recorderOnce sync.Once
)

// Init registers the custom collector and initializes the recorder.
// Must be called once at startup.
func Init(database *db.DB) {
	recorderOnce.Do(func() {
		recorder = &Recorder{db: database}
		prometheus.MustRegister(&AssessmentCollector{db: database})
		prometheus.MustRegister(contextualUp)
	})
}

// RecordAssessment asynchronously records an assessment by level and outcome.
func RecordAssessment(level, outcome string) {
	if recorder == nil {
		return
	}
	go func() {
		if err := recorder.db.IncrementAssessmentCount(context.Background(), level, outcome); err != nil {
			slog.Error("failed to record assessment", "level", level, "outcome", outcome, "error", err)
		}
	}()
}

// SetContextualUp flips the provider reachability gauge.
func SetContextualUp(up bool) {
	if up {
		contextualUp.Set(1)
	} else {
		contextualUp.Set(0)
	}
}
