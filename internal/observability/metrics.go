package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	userRegisteredGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "exercise_tracker",
		Subsystem: "persistence",
		Name:      "last_user_registered_timestamp_seconds",
		Help:      "Unix timestamp of the most recent user persisted to Postgres.",
	})
	exercisePersistGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "exercise_tracker",
		Subsystem: "persistence",
		Name:      "last_exercise_persisted_timestamp_seconds",
		Help:      "Unix timestamp of the most recent exercise persisted to Postgres.",
	})
)

func init() {
	prometheus.MustRegister(userRegisteredGauge, exercisePersistGauge)
}

// RecordUserRegistered updates the user registration watermark gauge.
func RecordUserRegistered(ts time.Time) {
	if ts.IsZero() {
		return
	}
	userRegisteredGauge.Set(float64(ts.Unix()))
}

// RecordExercisePersisted updates the exercise persistence watermark gauge.
func RecordExercisePersisted(ts time.Time) {
	if ts.IsZero() {
		return
	}
	exercisePersistGauge.Set(float64(ts.Unix()))
}
