package reddit

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var fetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "rxddit",
	Subsystem: "reddit",
	Name:      "fetch_duration_seconds",
	Help:      "Duration of upstream reddit fetches.",
	Buckets:   prometheus.DefBuckets,
}, []string{"endpoint"})
