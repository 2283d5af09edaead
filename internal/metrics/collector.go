package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/stlalpha/simplekit/pkg/simplekit"
)

const namespace = "simplekit"

var (
	sessionsDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "sessions"),
		"running toolkit sessions",
		nil, nil,
	)
	framesDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "runloop", "frames_total"),
		"run loop frames",
		[]string{"session"}, nil,
	)
	nullFramesDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "runloop", "null_frames_total"),
		"frames translated with a synthetic null event",
		[]string{"session"}, nil,
	)
	rawEventsDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "runloop", "raw_events_total"),
		"fundamental events received before coalescing",
		[]string{"session"}, nil,
	)
	coalescedDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "runloop", "coalesced_events_total"),
		"fundamental events removed by coalescing",
		[]string{"session"}, nil,
	)
	callsDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "translator", "calls_total"),
		"translator update calls",
		[]string{"session"}, nil,
	)
	emittedDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "translator", "emitted_total"),
		"semantic events dispatched",
		[]string{"session"}, nil,
	)
)

// collector turns registry sessions into Prometheus metrics at scrape time
type collector struct {
	reg *Registry
}

// NewCollector creates a collector over reg
func NewCollector(reg *Registry) prometheus.Collector {
	return collector{reg: reg}
}

// Describe implements prometheus.Collector
func (collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- sessionsDesc
	ch <- framesDesc
	ch <- nullFramesDesc
	ch <- rawEventsDesc
	ch <- coalescedDesc
	ch <- callsDesc
	ch <- emittedDesc
}

// Collect implements prometheus.Collector
func (c collector) Collect(ch chan<- prometheus.Metric) {
	sessions := c.reg.List()
	ch <- prometheus.MustNewConstMetric(sessionsDesc, prometheus.GaugeValue, float64(len(sessions)))

	for _, s := range sessions {
		id := s.ID.String()
		counter := func(desc *prometheus.Desc, v uint64) {
			ch <- prometheus.MustNewConstMetric(desc, prometheus.CounterValue, float64(v), id)
		}
		counter(framesDesc, s.Stats.Frames)
		counter(nullFramesDesc, s.Stats.NullFrames)
		counter(rawEventsDesc, s.Stats.RawEvents)
		counter(coalescedDesc, s.Stats.Coalesced())
		counter(callsDesc, s.Stats.Calls)
		counter(emittedDesc, s.Stats.Emitted)
	}
}

// EventCounter counts dispatched semantic events by type
type EventCounter struct {
	vec *prometheus.CounterVec
}

// NewEventCounter creates the simplekit_events_total counter
func NewEventCounter() *EventCounter {
	return &EventCounter{vec: prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_total",
		Help:      "semantic events dispatched, by type",
	}, []string{"type"})}
}

// Wrap returns a listener that counts each event and then calls next
func (c *EventCounter) Wrap(next simplekit.EventListener) simplekit.EventListener {
	return func(ev simplekit.SKEvent) {
		c.vec.WithLabelValues(string(ev.Type)).Inc()
		if next != nil {
			next(ev)
		}
	}
}

// Describe implements prometheus.Collector
func (c *EventCounter) Describe(ch chan<- *prometheus.Desc) {
	c.vec.Describe(ch)
}

// Collect implements prometheus.Collector
func (c *EventCounter) Collect(ch chan<- prometheus.Metric) {
	c.vec.Collect(ch)
}
