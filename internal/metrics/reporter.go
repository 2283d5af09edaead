package metrics

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Reporter logs the summed frame counters of all sessions on a cron schedule
type Reporter struct {
	cron *cron.Cron
	reg  *Registry
	log  logrus.FieldLogger
}

// NewReporter schedules a report. The schedule accepts cron syntax with
// seconds or a descriptor such as "@every 1m".
func NewReporter(schedule string, reg *Registry, log logrus.FieldLogger) (*Reporter, error) {
	r := &Reporter{
		cron: cron.New(cron.WithSeconds()),
		reg:  reg,
		log:  log,
	}
	if _, err := r.cron.AddFunc(schedule, r.Report); err != nil {
		return nil, fmt.Errorf("invalid report schedule %q: %w", schedule, err)
	}
	return r, nil
}

// Start runs the schedule in the background
func (r *Reporter) Start() {
	r.cron.Start()
}

// Stop stops the schedule and waits for a running report
func (r *Reporter) Stop() {
	<-r.cron.Stop().Done()
}

// Report logs one stats line now
func (r *Reporter) Report() {
	t := r.reg.Total()
	r.log.WithFields(logrus.Fields{
		"sessions":  r.reg.Len(),
		"frames":    t.Frames,
		"raw":       t.RawEvents,
		"coalesced": t.Coalesced(),
		"calls":     t.Calls,
		"emitted":   t.Emitted,
	}).Info("toolkit stats")
}
