package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// PoolStats periodically publishes connection pool statistics as Prometheus gauges
type PoolStats struct {
	db   *sql.DB
	log  *logrus.Logger
	cron *cron.Cron

	open         prometheus.Gauge
	inUse        prometheus.Gauge
	idle         prometheus.Gauge
	waitCount    prometheus.Gauge
	waitDuration prometheus.Gauge
}

// NewPoolStats creates the pool gauges and registers them on reg
func NewPoolStats(db *sql.DB, reg prometheus.Registerer, log *logrus.Logger) (*PoolStats, error) {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "transactions",
			Subsystem: "db_pool",
			Name:      name,
			Help:      help,
		})
	}

	s := &PoolStats{
		db:           db,
		log:          log,
		cron:         cron.New(),
		open:         gauge("open_connections", "Established connections, in use and idle"),
		inUse:        gauge("in_use_connections", "Connections currently in use"),
		idle:         gauge("idle_connections", "Idle connections"),
		waitCount:    gauge("wait_count", "Total number of connections waited for"),
		waitDuration: gauge("wait_duration_seconds", "Total time blocked waiting for a connection"),
	}

	for _, c := range []prometheus.Collector{s.open, s.inUse, s.idle, s.waitCount, s.waitDuration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register pool metric: %w", err)
		}
	}
	return s, nil
}

// Start samples the pool immediately and then every interval
func (s *PoolStats) Start(interval time.Duration) error {
	s.Collect()
	if _, err := s.cron.AddFunc(fmt.Sprintf("@every %s", interval), s.Collect); err != nil {
		return fmt.Errorf("failed to schedule pool stats: %w", err)
	}
	s.cron.Start()
	return nil
}

// Stop halts the schedule and waits for a running sample to finish
func (s *PoolStats) Stop() {
	<-s.cron.Stop().Done()
}

// Collect takes one snapshot of the pool
func (s *PoolStats) Collect() {
	st := s.db.Stats()

	s.open.Set(float64(st.OpenConnections))
	s.inUse.Set(float64(st.InUse))
	s.idle.Set(float64(st.Idle))
	s.waitCount.Set(float64(st.WaitCount))
	s.waitDuration.Set(st.WaitDuration.Seconds())

	s.log.WithFields(logrus.Fields{
		"open":       st.OpenConnections,
		"in_use":     st.InUse,
		"idle":       st.Idle,
		"max_open":   st.MaxOpenConnections,
		"wait_count": st.WaitCount,
	}).Debug("Connection pool stats")
}
