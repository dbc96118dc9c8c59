// SPDX-License-Identifier: MIT

// Package metrics records per-run Prometheus metrics for the enrichment
// pipeline on a private registry, and exports them in the node_exporter
// textfile format. A nil *Recorder is valid and records nothing.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Label values of the "side" dimension.
const (
	SideRow = "row"
	SideCol = "col"
)

// SignificanceLevel is the p-value below which a label counts as significant.
const SignificanceLevel = 0.05

const namespace = "trienrich"

// Recorder owns one registry and the collectors registered on it.
type Recorder struct {
	reg *prometheus.Registry

	stageDuration *prometheus.HistogramVec
	entities      *prometheus.GaugeVec
	groups        *prometheus.GaugeVec
	tables        *prometheus.CounterVec
	significant   *prometheus.CounterVec
}

// New returns a Recorder with all collectors registered.
func New() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Wall time of each pipeline stage.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
		}, []string{"stage"}),
		entities: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "entities",
			Help:      "Labeled entities in the last run.",
		}, []string{"side"}),
		groups: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "groups",
			Help:      "Non-empty groups in the last run.",
		}, []string{"side"}),
		tables: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contingency_tables_total",
			Help:      "Contingency tables tested.",
		}, []string{"side"}),
		significant: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "significant_labels_total",
			Help:      "Group labels with p-value below 0.05.",
		}, []string{"side"}),
	}
	r.reg.MustRegister(r.stageDuration, r.entities, r.groups, r.tables, r.significant)

	return r
}

// Registry exposes the registry for scraping or inspection.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}

	return r.reg
}

// ObserveStage records the duration of one stage.
func (r *Recorder) ObserveStage(stage string, d time.Duration) {
	if r == nil {
		return
	}
	r.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// SetEntities records the number of labeled entities on a side.
func (r *Recorder) SetEntities(side string, n int) {
	if r == nil {
		return
	}
	r.entities.WithLabelValues(side).Set(float64(n))
}

// SetGroups records the number of non-empty groups on a side.
func (r *Recorder) SetGroups(side string, n int) {
	if r == nil {
		return
	}
	r.groups.WithLabelValues(side).Set(float64(n))
}

// AddTables counts tested contingency tables.
func (r *Recorder) AddTables(side string, n int) {
	if r == nil {
		return
	}
	r.tables.WithLabelValues(side).Add(float64(n))
}

// AddSignificant counts labels with p < SignificanceLevel.
func (r *Recorder) AddSignificant(side string, n int) {
	if r == nil {
		return
	}
	r.significant.WithLabelValues(side).Add(float64(n))
}

// WriteTextfile writes all metrics to path atomically; see
// prometheus.WriteToTextfile.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("metrics.WriteTextfile: %w", err)
	}

	return nil
}
