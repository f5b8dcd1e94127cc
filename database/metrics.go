/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/uptrace/bun"
)

const (
	metricsNamespace = "gameaccounts"
	metricsSubsystem = "db"
)

// MetricsHook observes the duration of every statement in a histogram labelled
// by operation and status.
type MetricsHook struct {
	duration *prometheus.HistogramVec
}

var _ bun.QueryHook = (*MetricsHook)(nil)

// NewMetricsHook registers the query histogram on reg. A histogram already
// registered by an earlier hook is reused.
func NewMetricsHook(reg prometheus.Registerer) (*MetricsHook, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	hist := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "query_duration_seconds",
		Help:      "Duration of database statements.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "status"})

	if err := reg.Register(hist); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return nil, err
		}
		existing, ok := already.ExistingCollector.(*prometheus.HistogramVec)
		if !ok {
			return nil, err
		}
		hist = existing
	}
	return &MetricsHook{duration: hist}, nil
}

func (h *MetricsHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h *MetricsHook) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	h.duration.
		WithLabelValues(queryOperation(event), queryStatus(event.Err)).
		Observe(time.Since(event.StartTime).Seconds())
}

// Collector exposes the underlying histogram.
func (h *MetricsHook) Collector() *prometheus.HistogramVec {
	return h.duration
}

func queryOperation(event *bun.QueryEvent) string {
	if op := event.Operation(); op != "" {
		return op
	}
	return "UNKNOWN"
}

func queryStatus(err error) string {
	switch {
	case err == nil, errors.Is(err, sql.ErrNoRows):
		return "ok"
	default:
		return "error"
	}
}
