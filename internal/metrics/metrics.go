// Copyright 2025 Ehab Terra
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package metrics aggregates request counters and timers in memory.
package metrics

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// MetricType represents the type of metric
type MetricType string

const (
	MetricTypeCounter MetricType = "counter"
	MetricTypeTimer   MetricType = "timer"
)

// Metric is the aggregated state of one name and tag set.
type Metric struct {
	Name  string            `json:"name"`
	Type  MetricType        `json:"type"`
	Tags  map[string]string `json:"tags,omitempty"`
	Count int64             `json:"count"`
	// Timer fields, in nanoseconds. Zero for counters.
	Total int64 `json:"total_ns"`
	Min   int64 `json:"min_ns"`
	Max   int64 `json:"max_ns"`
	// LastUpdated is the time of the most recent observation.
	LastUpdated time.Time `json:"last_updated"`
}

// Timer represents a timing measurement
type Timer struct {
	collector *Collector
	name      string
	startTime time.Time
	tags      map[string]string
}

// Collector keeps one aggregate per metric name and tag set.
type Collector struct {
	mu      sync.RWMutex
	metrics map[string]*Metric
	now     func() time.Time
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{
		metrics: make(map[string]*Metric),
		now:     time.Now,
	}
}

// IncrementCounter adds one to the counter identified by name and tags.
func (c *Collector) IncrementCounter(name string, tags map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := c.lookup(name, MetricTypeCounter, tags)
	m.Count++
	m.LastUpdated = c.now()
}

// StartTimer starts a timer; Stop records the elapsed time.
func (c *Collector) StartTimer(name string, tags map[string]string) *Timer {
	return &Timer{
		collector: c,
		name:      name,
		startTime: c.now(),
		tags:      tags,
	}
}

// Stop stops the timer and records the duration
func (t *Timer) Stop() time.Duration {
	d := t.collector.now().Sub(t.startTime)
	t.collector.RecordTimer(t.name, d, t.tags)
	return d
}

// RecordTimer records a timer metric
func (c *Collector) RecordTimer(name string, d time.Duration, tags map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ns := d.Nanoseconds()
	m := c.lookup(name, MetricTypeTimer, tags)
	if m.Count == 0 || ns < m.Min {
		m.Min = ns
	}
	if ns > m.Max {
		m.Max = ns
	}
	m.Count++
	m.Total += ns
	m.LastUpdated = c.now()
}

// Snapshot returns a copy of every metric, ordered by name then tags.
func (c *Collector) Snapshot() []Metric {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.metrics))
	for k := range c.metrics {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := c.metrics[keys[i]], c.metrics[keys[j]]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return keys[i] < keys[j]
	})

	out := make([]Metric, 0, len(keys))
	for _, k := range keys {
		m := *c.metrics[k]
		m.Tags = copyTags(m.Tags)
		out = append(out, m)
	}
	return out
}

// Count returns the number of observations recorded under name and tags,
// counters and timers together, or 0 if none were recorded.
func (c *Collector) Count(name string, tags map[string]string) int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var n int64
	for _, typ := range []MetricType{MetricTypeCounter, MetricTypeTimer} {
		if m, ok := c.metrics[key(name, typ, tags)]; ok {
			n += m.Count
		}
	}
	return n
}

// Reset drops every metric.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.metrics = make(map[string]*Metric)
}

// lookup must be called with mu held.
func (c *Collector) lookup(name string, typ MetricType, tags map[string]string) *Metric {
	k := key(name, typ, tags)
	m, ok := c.metrics[k]
	if !ok {
		m = &Metric{Name: name, Type: typ, Tags: copyTags(tags)}
		c.metrics[k] = m
	}
	return m
}

func key(name string, typ MetricType, tags map[string]string) string {
	if len(tags) == 0 {
		return name + "|" + string(typ)
	}
	pairs := make([]string, 0, len(tags))
	for k, v := range tags {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return name + "{" + strings.Join(pairs, ",") + "}|" + string(typ)
}

func copyTags(tags map[string]string) map[string]string {
	if tags == nil {
		return nil
	}
	out := make(map[string]string, len(tags))
	for k, v := range tags {
		out[k] = v
	}
	return out
}
