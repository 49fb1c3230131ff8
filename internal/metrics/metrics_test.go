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

package metrics

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_IncrementCounter(t *testing.T) {
	c := NewCollector()

	c.IncrementCounter("http.requests", map[string]string{"operation": "listUsers", "status": "200"})
	c.IncrementCounter("http.requests", map[string]string{"status": "200", "operation": "listUsers"})
	c.IncrementCounter("http.requests", map[string]string{"operation": "getUser", "status": "404"})

	assert.Equal(t, int64(2), c.Count("http.requests", map[string]string{"operation": "listUsers", "status": "200"}))
	assert.Equal(t, int64(1), c.Count("http.requests", map[string]string{"operation": "getUser", "status": "404"}))
	assert.Equal(t, int64(0), c.Count("http.requests", nil))
}

func TestCollector_RecordTimer(t *testing.T) {
	c := NewCollector()

	c.RecordTimer("latency", 30*time.Millisecond, nil)
	c.RecordTimer("latency", 10*time.Millisecond, nil)
	c.RecordTimer("latency", 20*time.Millisecond, nil)

	snap := c.Snapshot()
	require.Len(t, snap, 1)
	m := snap[0]
	assert.Equal(t, MetricTypeTimer, m.Type)
	assert.Equal(t, int64(3), m.Count)
	assert.Equal(t, (60 * time.Millisecond).Nanoseconds(), m.Total)
	assert.Equal(t, (10 * time.Millisecond).Nanoseconds(), m.Min)
	assert.Equal(t, (30 * time.Millisecond).Nanoseconds(), m.Max)
}

func TestTimer_Stop(t *testing.T) {
	c := NewCollector()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	c.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Second)
	}

	timer := c.StartTimer("op", map[string]string{"operation": "createUser"})
	d := timer.Stop()

	assert.Equal(t, time.Second, d)
	assert.Equal(t, int64(1), c.Count("op", map[string]string{"operation": "createUser"}))
}

func TestCollector_SnapshotIsSortedCopy(t *testing.T) {
	c := NewCollector()
	tags := map[string]string{"operation": "b"}
	c.IncrementCounter("z", nil)
	c.IncrementCounter("a", tags)

	snap := c.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "a", snap[0].Name)
	assert.Equal(t, "z", snap[1].Name)

	snap[0].Tags["operation"] = "changed"
	tags["operation"] = "changed"
	assert.Equal(t, "b", c.Snapshot()[0].Tags["operation"])
}

func TestCollector_Reset(t *testing.T) {
	c := NewCollector()
	c.IncrementCounter("a", nil)
	c.Reset()
	assert.Empty(t, c.Snapshot())
}

func TestCollector_Concurrent(t *testing.T) {
	c := NewCollector()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				c.IncrementCounter("n", nil)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1000), c.Count("n", nil))
}

func TestCollector_TypesKeptApart(t *testing.T) {
	c := NewCollector()
	c.IncrementCounter("op", nil)
	c.RecordTimer("op", 0, nil)

	snap := c.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, MetricTypeCounter, snap[0].Type)
	assert.Equal(t, MetricTypeTimer, snap[1].Type)
	assert.Equal(t, int64(1), snap[1].Count)
	assert.Equal(t, int64(2), c.Count("op", nil))
}

func TestCollector_SnapshotKeepsZeroMin(t *testing.T) {
	c := NewCollector()
	c.RecordTimer("latency", 0, nil)
	c.RecordTimer("latency", time.Millisecond, nil)

	data, err := json.Marshal(c.Snapshot())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"min_ns":0`)
	assert.Contains(t, string(data), `"max_ns":1000000`)
}

func TestCollector_SnapshotOrdersByName(t *testing.T) {
	c := NewCollector()
	c.IncrementCounter("ab", nil)
	c.IncrementCounter("a", map[string]string{"k": "v"})
	c.IncrementCounter("a", nil)

	snap := c.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, []string{"a", "a", "ab"}, []string{snap[0].Name, snap[1].Name, snap[2].Name})
}
