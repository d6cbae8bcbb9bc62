package api

import (
	"sort"
	"sync"
	"time"
)

// RequestTrace is the timing of a single request
type RequestTrace struct {
	RequestID string        `json:"requestId"`
	Method    string        `json:"method"`
	Route     string        `json:"route"`
	Path      string        `json:"path"`
	Status    int           `json:"status"`
	StartTime time.Time     `json:"startTime"`
	Duration  time.Duration `json:"duration"`
	Error     string        `json:"error,omitempty"`
}

// RouteMetrics aggregates metrics for a specific route
type RouteMetrics struct {
	Method      string        `json:"method"`
	Route       string        `json:"route"`
	Count       int64         `json:"count"`
	ErrorCount  int64         `json:"errorCount"`
	TotalTime   time.Duration `json:"totalTime"`
	AvgTime     time.Duration `json:"avgTime"`
	MinTime     time.Duration `json:"minTime"`
	MaxTime     time.Duration `json:"maxTime"`
	LastRequest time.Time     `json:"lastRequest"`
}

// MetricsSummary is the payload of the metrics endpoint
type MetricsSummary struct {
	TotalRequests int64          `json:"totalRequests"`
	TotalErrors   int64          `json:"totalErrors"`
	ErrorRate     float64        `json:"errorRate"`
	Since         time.Time      `json:"since"`
	Routes        []RouteMetrics `json:"routes"`
	Recent        []RequestTrace `json:"recent"`
}

// MetricsCollector collects and aggregates request metrics in memory
type MetricsCollector struct {
	mu            sync.RWMutex
	traces        []RequestTrace
	maxTraces     int
	routeMetrics  map[string]*RouteMetrics
	totalRequests int64
	totalErrors   int64
	since         time.Time
}

// NewMetricsCollector keeps at most maxTraces recent traces
func NewMetricsCollector(maxTraces int) *MetricsCollector {
	return &MetricsCollector{
		traces:       make([]RequestTrace, 0, maxTraces),
		maxTraces:    maxTraces,
		routeMetrics: make(map[string]*RouteMetrics),
		since:        time.Now(),
	}
}

// RecordTrace adds a finished request to the aggregates
func (mc *MetricsCollector) RecordTrace(trace RequestTrace) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if mc.maxTraces > 0 {
		if len(mc.traces) >= mc.maxTraces {
			mc.traces = mc.traces[1:]
		}
		mc.traces = append(mc.traces, trace)
	}

	mc.totalRequests++
	if trace.Status >= 400 {
		mc.totalErrors++
	}

	key := trace.Method + " " + trace.Route
	m, ok := mc.routeMetrics[key]
	if !ok {
		m = &RouteMetrics{Method: trace.Method, Route: trace.Route, MinTime: trace.Duration}
		mc.routeMetrics[key] = m
	}
	m.Count++
	if trace.Status >= 400 {
		m.ErrorCount++
	}
	m.TotalTime += trace.Duration
	m.AvgTime = m.TotalTime / time.Duration(m.Count)
	if trace.Duration < m.MinTime {
		m.MinTime = trace.Duration
	}
	if trace.Duration > m.MaxTime {
		m.MaxTime = trace.Duration
	}
	m.LastRequest = trace.StartTime
}

// GetRouteMetrics returns a copy of the per-route metrics, busiest first
func (mc *MetricsCollector) GetRouteMetrics() []RouteMetrics {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	routes := make([]RouteMetrics, 0, len(mc.routeMetrics))
	for _, m := range mc.routeMetrics {
		routes = append(routes, *m)
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Count != routes[j].Count {
			return routes[i].Count > routes[j].Count
		}
		return routes[i].Method+routes[i].Route < routes[j].Method+routes[j].Route
	})
	return routes
}

// GetTraces returns up to limit traces, newest first
func (mc *MetricsCollector) GetTraces(limit int) []RequestTrace {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	if limit <= 0 || limit > len(mc.traces) {
		limit = len(mc.traces)
	}
	result := make([]RequestTrace, 0, limit)
	for i := len(mc.traces) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, mc.traces[i])
	}
	return result
}

// GetSummary returns the overall metrics with the route breakdown
func (mc *MetricsCollector) GetSummary(recent int) MetricsSummary {
	routes := mc.GetRouteMetrics()
	traces := mc.GetTraces(recent)

	mc.mu.RLock()
	defer mc.mu.RUnlock()

	var errorRate float64
	if mc.totalRequests > 0 {
		errorRate = float64(mc.totalErrors) / float64(mc.totalRequests)
	}

	return MetricsSummary{
		TotalRequests: mc.totalRequests,
		TotalErrors:   mc.totalErrors,
		ErrorRate:     errorRate,
		Since:         mc.since,
		Routes:        routes,
		Recent:        traces,
	}
}
