/*
Package observability turns navigator lifecycle hooks into Prometheus metrics and
structured log records.

Both are plain domain.LifecycleHooks values, so they can be merged and handed to
wayfinder.WithLifecycleHooks:

	metrics := observability.NewMetrics(prometheus.NewRegistry())
	hooks := metrics.Hooks().Merge(observability.LoggingHooks(logger))
*/
package observability
