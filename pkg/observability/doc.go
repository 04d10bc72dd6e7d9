/*
Package observability exposes editor activity as Prometheus metrics.

Metrics are fed through domain.LifecycleHooks, so the pricing engine itself stays free of any
instrumentation dependency.

	m := observability.NewMetrics(prometheus.DefaultRegisterer)
	ed := pricetree.New(pricetree.WithLifecycleHooks(m.Hooks()))
*/
package observability
