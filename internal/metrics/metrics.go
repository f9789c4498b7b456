// Package metrics exposes counters for isolation-relevant failures. Both
// counters count programming defects, so any non-zero rate is alertable.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MissingTenantContext counts repository calls that failed closed
	// because no tenant scope was active.
	MissingTenantContext = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "stafferly",
		Subsystem: "isolation",
		Name:      "missing_tenant_context_total",
		Help:      "Repository calls rejected because no tenant scope was active.",
	})

	// CrossTenantIntegrity counts writes rejected by a composite tenant
	// foreign key or unique constraint.
	CrossTenantIntegrity = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stafferly",
		Subsystem: "isolation",
		Name:      "cross_tenant_integrity_total",
		Help:      "Writes rejected by a composite tenant constraint.",
	}, []string{"constraint"})
)
