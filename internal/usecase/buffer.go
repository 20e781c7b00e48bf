package usecase

import (
	"math"

	"studio-booking/internal/data/entity"
)

// ResolveBuffer returns the first candidate that is a finite number strictly
// greater than zero, scanned left-to-right, or 0 when none qualifies. The
// caller encodes the priority cascade in the candidate order.
func ResolveBuffer(candidates ...*float64) float64 {
	for _, candidate := range candidates {
		if candidate == nil {
			continue
		}
		v := *candidate
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v > 0 {
			return v
		}
	}
	return 0
}

// resolveServiceBuffers resolves the effective before/after buffers for a
// service + visit-type combination. Cascade: service-specific override →
// tenant global override → tenant visit-type default → service custom
// buffer → tenant studio default → configured fallback.
func resolveServiceBuffers(svc *entity.Service, setting *entity.Setting, isHomeVisit bool, fallback float64) (before, after float64) {
	var svcBefore, svcAfter *float64
	if isHomeVisit {
		svcBefore, svcAfter = svc.HomeBufferBefore, svc.HomeBufferAfter
	} else {
		svcBefore, svcAfter = svc.BufferBefore, svc.BufferAfter
	}

	var tenantBefore, tenantAfter, visitBefore, visitAfter, studioDefault *float64
	if setting != nil {
		tenantBefore, tenantAfter = setting.BufferBefore, setting.BufferAfter
		if isHomeVisit {
			visitBefore, visitAfter = setting.HomeBufferBefore, setting.HomeBufferAfter
		} else {
			visitBefore, visitAfter = setting.StudioBufferBefore, setting.StudioBufferAfter
		}
		studioDefault = setting.DefaultBuffer
	}

	before = ResolveBuffer(svcBefore, tenantBefore, visitBefore, svc.CustomBuffer, studioDefault, &fallback)
	after = ResolveBuffer(svcAfter, tenantAfter, visitAfter, svc.CustomBuffer, studioDefault, &fallback)
	return before, after
}
