package kustomize

import (
	"fmt"
)

// NameCollisionError is returned when two distinct schedule names normalize
// to the same kubernetes resource name. Manifests must map one to one to
// schedules, so this aborts the whole render.
type NameCollisionError struct {
	ManifestName string
	ScheduleA    string
	ScheduleB    string
}

func (e *NameCollisionError) Error() string {
	return fmt.Sprintf("schedules %q and %q both normalize to manifest name %q",
		e.ScheduleA, e.ScheduleB, e.ManifestName)
}
