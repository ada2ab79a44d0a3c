package gcp

// InstanceStatus is the closed set of Cloud SQL instance states the
// sequencer distinguishes. Anything the API reports outside this set is
// treated as still provisioning.
type InstanceStatus string

const (
	// StatusRunnable is the single terminal ready state.
	StatusRunnable InstanceStatus = "RUNNABLE"

	// StatusPendingCreate covers an instance still being provisioned.
	StatusPendingCreate InstanceStatus = "PENDING_CREATE"

	// StatusMaintenance covers an instance temporarily unavailable.
	StatusMaintenance InstanceStatus = "MAINTENANCE"

	// StatusFailed is reported for an instance whose creation failed.
	StatusFailed InstanceStatus = "FAILED"

	// StatusNotFound is synthesized when the instance does not exist.
	StatusNotFound InstanceStatus = "NOT_FOUND"
)

// Ready reports whether the instance accepts dependent resource creation.
func (s InstanceStatus) Ready() bool {
	return s == StatusRunnable
}

// Provisioning reports whether the state belongs to the not-yet-ready
// family worth waiting on.
func (s InstanceStatus) Provisioning() bool {
	switch s {
	case StatusRunnable, StatusFailed, StatusNotFound:
		return false
	default:
		return true
	}
}
