package booking

import "time"

// DisputeWindowDuration is how long after checkout a guest may file a dispute.
// Settlement is frozen for the same period.
const DisputeWindowDuration = 48 * time.Hour

// MinDisputeDescriptionLen is the minimum description length for a dispute.
// Short descriptions are rejected so the review team gets actionable detail.
const MinDisputeDescriptionLen = 20

// DisputeReason is the closed taxonomy of dispute reason codes.
type DisputeReason string

const (
	DisputePropertyNotAsDescribed DisputeReason = "property_not_as_described"
	DisputeCleanlinessIssues      DisputeReason = "cleanliness_issues"
	DisputeAmenitiesMissing       DisputeReason = "amenities_missing"
	DisputeSafetyConcerns         DisputeReason = "safety_concerns"
	DisputeHostBehavior           DisputeReason = "host_behavior"
	DisputeEarlyCheckoutForced    DisputeReason = "early_checkout_forced"
	DisputeOther                  DisputeReason = "other"
)

// IsValid returns true if the reason code is part of the taxonomy.
func (r DisputeReason) IsValid() bool {
	switch r {
	case DisputePropertyNotAsDescribed, DisputeCleanlinessIssues, DisputeAmenitiesMissing,
		DisputeSafetyConcerns, DisputeHostBehavior, DisputeEarlyCheckoutForced, DisputeOther:
		return true
	}
	return false
}

// DisputeResolution is the admin verdict that closes a dispute.
type DisputeResolution string

const (
	ResolutionGuestFavor DisputeResolution = "guest_favor"
	ResolutionHostFavor  DisputeResolution = "host_favor"
	ResolutionSplit      DisputeResolution = "split"
)

// IsValid returns true if the resolution is recognized.
func (r DisputeResolution) IsValid() bool {
	switch r {
	case ResolutionGuestFavor, ResolutionHostFavor, ResolutionSplit:
		return true
	}
	return false
}
