package models

// ✅ Connection request statuses
const (
	StatusInterested = "interested"
	StatusIgnored    = "ignored"
	StatusAccepted   = "accepted"
	StatusRejected   = "rejected"
)

// ✅ Gender values
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// ✅ Auth providers
const (
	AuthProviderLocal  = "local"
	AuthProviderGoogle = "google"
)

// IsInitialStatus reports whether a status is allowed on a new request
func IsInitialStatus(status string) bool {
	return status == StatusInterested || status == StatusIgnored
}

// IsReviewStatus reports whether a status is a valid review decision
func IsReviewStatus(status string) bool {
	return status == StatusAccepted || status == StatusRejected
}

// IsCancelable reports whether a request may still be withdrawn by its sender
func IsCancelable(status string) bool {
	return status == StatusInterested || status == StatusIgnored
}
