package models

// FollowResult describes the outcome of an idempotent follow/unfollow.
type FollowResult struct {
	TargetID  string `json:"targetId"`
	Following bool   `json:"following"`
	// Changed is false when the call was a no-op ("already following"/"was not following").
	Changed bool `json:"changed"`
}
