// Package profiles implements the status-profile rule matcher used to pick
// an optional asset-version status for an assembled instance.
package profiles

import "strings"

// Profile is one status rule. Empty criteria lists match anything; the
// matcher prefers the profile with the most explicit criteria satisfied.
type Profile struct {
	ProductTypes []string `toml:"product_types" json:"product_types,omitempty"`
	HostNames    []string `toml:"host_names" json:"host_names,omitempty"`
	TaskTypes    []string `toml:"task_types" json:"task_types,omitempty"`
	Status       string   `toml:"status" json:"status"`
}

// Criteria describes the instance being matched.
type Criteria struct {
	ProductType string
	HostName    string
	TaskType    string
}

// Filter returns the best matching profile, or nil when no profile
// matches. Matching is case-insensitive; a profile with a criteria list
// that excludes the instance value is rejected outright.
func Filter(candidates []Profile, criteria Criteria) *Profile {
	var best *Profile
	bestScore := -1
	for i := range candidates {
		profile := &candidates[i]
		score, ok := score(profile, criteria)
		if !ok {
			continue
		}
		if score > bestScore {
			best = profile
			bestScore = score
		}
	}
	return best
}

func score(profile *Profile, criteria Criteria) (int, bool) {
	total := 0
	for _, pair := range []struct {
		values []string
		value  string
	}{
		{profile.ProductTypes, criteria.ProductType},
		{profile.HostNames, criteria.HostName},
		{profile.TaskTypes, criteria.TaskType},
	} {
		if len(pair.values) == 0 {
			continue
		}
		if !containsFold(pair.values, pair.value) {
			return 0, false
		}
		total++
	}
	return total, true
}

func containsFold(values []string, value string) bool {
	for _, candidate := range values {
		if strings.EqualFold(strings.TrimSpace(candidate), strings.TrimSpace(value)) {
			return true
		}
	}
	return false
}
