package admin

import (
	"strings"

	regTypes "github.com/Lageebro/nalandabatch/pkg/registration/types"
)

// ListStats are the dashboard counters, computed over the filtered set.
type ListStats struct {
	Total    int `json:"total"`
	Verified int `json:"verified"`
	Scanned  int `json:"scanned"`
}

// FilterParticipants keeps records whose name or batch contains the search
// term, case-insensitively. An empty term keeps everything.
func FilterParticipants(participants []regTypes.Participant, searchTerm string) []regTypes.Participant {
	if searchTerm == "" {
		return participants
	}

	lowerTerm := strings.ToLower(searchTerm)
	filtered := []regTypes.Participant{}
	for _, p := range participants {
		if strings.Contains(strings.ToLower(p.Name), lowerTerm) ||
			strings.Contains(strings.ToLower(p.Batch), lowerTerm) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// ComputeStats counts total, verified and scanned records.
func ComputeStats(participants []regTypes.Participant) ListStats {
	stats := ListStats{Total: len(participants)}
	for _, p := range participants {
		if p.IsVerified() {
			stats.Verified++
		}
		if p.Scanned {
			stats.Scanned++
		}
	}
	return stats
}
