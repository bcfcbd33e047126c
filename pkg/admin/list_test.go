package admin

import (
	"testing"

	regTypes "github.com/Lageebro/nalandabatch/pkg/registration/types"
)

func testParticipants() []regTypes.Participant {
	return []regTypes.Participant{
		{Name: "Alice", Batch: "B1", Status: regTypes.PARTICIPANT_STATUS_VERIFIED, Scanned: true},
		{Name: "Bob", Batch: "B2", Status: regTypes.PARTICIPANT_STATUS_PENDING},
		{Name: "alicia", Batch: "B1", Status: regTypes.PARTICIPANT_STATUS_VERIFIED},
		{Name: "Charlie", Batch: "ALPHA", Status: regTypes.PARTICIPANT_STATUS_PENDING},
	}
}

func TestFilterParticipants(t *testing.T) {
	tests := []struct {
		term          string
		expectedNames []string
	}{
		{"", []string{"Alice", "Bob", "alicia", "Charlie"}},
		{"ali", []string{"Alice", "alicia"}},
		{"ALI", []string{"Alice", "alicia"}},
		{"b2", []string{"Bob"}},
		{"alpha", []string{"Charlie"}},
		{"nomatch", []string{}},
	}

	for _, test := range tests {
		t.Run("term "+test.term, func(t *testing.T) {
			filtered := FilterParticipants(testParticipants(), test.term)
			if len(filtered) != len(test.expectedNames) {
				t.Fatalf("expected %d results, got %d", len(test.expectedNames), len(filtered))
			}
			for i, name := range test.expectedNames {
				if filtered[i].Name != name {
					t.Errorf("expected %s at position %d, got %s", name, i, filtered[i].Name)
				}
			}
		})
	}
}

func TestComputeStats(t *testing.T) {
	stats := ComputeStats(testParticipants())
	if stats.Total != 4 || stats.Verified != 2 || stats.Scanned != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	// counts reflect only the filtered set
	stats = ComputeStats(FilterParticipants(testParticipants(), "nomatch"))
	if stats.Total != 0 || stats.Verified != 0 || stats.Scanned != 0 {
		t.Errorf("expected empty stats for empty filter result, got %+v", stats)
	}
}
