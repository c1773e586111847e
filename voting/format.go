// Copyright (c) 2026 the Movie Night Ranker authors.
// Source-available; see LICENSE.

package voting

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/movienight/ranker/models"
)

// FormatRanking renders the ranked totals as a chat message. Pure
// serialization: ordering and totals come from Aggregate.
func FormatRanking(rankings []models.RankedMovie) string {
	var b strings.Builder
	b.WriteString("🏆 Voting results:\n")
	for _, r := range rankings {
		fmt.Fprintf(&b, "%s: %s — %.2f points\n", humanize.Ordinal(r.Rank), r.Title, r.Total)
	}
	return b.String()
}

// FormatContributions renders each voter's weighted contribution per
// movie. Voters and movies are sorted by name so the report is
// deterministic.
func FormatContributions(contributions map[string]map[string]float64) string {
	voters := make([]string, 0, len(contributions))
	for voter := range contributions {
		voters = append(voters, voter)
	}
	sort.Strings(voters)

	var b strings.Builder
	b.WriteString("📊 Contribution per voter:\n")
	for _, voter := range voters {
		fmt.Fprintf(&b, "\n👤 %s:\n", voter)

		byMovie := contributions[voter]
		titles := make([]string, 0, len(byMovie))
		for title := range byMovie {
			titles = append(titles, title)
		}
		sort.Strings(titles)

		for _, title := range titles {
			fmt.Fprintf(&b, "  → %s: %.2f points\n", title, byMovie[title])
		}
	}
	return b.String()
}
