package engine

import (
	"slices"
	"sort"

	"supplierfront/internal/domain"
)

func iterationPriority(s domain.FrameworkStatus) int {
	switch s {
	case domain.FrameworkOpen:
		return 0
	case domain.FrameworkComing:
		return 1
	default:
		return 2
	}
}

// SelectRepresentativeIterations keeps one iteration per framework family,
// preferring open over coming over anything else. Among equal priorities the
// earlier input entry wins. The result is ordered by family name.
func SelectRepresentativeIterations(frameworks []domain.Framework) []domain.Framework {
	sorted := slices.Clone(frameworks)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Family != sorted[j].Family {
			return sorted[i].Family < sorted[j].Family
		}
		return iterationPriority(sorted[i].Status) < iterationPriority(sorted[j].Status)
	})
	out := []domain.Framework{}
	for i, fw := range sorted {
		if i > 0 && sorted[i-1].Family == fw.Family {
			continue
		}
		out = append(out, fw)
	}
	return out
}

// ApplicationSplit is what the become-a-supplier page lists.
type ApplicationSplit struct {
	Open    []domain.Framework `json:"open"`
	Opening []domain.Framework `json:"opening"`
	Closed  []domain.Framework `json:"closed"`
}

// SplitForApplications orders frameworks newest id first, reduces them to one
// iteration per family and buckets the result by whether applications are
// open, about to open, or closed.
func SplitForApplications(frameworks []domain.Framework) ApplicationSplit {
	byID := slices.Clone(frameworks)
	sort.SliceStable(byID, func(i, j int) bool { return byID[i].ID > byID[j].ID })
	split := ApplicationSplit{
		Open:    []domain.Framework{},
		Opening: []domain.Framework{},
		Closed:  []domain.Framework{},
	}
	for _, fw := range SelectRepresentativeIterations(byID) {
		switch fw.Status {
		case domain.FrameworkOpen:
			split.Open = append(split.Open, fw)
		case domain.FrameworkComing:
			split.Opening = append(split.Opening, fw)
		default:
			split.Closed = append(split.Closed, fw)
		}
	}
	return split
}
