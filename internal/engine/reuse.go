package engine

import (
	"slices"
	"sort"

	"supplierfront/internal/domain"
)

// OrderFrameworksForReuse returns the frameworks whose declarations may be
// reused, most recently closed first. Frameworks without a close date or
// without the reuse flag are dropped.
func OrderFrameworksForReuse(frameworks []domain.Framework) []domain.Framework {
	out := make([]domain.Framework, 0, len(frameworks))
	for _, fw := range frameworks {
		if fw.AllowDeclarationReuse && fw.ApplicationsCloseAtUTC != nil {
			out = append(out, fw)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ApplicationsCloseAtUTC.After(out[j].ApplicationsCloseAtUTC.Time)
	})
	return out
}

// SelectFrameworkForReuse picks the framework whose declaration the supplier
// should carry forward: the most recently closed reusable framework the
// supplier is on, skipping any slug in exclude. ok is false when nothing
// qualifies.
func SelectFrameworkForReuse(infos []domain.SupplierFrameworkInfo, frameworks []domain.Framework, exclude []string) (fw domain.Framework, ok bool) {
	onFramework := make(map[string]domain.SupplierFrameworkInfo, len(infos))
	for _, info := range infos {
		if info.OnFramework != nil && *info.OnFramework {
			onFramework[info.FrameworkSlug] = info
		}
	}
	for _, candidate := range OrderFrameworksForReuse(frameworks) {
		if _, found := onFramework[candidate.Slug]; !found {
			continue
		}
		if slices.Contains(exclude, candidate.Slug) {
			continue
		}
		return candidate, true
	}
	return domain.Framework{}, false
}
