package engine

import (
	"fmt"
	"slices"

	"supplierfront/internal/domain"
)

// DefaultAllowedStatuses are the statuses in which a framework is visible to
// suppliers when the caller does not say otherwise.
var DefaultAllowedStatuses = []domain.FrameworkStatus{
	domain.FrameworkOpen,
	domain.FrameworkPending,
	domain.FrameworkStandstill,
	domain.FrameworkLive,
}

// AnyStatus disables the status check in GetFrameworkOrFail.
var AnyStatus = []domain.FrameworkStatus{}

// GetFrameworkOrFail returns the framework with the given slug.
//
// A nil allowed set means DefaultAllowedStatuses; an empty non-nil set (AnyStatus)
// accepts every status. A framework whose status is not allowed is reported
// the same way as a missing one.
func GetFrameworkOrFail(frameworks []domain.Framework, slug string, allowed []domain.FrameworkStatus) (domain.Framework, error) {
	if allowed == nil {
		allowed = DefaultAllowedStatuses
	}
	for _, fw := range frameworks {
		if fw.Slug != slug {
			continue
		}
		if len(allowed) > 0 && !slices.Contains(allowed, fw.Status) {
			return domain.Framework{}, &LookupError{Kind: "framework", Slug: slug, Status: fw.Status}
		}
		return fw, nil
	}
	return domain.Framework{}, notFound("framework", slug)
}

// GetFrameworkLotOrFail returns the first lot of framework with the given slug.
func GetFrameworkLotOrFail(framework domain.Framework, lotSlug string) (domain.Lot, error) {
	for _, lot := range framework.Lots {
		if lot.Slug == lotSlug {
			return lot, nil
		}
	}
	return domain.Lot{}, notFound("lot", framework.Slug+"/"+lotSlug)
}

func GetFrameworkAndLotOrFail(frameworks []domain.Framework, slug, lotSlug string, allowed []domain.FrameworkStatus) (domain.Framework, domain.Lot, error) {
	fw, err := GetFrameworkOrFail(frameworks, slug, allowed)
	if err != nil {
		return domain.Framework{}, domain.Lot{}, err
	}
	lot, err := GetFrameworkLotOrFail(fw, lotSlug)
	if err != nil {
		return domain.Framework{}, domain.Lot{}, err
	}
	return fw, lot, nil
}

// GroupFrameworksBySlug indexes frameworks by slug. Two frameworks sharing a
// slug is a data error and is reported rather than resolved.
func GroupFrameworksBySlug(frameworks []domain.Framework) (map[string]domain.Framework, error) {
	out := make(map[string]domain.Framework, len(frameworks))
	for _, fw := range frameworks {
		if _, ok := out[fw.Slug]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSlug, fw.Slug)
		}
		out[fw.Slug] = fw
	}
	return out, nil
}

// StatusCarrier is anything with a framework lifecycle status, such as a
// Framework or a dashboard entry wrapping one.
type StatusCarrier interface {
	FrameworkStatus() domain.FrameworkStatus
}

// FilterByStatus keeps the items in the given status, in input order. When
// cond is non-nil an item must also satisfy it.
func FilterByStatus[T StatusCarrier](items []T, status domain.FrameworkStatus, cond func(T) bool) []T {
	out := []T{}
	for _, item := range items {
		if item.FrameworkStatus() != status {
			continue
		}
		if cond != nil && !cond(item) {
			continue
		}
		out = append(out, item)
	}
	return out
}
