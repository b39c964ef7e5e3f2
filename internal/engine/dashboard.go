package engine

import (
	"sort"

	"supplierfront/internal/domain"
)

// DashboardFramework is a framework as seen by one supplier on their dashboard.
type DashboardFramework struct {
	domain.Framework
	Interest                   *domain.SupplierFrameworkInfo `json:"interest,omitempty"`
	RegisteredInterest         bool                          `json:"registered_interest"`
	MadeApplication            bool                          `json:"made_application"`
	NeedsToCompleteDeclaration bool                          `json:"needs_to_complete_declaration"`
}

// Dashboard is the supplier's home page: who they are and every framework
// grouped by lifecycle status.
type Dashboard struct {
	Supplier   domain.Supplier      `json:"supplier"`
	Coming     []DashboardFramework `json:"coming"`
	Open       []DashboardFramework `json:"open"`
	Pending    []DashboardFramework `json:"pending"`
	Standstill []DashboardFramework `json:"standstill"`
	Live       []DashboardFramework `json:"live"`
}

// BuildDashboard merges every framework with the supplier's interest in it
// and groups the result by lifecycle status. Frameworks are listed newest
// slug first. Standstill only shows frameworks the supplier applied to and
// live only those where they have services.
func BuildDashboard(supplier domain.Supplier, frameworks []domain.Framework, interests []domain.SupplierFrameworkInfo) Dashboard {
	bySlug := make(map[string]domain.SupplierFrameworkInfo, len(interests))
	for _, info := range interests {
		bySlug[info.FrameworkSlug] = info
	}

	entries := make([]DashboardFramework, 0, len(frameworks))
	for _, fw := range frameworks {
		entry := DashboardFramework{Framework: fw}
		if info, ok := bySlug[fw.Slug]; ok {
			entry.Interest = &info
			entry.RegisteredInterest = true
			entry.MadeApplication = DeclarationStatusFromInfo(&info) == domain.DeclarationComplete &&
				info.CompleteDraftsCount > 0
			entry.NeedsToCompleteDeclaration = SupplierOnFrameworkFromInfo(&info) &&
				info.AgreementReturned != nil && !*info.AgreementReturned
		}
		entries = append(entries, entry)
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Slug > entries[j].Slug })

	return Dashboard{
		Supplier: supplier,
		Coming:   FilterByStatus(entries, domain.FrameworkComing, nil),
		Open:     FilterByStatus(entries, domain.FrameworkOpen, nil),
		Pending:  FilterByStatus(entries, domain.FrameworkPending, nil),
		Standstill: FilterByStatus(entries, domain.FrameworkStandstill, func(e DashboardFramework) bool {
			return e.MadeApplication
		}),
		Live: FilterByStatus(entries, domain.FrameworkLive, func(e DashboardFramework) bool {
			return e.Interest != nil && e.Interest.ServicesCount > 0
		}),
	}
}
