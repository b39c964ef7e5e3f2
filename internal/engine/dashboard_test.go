package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supplierfront/internal/domain"
	"supplierfront/internal/engine"
)

func slugsOf(entries []engine.DashboardFramework) []string {
	out := []string{}
	for _, e := range entries {
		out = append(out, e.Slug)
	}
	return out
}

func TestBuildDashboard(t *testing.T) {
	frameworks := []domain.Framework{
		{Slug: "g-cloud-10", Status: domain.FrameworkLive},
		{Slug: "g-cloud-11", Status: domain.FrameworkLive},
		{Slug: "g-cloud-12", Status: domain.FrameworkStandstill},
		{Slug: "dos-4", Status: domain.FrameworkStandstill},
		{Slug: "dos-5", Status: domain.FrameworkOpen},
		{Slug: "dos-6", Status: domain.FrameworkComing},
		{Slug: "dos-7", Status: domain.FrameworkComing},
		{Slug: "dc-1", Status: domain.FrameworkPending},
	}
	complete := &domain.Declaration{Status: domain.DeclarationComplete}
	interests := []domain.SupplierFrameworkInfo{
		{FrameworkSlug: "g-cloud-11", SupplierID: 1, OnFramework: boolPtr(true), AgreementReturned: boolPtr(false), ServicesCount: 3},
		{FrameworkSlug: "g-cloud-10", SupplierID: 1, OnFramework: boolPtr(true), AgreementReturned: nil},
		{FrameworkSlug: "g-cloud-12", SupplierID: 1, Declaration: complete, CompleteDraftsCount: 2},
		{FrameworkSlug: "dos-4", SupplierID: 1, Declaration: complete, CompleteDraftsCount: 0},
		{FrameworkSlug: "dos-5", SupplierID: 1},
	}

	d := engine.BuildDashboard(domain.Supplier{ID: 1, Name: "Example Ltd"}, frameworks, interests)

	assert.Equal(t, "Example Ltd", d.Supplier.Name)

	assert.Equal(t, []string{"dos-7", "dos-6"}, slugsOf(d.Coming))
	assert.Equal(t, []string{"dos-5"}, slugsOf(d.Open))
	assert.Equal(t, []string{"dc-1"}, slugsOf(d.Pending))
	assert.Equal(t, []string{"g-cloud-12"}, slugsOf(d.Standstill))
	assert.Equal(t, []string{"g-cloud-11"}, slugsOf(d.Live))

	require.Len(t, d.Live, 1)
	assert.True(t, d.Live[0].RegisteredInterest)
	assert.True(t, d.Live[0].NeedsToCompleteDeclaration)
	assert.True(t, d.Standstill[0].MadeApplication)
	assert.True(t, d.Open[0].RegisteredInterest)
	assert.False(t, d.Open[0].MadeApplication)
	assert.False(t, d.Pending[0].RegisteredInterest)
	assert.Nil(t, d.Pending[0].Interest)
}

func TestBuildDashboardEmpty(t *testing.T) {
	d := engine.BuildDashboard(domain.Supplier{}, nil, nil)
	assert.Empty(t, d.Open)
	assert.NotNil(t, d.Open)
}
