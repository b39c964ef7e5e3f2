package engine_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supplierfront/internal/domain"
	"supplierfront/internal/engine"
)

func ts(t *testing.T, s string) *domain.Timestamp {
	t.Helper()
	parsed, err := domain.ParseTimestamp(s)
	require.NoError(t, err)
	return &parsed
}

func boolPtr(b bool) *bool { return &b }

func sampleFrameworks() []domain.Framework {
	return []domain.Framework{
		{Slug: "g-cloud-11", Family: "g-cloud", Status: domain.FrameworkLive, Lots: []domain.Lot{{Slug: "cloud-hosting", Name: "Cloud hosting"}}},
		{Slug: "g-cloud-12", Family: "g-cloud", Status: domain.FrameworkOpen, Lots: []domain.Lot{
			{Slug: "cloud-hosting", Name: "Cloud hosting"},
			{Slug: "cloud-software", Name: "Cloud software"},
		}},
		{Slug: "dos-5", Family: "digital-outcomes-and-specialists", Status: domain.FrameworkComing},
		{Slug: "dos-4", Family: "digital-outcomes-and-specialists", Status: domain.FrameworkExpired},
	}
}

func TestGetFrameworkOrFail(t *testing.T) {
	frameworks := sampleFrameworks()
	cases := []struct {
		name    string
		slug    string
		allowed []domain.FrameworkStatus
		wantErr bool
	}{
		{name: "default allows open", slug: "g-cloud-12"},
		{name: "default allows live", slug: "g-cloud-11"},
		{name: "default rejects coming", slug: "dos-5", wantErr: true},
		{name: "default rejects expired", slug: "dos-4", wantErr: true},
		{name: "explicit set", slug: "dos-5", allowed: []domain.FrameworkStatus{domain.FrameworkComing}},
		{name: "explicit set rejects", slug: "g-cloud-12", allowed: []domain.FrameworkStatus{domain.FrameworkComing}, wantErr: true},
		{name: "any status", slug: "dos-4", allowed: engine.AnyStatus},
		{name: "missing slug", slug: "nope", wantErr: true},
		{name: "missing slug with any status", slug: "nope", allowed: engine.AnyStatus, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fw, err := engine.GetFrameworkOrFail(frameworks, tc.slug, tc.allowed)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, engine.ErrNotFound))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.slug, fw.Slug)
		})
	}
}

func TestGetFrameworkOrFailReportsStatus(t *testing.T) {
	_, err := engine.GetFrameworkOrFail(sampleFrameworks(), "dos-5", nil)
	var lookupErr *engine.LookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.Equal(t, domain.FrameworkComing, lookupErr.Status)
	assert.Equal(t, "dos-5", lookupErr.Slug)
}

func TestGetFrameworkLotOrFail(t *testing.T) {
	fw := sampleFrameworks()[1]
	lot, err := engine.GetFrameworkLotOrFail(fw, "cloud-software")
	require.NoError(t, err)
	assert.Equal(t, "Cloud software", lot.Name)

	_, err = engine.GetFrameworkLotOrFail(fw, "cloud-support")
	assert.ErrorIs(t, err, engine.ErrNotFound)
}

func TestGetFrameworkAndLotOrFail(t *testing.T) {
	fw, lot, err := engine.GetFrameworkAndLotOrFail(sampleFrameworks(), "g-cloud-12", "cloud-hosting", nil)
	require.NoError(t, err)
	assert.Equal(t, "g-cloud-12", fw.Slug)
	assert.Equal(t, "cloud-hosting", lot.Slug)

	_, _, err = engine.GetFrameworkAndLotOrFail(sampleFrameworks(), "dos-5", "anything", nil)
	assert.ErrorIs(t, err, engine.ErrNotFound)
}

func TestGroupFrameworksBySlug(t *testing.T) {
	grouped, err := engine.GroupFrameworksBySlug(sampleFrameworks())
	require.NoError(t, err)
	assert.Len(t, grouped, 4)
	assert.Equal(t, domain.FrameworkComing, grouped["dos-5"].Status)

	dup := append(sampleFrameworks(), domain.Framework{Slug: "dos-5", Status: domain.FrameworkOpen})
	_, err = engine.GroupFrameworksBySlug(dup)
	assert.ErrorIs(t, err, engine.ErrDuplicateSlug)
}

func TestFilterByStatus(t *testing.T) {
	frameworks := sampleFrameworks()
	got := engine.FilterByStatus(frameworks, domain.FrameworkOpen, nil)
	require.Len(t, got, 1)
	assert.Equal(t, "g-cloud-12", got[0].Slug)

	got = engine.FilterByStatus(frameworks, domain.FrameworkLive, func(fw domain.Framework) bool {
		return len(fw.Lots) > 1
	})
	assert.Empty(t, got)
	assert.NotNil(t, got)

	got = engine.FilterByStatus(frameworks, domain.FrameworkPending, nil)
	assert.Empty(t, got)
}
