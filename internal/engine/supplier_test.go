package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supplierfront/internal/domain"
	"supplierfront/internal/engine"
)

func TestDeclarationStatusFromInfo(t *testing.T) {
	assert.Equal(t, domain.DeclarationUnstarted, engine.DeclarationStatusFromInfo(nil))
	assert.Equal(t, domain.DeclarationUnstarted, engine.DeclarationStatusFromInfo(&domain.SupplierFrameworkInfo{}))
	assert.Equal(t, domain.DeclarationUnstarted, engine.DeclarationStatusFromInfo(&domain.SupplierFrameworkInfo{Declaration: &domain.Declaration{}}))
	assert.Equal(t, domain.DeclarationStarted, engine.DeclarationStatusFromInfo(&domain.SupplierFrameworkInfo{
		Declaration: &domain.Declaration{Status: domain.DeclarationStarted},
	}))
}

func TestSupplierOnFrameworkFromInfo(t *testing.T) {
	assert.False(t, engine.SupplierOnFrameworkFromInfo(nil))
	assert.False(t, engine.SupplierOnFrameworkFromInfo(&domain.SupplierFrameworkInfo{}))
	assert.False(t, engine.SupplierOnFrameworkFromInfo(&domain.SupplierFrameworkInfo{OnFramework: boolPtr(false)}))
	assert.True(t, engine.SupplierOnFrameworkFromInfo(&domain.SupplierFrameworkInfo{OnFramework: boolPtr(true)}))
}

func TestCountDraftsByLot(t *testing.T) {
	drafts := []domain.DraftService{
		{LotSlug: "cloud-hosting"},
		{LotSlug: "cloud-software"},
		{LotSlug: "cloud-hosting"},
	}
	assert.Equal(t, 2, engine.CountDraftsByLot(drafts, "cloud-hosting"))
	assert.Equal(t, 0, engine.CountDraftsByLot(drafts, "cloud-support"))
	assert.Equal(t, 0, engine.CountDraftsByLot(nil, "cloud-hosting"))
}

func TestReturnedAgreementEmailRecipients(t *testing.T) {
	info := domain.SupplierFrameworkInfo{Declaration: &domain.Declaration{PrimaryContactEmail: "Contact@Example.com"}}
	assert.Equal(t, []string{"Contact@Example.com"}, engine.ReturnedAgreementEmailRecipients(info, "contact@example.com"))
	assert.Equal(t, []string{"Contact@Example.com", "user@example.com"}, engine.ReturnedAgreementEmailRecipients(info, "user@example.com"))
}

func TestCheckAgreementRelatesToSupplierFramework(t *testing.T) {
	info := domain.SupplierFrameworkInfo{SupplierID: 12, FrameworkSlug: "g-cloud-12"}
	require.NoError(t, engine.CheckAgreementRelatesToSupplierFramework(domain.Agreement{SupplierID: 12, FrameworkSlug: "g-cloud-12"}, info))

	for _, agreement := range []domain.Agreement{
		{SupplierID: 13, FrameworkSlug: "g-cloud-12"},
		{SupplierID: 12, FrameworkSlug: "g-cloud-11"},
		{FrameworkSlug: "g-cloud-12"},
		{SupplierID: 12},
	} {
		assert.ErrorIs(t, engine.CheckAgreementRelatesToSupplierFramework(agreement, info), engine.ErrNotFound)
	}
}

func TestSupplierRegisteredName(t *testing.T) {
	assert.Equal(t, "New Ltd", engine.SupplierRegisteredName(domain.Declaration{SupplierRegisteredName: "New Ltd", NameOfOrganisation: "Old Ltd"}))
	assert.Equal(t, "Old Ltd", engine.SupplierRegisteredName(domain.Declaration{NameOfOrganisation: "Old Ltd"}))
	assert.Equal(t, "", engine.SupplierRegisteredName(domain.Declaration{}))
}

func TestLastModifiedFromFirstMatchingFile(t *testing.T) {
	keys := []domain.FileKey{
		{Path: "g-cloud-11/communications/updates/clarifications.pdf", LastModified: ts(t, "2019-01-01T00:00:00.000000Z")},
		{Path: "g-cloud-12/communications/updates/clarifications.pdf", LastModified: ts(t, "2020-02-01T00:00:00.000000Z")},
		{Path: "g-cloud-12/communications/updates/clarifications-2.pdf", LastModified: ts(t, "2020-03-01T00:00:00.000000Z")},
	}
	got := engine.LastModifiedFromFirstMatchingFile(keys, "g-cloud-12", "communications/updates/clarifications")
	require.NotNil(t, got)
	assert.Equal(t, 2, int(got.Month()))

	assert.Nil(t, engine.LastModifiedFromFirstMatchingFile(keys, "g-cloud-13", "communications"))
}
