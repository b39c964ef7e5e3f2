package engine

import (
	"strings"

	"supplierfront/internal/domain"
)

// DeclarationStatusFromInfo returns the declaration status recorded against
// the supplier's framework interest, or unstarted when there is none.
func DeclarationStatusFromInfo(info *domain.SupplierFrameworkInfo) domain.DeclarationStatus {
	if info == nil || info.Declaration == nil || info.Declaration.Status == "" {
		return domain.DeclarationUnstarted
	}
	return info.Declaration.Status
}

func SupplierOnFrameworkFromInfo(info *domain.SupplierFrameworkInfo) bool {
	return info != nil && info.OnFramework != nil && *info.OnFramework
}

// CountDraftsByLot counts the drafts belonging to lotSlug.
func CountDraftsByLot(drafts []domain.DraftService, lotSlug string) int {
	n := 0
	for _, d := range drafts {
		if d.LotSlug == lotSlug {
			n++
		}
	}
	return n
}

// ReturnedAgreementEmailRecipients lists who is told about a returned
// framework agreement: the declaration's primary contact, plus the signed in
// user when that is a different address.
func ReturnedAgreementEmailRecipients(info domain.SupplierFrameworkInfo, currentUserEmail string) []string {
	primary := ""
	if info.Declaration != nil {
		primary = info.Declaration.PrimaryContactEmail
	}
	recipients := []string{primary}
	if !strings.EqualFold(primary, currentUserEmail) {
		recipients = append(recipients, currentUserEmail)
	}
	return recipients
}

// CheckAgreementRelatesToSupplierFramework fails with ErrNotFound unless the
// agreement belongs to the same supplier and framework as info.
func CheckAgreementRelatesToSupplierFramework(agreement domain.Agreement, info domain.SupplierFrameworkInfo) error {
	if agreement.SupplierID == 0 || agreement.SupplierID != info.SupplierID {
		return notFound("agreement", info.FrameworkSlug)
	}
	if agreement.FrameworkSlug == "" || agreement.FrameworkSlug != info.FrameworkSlug {
		return notFound("agreement", info.FrameworkSlug)
	}
	return nil
}

// SupplierRegisteredName reads the registered name from a declaration. Older
// declarations kept it under name of organisation.
func SupplierRegisteredName(d domain.Declaration) string {
	if d.SupplierRegisteredName != "" {
		return d.SupplierRegisteredName
	}
	return d.NameOfOrganisation
}

// LastModifiedFromFirstMatchingFile returns the modification time of the
// first key under "<frameworkSlug>/<prefix>", or nil when none match.
func LastModifiedFromFirstMatchingFile(keys []domain.FileKey, frameworkSlug, prefix string) *domain.Timestamp {
	want := frameworkSlug + "/" + prefix
	for _, k := range keys {
		if strings.HasPrefix(k.Path, want) {
			return k.LastModified
		}
	}
	return nil
}
