package engine

import (
	"fmt"

	"supplierfront/internal/domain"
)

// LotStatusInput is everything needed to describe a supplier's progress on one lot.
type LotStatusInput struct {
	HasOneServiceLimit  bool
	DraftsCount         int
	CompleteDraftsCount int
	DeclarationStatus   domain.DeclarationStatus
	FrameworkStatus     domain.FrameworkStatus
	LotName             string
	Unit                string
	UnitPlural          string
}

type serviceCategory string

const (
	categoryDraft    serviceCategory = "draft"
	categoryComplete serviceCategory = "complete"
)

// DeriveLotStatuses returns zero, one or two descriptors summarising the
// supplier's drafts on a lot. Nothing is returned when the supplier has no
// drafts at all.
func DeriveLotStatuses(in LotStatusInput) []domain.StatusDescriptor {
	if in.DraftsCount == 0 && in.CompleteDraftsCount == 0 {
		return []domain.StatusDescriptor{}
	}
	open := in.FrameworkStatus == domain.FrameworkOpen
	declarationComplete := in.DeclarationStatus == domain.DeclarationComplete

	if in.HasOneServiceLimit {
		return []domain.StatusDescriptor{oneServiceLotStatus(in.DraftsCount, in.CompleteDraftsCount, open, declarationComplete)}
	}

	describe := func(count int, category serviceCategory) domain.StatusDescriptor {
		return multiServiceLotStatus(count, category, open, declarationComplete, in.Unit, in.UnitPlural)
	}

	if in.CompleteDraftsCount == 0 {
		if open {
			return []domain.StatusDescriptor{describe(in.DraftsCount, categoryDraft)}
		}
		return []domain.StatusDescriptor{{
			Title: fmt.Sprintf("No %s were marked as complete", in.UnitPlural),
			Type:  domain.DescriptorQuiet,
		}}
	}

	if in.DraftsCount == 0 {
		return []domain.StatusDescriptor{describe(in.CompleteDraftsCount, categoryComplete)}
	}

	// Unsubmitted drafts on a closed framework are not reported separately.
	if !open {
		return []domain.StatusDescriptor{describe(in.CompleteDraftsCount, categoryComplete)}
	}
	return []domain.StatusDescriptor{
		describe(in.CompleteDraftsCount, categoryComplete),
		describe(in.DraftsCount, categoryDraft),
	}
}

func oneServiceLotStatus(drafts, complete int, open, declarationComplete bool) domain.StatusDescriptor {
	if drafts > 0 && (open || complete == 0) {
		title := "Not completed"
		if open {
			title = "Started but not complete"
		}
		return domain.StatusDescriptor{Title: title, Type: domain.DescriptorQuiet}
	}
	switch {
	case open && declarationComplete:
		return domain.StatusDescriptor{
			Title: "This will be submitted",
			Hint:  "You can edit it until the deadline",
			Type:  domain.DescriptorHappy,
		}
	case open:
		return domain.StatusDescriptor{
			Title: "Marked as complete",
			Hint:  "You can edit it until the deadline",
			Type:  domain.DescriptorDefault,
		}
	case declarationComplete:
		return domain.StatusDescriptor{Title: "Submitted", Type: domain.DescriptorHappy}
	default:
		return domain.StatusDescriptor{Title: "Marked as complete", Type: domain.DescriptorDefault}
	}
}

func multiServiceLotStatus(count int, category serviceCategory, open, declarationComplete bool, unit, unitPlural string) domain.StatusDescriptor {
	singular := count == 1
	noun, pronoun, was, wasNot := unitPlural, "them", "were", "weren’t"
	if singular {
		noun, pronoun, was, wasNot = unit, "it", "was", "wasn’t"
	}
	described := fmt.Sprintf("%d %s %s", count, category, noun)

	if category == categoryDraft {
		if open {
			return domain.StatusDescriptor{
				Title: described,
				Hint:  "Started but not complete",
				Type:  domain.DescriptorQuiet,
			}
		}
		return domain.StatusDescriptor{
			Title: fmt.Sprintf("%s %s submitted", described, wasNot),
			Type:  domain.DescriptorQuiet,
		}
	}

	switch {
	case open && declarationComplete:
		return domain.StatusDescriptor{
			Title: fmt.Sprintf("%d %s will be submitted", count, noun),
			Hint:  fmt.Sprintf("You can edit %s until the deadline", pronoun),
			Type:  domain.DescriptorHappy,
		}
	case open:
		return domain.StatusDescriptor{
			Title: fmt.Sprintf("%d %s marked as complete", count, noun),
			Hint:  fmt.Sprintf("You can edit %s until the deadline", pronoun),
			Type:  domain.DescriptorDefault,
		}
	case declarationComplete:
		return domain.StatusDescriptor{
			Title: fmt.Sprintf("%s %s submitted", described, was),
			Type:  domain.DescriptorHappy,
		}
	default:
		return domain.StatusDescriptor{
			Title: fmt.Sprintf("%s %s submitted", described, wasNot),
			Type:  domain.DescriptorQuiet,
		}
	}
}
