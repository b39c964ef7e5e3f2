package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"supplierfront/internal/config"
	"supplierfront/internal/content"
	"supplierfront/internal/domain"
	"supplierfront/internal/engine"
	"supplierfront/internal/repo"
)

// ErrFrameworkMissing means a framework the caller relies on is absent from
// the data source. Unlike engine.ErrNotFound it is not the supplier's fault.
var ErrFrameworkMissing = errors.New("framework missing")

// DataSource supplies the records the rules engine works on.
// repo.Repo implements it; lookups of absent records return repo.ErrNotFound.
type DataSource interface {
	GetSupplier(ctx context.Context, id int) (domain.Supplier, error)
	FindFrameworks(ctx context.Context) ([]domain.Framework, error)
	GetFramework(ctx context.Context, slug string) (domain.Framework, error)
	SupplierFrameworks(ctx context.Context, supplierID int) ([]domain.SupplierFrameworkInfo, error)
	GetSupplierFrameworkInfo(ctx context.Context, supplierID int, frameworkSlug string) (domain.SupplierFrameworkInfo, error)
	GetSupplierDeclaration(ctx context.Context, supplierID int, frameworkSlug string) (domain.Declaration, error)
	FindDraftServices(ctx context.Context, supplierID int, frameworkSlug string) ([]domain.DraftService, error)
	GetAgreement(ctx context.Context, id int) (domain.Agreement, error)
	Communications(ctx context.Context, frameworkSlug string) ([]domain.FileKey, error)
}

// Actor is the signed in supplier user a request is made on behalf of.
type Actor struct {
	SupplierID int
	Email      string
}

type Service struct {
	Source          DataSource
	Content         *content.Manifest
	Logger          *zap.Logger
	AllowedStatuses []domain.FrameworkStatus
}

// Open loads the workspace config, snapshot and content manifest.
// The manifest is optional.
func Open(workspace string, logger *zap.Logger) (*Service, *config.Config, error) {
	cfg, err := config.Load(workspace)
	if err != nil {
		return nil, nil, err
	}
	svc, err := New(workspace, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return svc, cfg, nil
}

// OpenOptional is Open for workspaces that may lack supplierfront.yml. It then
// falls back to the default config for supplierID, serving snapshot.yml and,
// when present, content.yml from the workspace.
func OpenOptional(workspace string, supplierID int, logger *zap.Logger) (*Service, *config.Config, error) {
	cfg, err := config.LoadOptional(workspace)
	if err != nil {
		return nil, nil, err
	}
	if cfg == nil {
		if cfg, err = config.Default(supplierID); err != nil {
			return nil, nil, err
		}
		if _, err := os.Stat(filepath.Join(workspace, cfg.Content)); errors.Is(err, fs.ErrNotExist) {
			cfg.Content = ""
		}
		if logger != nil {
			logger.Debug("no workspace config, using defaults", zap.String("workspace", workspace), zap.Int("supplier_id", supplierID))
		}
	}
	svc, err := New(workspace, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return svc, cfg, nil
}

// New builds a Service from an already loaded config. Relative paths in cfg
// are resolved against workspace.
func New(workspace string, cfg *config.Config, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.Resolve(workspace)
	r, err := repo.Open(cfg.Snapshot, logger)
	if err != nil {
		return nil, err
	}
	svc := &Service{
		Source:          r,
		Logger:          logger,
		AllowedStatuses: cfg.Frameworks.AllowedStatuses,
	}
	if cfg.Content != "" {
		m, err := content.FromFile(cfg.Content)
		if err != nil {
			return nil, fmt.Errorf("load content %s: %w", cfg.Content, err)
		}
		svc.Content = m
	}
	return svc, nil
}

func (s *Service) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *Service) allowed(override []domain.FrameworkStatus) []domain.FrameworkStatus {
	if override != nil {
		return override
	}
	if len(s.AllowedStatuses) > 0 {
		return s.AllowedStatuses
	}
	return nil
}

// GetFramework fetches a framework visible in one of the allowed statuses.
// A nil allowed set falls back to the configured set, then to
// engine.DefaultAllowedStatuses.
func (s *Service) GetFramework(ctx context.Context, slug string, allowed []domain.FrameworkStatus) (domain.Framework, error) {
	fw, err := s.Source.GetFramework(ctx, slug)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return domain.Framework{}, &engine.LookupError{Kind: "framework", Slug: slug}
		}
		return domain.Framework{}, err
	}
	return engine.GetFrameworkOrFail([]domain.Framework{fw}, slug, s.allowed(allowed))
}

// MustGetFramework fetches a framework that is expected to exist whatever
// its status.
func (s *Service) MustGetFramework(ctx context.Context, slug string) (domain.Framework, error) {
	fw, err := s.Source.GetFramework(ctx, slug)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.logger().Error("framework not found", zap.String("framework_slug", slug), zap.Error(err))
			return domain.Framework{}, fmt.Errorf("%w: %s", ErrFrameworkMissing, slug)
		}
		return domain.Framework{}, err
	}
	return fw, nil
}

func (s *Service) GetFrameworkAndLot(ctx context.Context, slug, lotSlug string, allowed []domain.FrameworkStatus) (domain.Framework, domain.Lot, error) {
	fw, err := s.GetFramework(ctx, slug, allowed)
	if err != nil {
		return domain.Framework{}, domain.Lot{}, err
	}
	lot, err := engine.GetFrameworkLotOrFail(fw, lotSlug)
	if err != nil {
		return domain.Framework{}, domain.Lot{}, err
	}
	return fw, lot, nil
}

func (s *Service) FrameworksBySlug(ctx context.Context) (map[string]domain.Framework, error) {
	frameworks, err := s.Source.FindFrameworks(ctx)
	if err != nil {
		return nil, err
	}
	return engine.GroupFrameworksBySlug(frameworks)
}

// FrameworksByStatus lists frameworks in the given status, in data source order.
func (s *Service) FrameworksByStatus(ctx context.Context, status domain.FrameworkStatus) ([]domain.Framework, error) {
	frameworks, err := s.Source.FindFrameworks(ctx)
	if err != nil {
		return nil, err
	}
	return engine.FilterByStatus(frameworks, status, nil), nil
}

// SupplierFrameworkInfo returns nil when the supplier never registered
// interest in the framework.
func (s *Service) SupplierFrameworkInfo(ctx context.Context, supplierID int, slug string) (*domain.SupplierFrameworkInfo, error) {
	info, err := s.Source.GetSupplierFrameworkInfo(ctx, supplierID, slug)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &info, nil
}

// OnFrameworkInfoOrFail returns the supplier's framework info, failing with
// engine.ErrNotFound unless the supplier is on the framework.
func (s *Service) OnFrameworkInfoOrFail(ctx context.Context, supplierID int, slug string) (domain.SupplierFrameworkInfo, error) {
	info, err := s.SupplierFrameworkInfo(ctx, supplierID, slug)
	if err != nil {
		return domain.SupplierFrameworkInfo{}, err
	}
	if !engine.SupplierOnFrameworkFromInfo(info) {
		return domain.SupplierFrameworkInfo{}, &engine.LookupError{Kind: "supplier framework", Slug: slug}
	}
	return *info, nil
}

// DeclarationStatus is unstarted when the supplier has no declaration.
func (s *Service) DeclarationStatus(ctx context.Context, supplierID int, slug string) (domain.DeclarationStatus, error) {
	d, err := s.Source.GetSupplierDeclaration(ctx, supplierID, slug)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return domain.DeclarationUnstarted, nil
		}
		return "", err
	}
	if d.Status == "" {
		return domain.DeclarationUnstarted, nil
	}
	return d.Status, nil
}

// FrameworkForReuse finds the framework whose declaration the supplier can
// reuse. ok is false when there is none.
func (s *Service) FrameworkForReuse(ctx context.Context, supplierID int, exclude []string) (domain.Framework, bool, error) {
	infos, err := s.Source.SupplierFrameworks(ctx, supplierID)
	if err != nil {
		return domain.Framework{}, false, err
	}
	frameworks, err := s.Source.FindFrameworks(ctx)
	if err != nil {
		return domain.Framework{}, false, err
	}
	fw, ok := engine.SelectFrameworkForReuse(infos, frameworks, exclude)
	return fw, ok, nil
}

// LotStatuses describes the supplier's progress on one lot of a framework.
func (s *Service) LotStatuses(ctx context.Context, supplierID int, slug, lotSlug string) ([]domain.StatusDescriptor, error) {
	fw, lot, err := s.GetFrameworkAndLot(ctx, slug, lotSlug, nil)
	if err != nil {
		return nil, err
	}
	all, err := s.Source.FindDraftServices(ctx, supplierID, slug)
	if err != nil {
		return nil, err
	}
	var drafts, complete []domain.DraftService
	for _, d := range all {
		if d.Complete() {
			complete = append(complete, d)
		} else {
			drafts = append(drafts, d)
		}
	}
	declaration, err := s.DeclarationStatus(ctx, supplierID, slug)
	if err != nil {
		return nil, err
	}
	unit, plural := lot.Units()
	return engine.DeriveLotStatuses(engine.LotStatusInput{
		HasOneServiceLimit:  lot.OneServiceLimit,
		DraftsCount:         engine.CountDraftsByLot(drafts, lot.Slug),
		CompleteDraftsCount: engine.CountDraftsByLot(complete, lot.Slug),
		DeclarationStatus:   declaration,
		FrameworkStatus:     fw.Status,
		LotName:             lot.Name,
		Unit:                unit,
		UnitPlural:          plural,
	}), nil
}

// Dashboard fails with engine.ErrNotFound when the supplier record is absent.
func (s *Service) Dashboard(ctx context.Context, supplierID int) (engine.Dashboard, error) {
	supplier, err := s.Source.GetSupplier(ctx, supplierID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return engine.Dashboard{}, &engine.LookupError{Kind: "supplier", Slug: fmt.Sprint(supplierID)}
		}
		return engine.Dashboard{}, err
	}
	frameworks, err := s.Source.FindFrameworks(ctx)
	if err != nil {
		return engine.Dashboard{}, err
	}
	interests, err := s.Source.SupplierFrameworks(ctx, supplierID)
	if err != nil {
		return engine.Dashboard{}, err
	}
	return engine.BuildDashboard(supplier, frameworks, interests), nil
}

func (s *Service) BecomeASupplier(ctx context.Context) (engine.ApplicationSplit, error) {
	frameworks, err := s.Source.FindFrameworks(ctx)
	if err != nil {
		return engine.ApplicationSplit{}, err
	}
	return engine.SplitForApplications(frameworks), nil
}

// QuestionReferences resolves [[questionId]] placeholders against the
// workspace content manifest.
func (s *Service) QuestionReferences(text engine.Text) (engine.Text, error) {
	if s.Content == nil {
		return engine.Text{}, fmt.Errorf("no content manifest configured")
	}
	return engine.ResolveQuestionReferences(text, s.Content.GetQuestion)
}

func (s *Service) FirstQuestionIndex(sectionSlug string) (int, error) {
	if s.Content == nil {
		return 0, fmt.Errorf("no content manifest configured")
	}
	return engine.FirstQuestionIndex(s.Content, sectionSlug)
}

// AgreementRecipients lists who is emailed when the actor returns a signed
// framework agreement. The supplier must be on the framework.
func (s *Service) AgreementRecipients(ctx context.Context, actor Actor, slug string) ([]string, error) {
	info, err := s.OnFrameworkInfoOrFail(ctx, actor.SupplierID, slug)
	if err != nil {
		return nil, err
	}
	return engine.ReturnedAgreementEmailRecipients(info, actor.Email), nil
}

// AgreementForSupplierFramework fetches an agreement and checks it belongs to
// the supplier's framework.
func (s *Service) AgreementForSupplierFramework(ctx context.Context, supplierID int, slug string, agreementID int) (domain.Agreement, error) {
	info, err := s.OnFrameworkInfoOrFail(ctx, supplierID, slug)
	if err != nil {
		return domain.Agreement{}, err
	}
	agreement, err := s.Source.GetAgreement(ctx, agreementID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return domain.Agreement{}, &engine.LookupError{Kind: "agreement", Slug: fmt.Sprint(agreementID)}
		}
		return domain.Agreement{}, err
	}
	if err := engine.CheckAgreementRelatesToSupplierFramework(agreement, info); err != nil {
		return domain.Agreement{}, err
	}
	return agreement, nil
}

// RegisteredName reads the supplier's registered name from their declaration.
func (s *Service) RegisteredName(ctx context.Context, supplierID int, slug string) (string, error) {
	d, err := s.Source.GetSupplierDeclaration(ctx, supplierID, slug)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", &engine.LookupError{Kind: "declaration", Slug: slug}
		}
		return "", err
	}
	return engine.SupplierRegisteredName(d), nil
}

// CommunicationLastModified is when the first framework document matching
// prefix was last changed, or nil when there is none.
func (s *Service) CommunicationLastModified(ctx context.Context, slug, prefix string) (*domain.Timestamp, error) {
	keys, err := s.Source.Communications(ctx, slug)
	if err != nil {
		return nil, err
	}
	return engine.LastModifiedFromFirstMatchingFile(keys, slug, prefix), nil
}
