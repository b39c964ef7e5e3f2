package repo

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"supplierfront/internal/domain"
)

var ErrNotFound = errors.New("not found")

// Snapshot is the on-disk shape of the data API records a workspace serves.
type Snapshot struct {
	Frameworks         []domain.Framework             `yaml:"frameworks"`
	Suppliers          []domain.Supplier              `yaml:"suppliers"`
	SupplierFrameworks []domain.SupplierFrameworkInfo `yaml:"supplier_frameworks"`
	DraftServices      []domain.DraftService          `yaml:"draft_services"`
	Agreements         []domain.Agreement             `yaml:"agreements"`
	Communications     map[string][]domain.FileKey    `yaml:"communications"`
}

// Repo serves read-only records from a validated snapshot.
type Repo struct {
	snap Snapshot
}

// New validates snap and wraps it.
func New(snap Snapshot) (Repo, error) {
	if err := snap.Validate(); err != nil {
		return Repo{}, err
	}
	return Repo{snap: snap}, nil
}

// Open reads a YAML snapshot file.
func Open(path string, logger *zap.Logger) (Repo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Repo{}, fmt.Errorf("snapshot %s not found", path)
		}
		return Repo{}, err
	}
	r, err := FromYAML(data)
	if err != nil {
		return Repo{}, fmt.Errorf("load snapshot %s: %w", path, err)
	}
	if logger != nil {
		logger.Debug("snapshot loaded",
			zap.String("path", path),
			zap.Int("frameworks", len(r.snap.Frameworks)),
			zap.Int("supplier_frameworks", len(r.snap.SupplierFrameworks)),
			zap.Int("draft_services", len(r.snap.DraftServices)))
	}
	return r, nil
}

func FromYAML(data []byte) (Repo, error) {
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return Repo{}, fmt.Errorf("invalid snapshot yaml: %w", err)
	}
	return New(snap)
}

// Validate checks the record shapes the rules engine relies on.
func (s Snapshot) Validate() error {
	slugs := map[string]domain.Framework{}
	for i, fw := range s.Frameworks {
		if fw.Slug == "" {
			return fmt.Errorf("frameworks[%d].slug is required", i)
		}
		if _, ok := slugs[fw.Slug]; ok {
			return fmt.Errorf("framework %s defined twice", fw.Slug)
		}
		if !fw.Status.Valid() {
			return fmt.Errorf("framework %s has unknown status %q", fw.Slug, fw.Status)
		}
		if fw.Family == "" {
			return fmt.Errorf("framework %s has no framework family", fw.Slug)
		}
		for j, lot := range fw.Lots {
			if lot.Slug == "" {
				return fmt.Errorf("framework %s lots[%d].slug is required", fw.Slug, j)
			}
		}
		slugs[fw.Slug] = fw
	}
	for i, info := range s.SupplierFrameworks {
		if info.SupplierID == 0 {
			return fmt.Errorf("supplier_frameworks[%d].supplier_id is required", i)
		}
		if _, ok := slugs[info.FrameworkSlug]; !ok {
			return fmt.Errorf("supplier_frameworks[%d] references unknown framework %s", i, info.FrameworkSlug)
		}
		if d := info.Declaration; d != nil {
			switch d.Status {
			case domain.DeclarationUnstarted, domain.DeclarationStarted, domain.DeclarationComplete:
			default:
				return fmt.Errorf("supplier_frameworks[%d] declaration has unknown status %q", i, d.Status)
			}
		}
	}
	for i, d := range s.DraftServices {
		if d.LotSlug == "" {
			return fmt.Errorf("draft_services[%d].lot_slug is required", i)
		}
		if d.Status != domain.DraftSubmitted && d.Status != domain.DraftNotSubmitted {
			return fmt.Errorf("draft_services[%d] has unknown status %q", i, d.Status)
		}
	}
	return nil
}

func (r Repo) FindFrameworks(ctx context.Context) ([]domain.Framework, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]domain.Framework(nil), r.snap.Frameworks...), nil
}

func (r Repo) GetFramework(ctx context.Context, slug string) (domain.Framework, error) {
	if err := ctx.Err(); err != nil {
		return domain.Framework{}, err
	}
	for _, fw := range r.snap.Frameworks {
		if fw.Slug == slug {
			return fw, nil
		}
	}
	return domain.Framework{}, ErrNotFound
}

func (r Repo) GetSupplier(ctx context.Context, id int) (domain.Supplier, error) {
	if err := ctx.Err(); err != nil {
		return domain.Supplier{}, err
	}
	for _, s := range r.snap.Suppliers {
		if s.ID == id {
			return s, nil
		}
	}
	return domain.Supplier{}, ErrNotFound
}

// SupplierFrameworks lists every framework the supplier has registered interest in.
func (r Repo) SupplierFrameworks(ctx context.Context, supplierID int) ([]domain.SupplierFrameworkInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res := []domain.SupplierFrameworkInfo{}
	for _, info := range r.snap.SupplierFrameworks {
		if info.SupplierID == supplierID {
			res = append(res, info)
		}
	}
	return res, nil
}

func (r Repo) GetSupplierFrameworkInfo(ctx context.Context, supplierID int, frameworkSlug string) (domain.SupplierFrameworkInfo, error) {
	infos, err := r.SupplierFrameworks(ctx, supplierID)
	if err != nil {
		return domain.SupplierFrameworkInfo{}, err
	}
	for _, info := range infos {
		if info.FrameworkSlug == frameworkSlug {
			return info, nil
		}
	}
	return domain.SupplierFrameworkInfo{}, ErrNotFound
}

func (r Repo) GetSupplierDeclaration(ctx context.Context, supplierID int, frameworkSlug string) (domain.Declaration, error) {
	info, err := r.GetSupplierFrameworkInfo(ctx, supplierID, frameworkSlug)
	if err != nil {
		return domain.Declaration{}, err
	}
	if info.Declaration == nil {
		return domain.Declaration{}, ErrNotFound
	}
	return *info.Declaration, nil
}

func (r Repo) FindDraftServices(ctx context.Context, supplierID int, frameworkSlug string) ([]domain.DraftService, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res := []domain.DraftService{}
	for _, d := range r.snap.DraftServices {
		if d.SupplierID == supplierID && d.Framework == frameworkSlug {
			res = append(res, d)
		}
	}
	return res, nil
}

func (r Repo) GetAgreement(ctx context.Context, id int) (domain.Agreement, error) {
	if err := ctx.Err(); err != nil {
		return domain.Agreement{}, err
	}
	for _, a := range r.snap.Agreements {
		if a.ID == id {
			return a, nil
		}
	}
	return domain.Agreement{}, ErrNotFound
}

// Communications lists the document keys published for a framework.
func (r Repo) Communications(ctx context.Context, frameworkSlug string) ([]domain.FileKey, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]domain.FileKey(nil), r.snap.Communications[frameworkSlug]...), nil
}
