package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type FrameworkStatus string

const (
	FrameworkComing     FrameworkStatus = "coming"
	FrameworkOpen       FrameworkStatus = "open"
	FrameworkPending    FrameworkStatus = "pending"
	FrameworkStandstill FrameworkStatus = "standstill"
	FrameworkLive       FrameworkStatus = "live"
	FrameworkExpired    FrameworkStatus = "expired"
)

// Valid reports whether s is one of the known lifecycle statuses.
func (s FrameworkStatus) Valid() bool {
	switch s {
	case FrameworkComing, FrameworkOpen, FrameworkPending, FrameworkStandstill, FrameworkLive, FrameworkExpired:
		return true
	}
	return false
}

type DeclarationStatus string

const (
	DeclarationUnstarted DeclarationStatus = "unstarted"
	DeclarationStarted   DeclarationStatus = "started"
	DeclarationComplete  DeclarationStatus = "complete"
)

type DescriptorType string

const (
	DescriptorHappy   DescriptorType = "happy"
	DescriptorQuiet   DescriptorType = "quiet"
	DescriptorDefault DescriptorType = "default"
)

// Timestamp is a UTC instant as the data API writes it
// (2006-01-02T15:04:05.000000Z), with RFC 3339 accepted as a fallback.
type Timestamp struct {
	time.Time
}

const TimestampLayout = "2006-01-02T15:04:05.000000Z"

func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(TimestampLayout, s); err == nil {
		return Timestamp{t.UTC()}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return Timestamp{}, fmt.Errorf("invalid timestamp %q", s)
	}
	return Timestamp{t.UTC()}, nil
}

func (t Timestamp) String() string {
	return t.UTC().Format(TimestampLayout)
}

func (t *Timestamp) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseTimestamp(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t Timestamp) MarshalYAML() (any, error) {
	return t.String(), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParseTimestamp(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

type Lot struct {
	Slug            string `json:"slug" yaml:"slug"`
	Name            string `json:"name" yaml:"name"`
	OneServiceLimit bool   `json:"one_service_limit" yaml:"one_service_limit"`
	Unit            string `json:"unit,omitempty" yaml:"unit"`
	UnitPlural      string `json:"unit_plural,omitempty" yaml:"unit_plural"`
}

// Units returns the singular and plural nouns used when counting services in the lot.
func (l Lot) Units() (string, string) {
	unit, plural := l.Unit, l.UnitPlural
	if unit == "" {
		unit = "service"
	}
	if plural == "" {
		plural = unit + "s"
	}
	return unit, plural
}

type Framework struct {
	ID                     int             `json:"id" yaml:"id"`
	Slug                   string          `json:"slug" yaml:"slug"`
	Name                   string          `json:"name" yaml:"name"`
	Family                 string          `json:"framework" yaml:"framework"`
	Status                 FrameworkStatus `json:"status" yaml:"status"`
	ApplicationsCloseAtUTC *Timestamp      `json:"applications_close_at_utc,omitempty" yaml:"applications_close_at_utc"`
	AllowDeclarationReuse  bool            `json:"allow_declaration_reuse" yaml:"allow_declaration_reuse"`
	Lots                   []Lot           `json:"lots,omitempty" yaml:"lots"`
}

// FrameworkStatus lets wrappers embedding a Framework be filtered by status.
func (f Framework) FrameworkStatus() FrameworkStatus { return f.Status }

type Declaration struct {
	Status                 DeclarationStatus `json:"status" yaml:"status"`
	SupplierRegisteredName string            `json:"supplier_registered_name,omitempty" yaml:"supplier_registered_name"`
	NameOfOrganisation     string            `json:"name_of_organisation,omitempty" yaml:"name_of_organisation"`
	PrimaryContactEmail    string            `json:"primary_contact_email,omitempty" yaml:"primary_contact_email"`
}

type SupplierFrameworkInfo struct {
	FrameworkSlug       string       `json:"framework_slug" yaml:"framework_slug"`
	SupplierID          int          `json:"supplier_id" yaml:"supplier_id"`
	OnFramework         *bool        `json:"on_framework,omitempty" yaml:"on_framework"`
	AgreementReturned   *bool        `json:"agreement_returned,omitempty" yaml:"agreement_returned"`
	Declaration         *Declaration `json:"declaration,omitempty" yaml:"declaration"`
	DraftsCount         int          `json:"drafts_count" yaml:"drafts_count"`
	CompleteDraftsCount int          `json:"complete_drafts_count" yaml:"complete_drafts_count"`
	ServicesCount       int          `json:"services_count" yaml:"services_count"`
}

const (
	DraftNotSubmitted = "not-submitted"
	DraftSubmitted    = "submitted"
)

type DraftService struct {
	ID         int    `json:"id" yaml:"id"`
	SupplierID int    `json:"supplier_id" yaml:"supplier_id"`
	Framework  string `json:"framework_slug" yaml:"framework_slug"`
	LotSlug    string `json:"lot_slug" yaml:"lot_slug"`
	Status     string `json:"status" yaml:"status"`
}

// Complete reports whether the draft has been marked as complete.
func (d DraftService) Complete() bool { return d.Status == DraftSubmitted }

type Agreement struct {
	ID            int    `json:"id" yaml:"id"`
	SupplierID    int    `json:"supplier_id" yaml:"supplier_id"`
	FrameworkSlug string `json:"framework_slug" yaml:"framework_slug"`
}

type FileKey struct {
	Path         string     `json:"path" yaml:"path"`
	LastModified *Timestamp `json:"last_modified,omitempty" yaml:"last_modified"`
}

type Supplier struct {
	ID    int    `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email,omitempty" yaml:"email"`
}

type StatusDescriptor struct {
	Title string         `json:"title"`
	Hint  string         `json:"hint,omitempty"`
	Type  DescriptorType `json:"type"`
}
