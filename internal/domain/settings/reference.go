package settings

import (
	"strings"

	"github.com/repairdesk/backend/internal/domain/shared"
	"golang.org/x/text/cases"
)

// ReferenceKind distinguishes the settings lookup lists
type ReferenceKind string

const (
	KindBrand           ReferenceKind = "brand"
	KindProblemCategory ReferenceKind = "problem_category"
)

// Label returns a human-readable name for error messages
func (k ReferenceKind) Label() string {
	if k == KindBrand {
		return "Brand"
	}
	return "Problem category"
}

// Reference is a named entry in a settings list (brands, problem
// categories). Names are unique case-insensitively.
type Reference struct {
	shared.BaseEntity
	Kind        ReferenceKind `json:"-"`
	Name        string        `json:"name"`
	NameKey     string        `json:"-"`
	Description string        `json:"description"`
}

// Brand is a device manufacturer known to the shop
type Brand = Reference

// ProblemCategory is a fault classification known to the shop
type ProblemCategory = Reference

// NewReference creates a settings list entry
func NewReference(kind ReferenceKind, name, description string) (*Reference, error) {
	r := &Reference{BaseEntity: shared.NewBaseEntity(), Kind: kind}
	if err := r.Update(name, description); err != nil {
		return nil, err
	}
	return r, nil
}

// Update renames or re-describes the entry
func (r *Reference) Update(name, description string) error {
	if err := shared.RequireText("INVALID_NAME", r.Kind.Label()+" name", name, 0, 100); err != nil {
		return err
	}
	if err := shared.MaxText("INVALID_DESCRIPTION", "Description", description, 500); err != nil {
		return err
	}
	r.Name = strings.TrimSpace(name)
	r.NameKey = FoldName(r.Name)
	r.Description = strings.TrimSpace(description)
	r.Touch()
	return nil
}

// FoldName returns the case-folded uniqueness key for a name
func FoldName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}
