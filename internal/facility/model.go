package facility

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/club-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "resource not found")
	ErrInvalidConfig = apperror.New(http.StatusInternalServerError, "invalid resource configuration")
)

// BookingMode is the raw per-resource setting controlling slot restrictions.
type BookingMode string

const (
	BookingModeFree     BookingMode = "free"
	BookingModeSlotOnly BookingMode = "slotOnly"
)

// ResourceKind classifies a flattened resource for the conflict checker.
type ResourceKind string

const (
	KindRegular ResourceKind = "regular"
	KindLimited ResourceKind = "limited"
)

// Facility is a physical site (sports ground, gym) holding resource groups.
type Facility struct {
	ID        string
	Name      string
	Address   string
	SortOrder int
	CreatedAt time.Time
}

// ResourceGroup bundles resources of one kind within a facility (e.g. outdoor fields).
type ResourceGroup struct {
	ID         string
	FacilityID string
	Name       string
	Icon       string
	SortOrder  int
}

// Resource is a configured, bookable asset as stored.
type Resource struct {
	ID           string
	GroupID      string
	Name         string
	Color        string
	BookingMode  BookingMode
	Splittable   bool
	SortOrder    int
	SubResources []SubResource
}

// SubResource is a part of a splittable resource (e.g. one half of a field).
type SubResource struct {
	ID    string
	Name  string
	Color string
}

// BookableResource is a flattened, independently schedulable unit.
// A composite lists its parts in Includes; each part names its composite in PartOf.
type BookableResource struct {
	ID          string
	Name        string
	Color       string
	Category    string
	GroupID     string
	Kind        ResourceKind
	IsComposite bool
	Includes    []string
	PartOf      string
}

// IsLimited reports whether the resource may only be booked inside slots.
func (r BookableResource) IsLimited() bool {
	return r.Kind == KindLimited
}

// Spans reports whether resourceID is one of the composite's parts.
func (r BookableResource) Spans(resourceID string) bool {
	if !r.IsComposite {
		return false
	}
	for _, id := range r.Includes {
		if id == resourceID {
			return true
		}
	}
	return false
}

// FamilyID returns the id shared by a composite and all of its parts.
func (r BookableResource) FamilyID() string {
	if r.PartOf != "" {
		return r.PartOf
	}
	return r.ID
}
