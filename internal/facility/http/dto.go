package http

import (
	"time"

	"github.com/nekogravitycat/club-booking-backend/internal/facility"
)

type ListResourcesRequest struct {
	FacilityID string `form:"facility_id" binding:"omitempty,uuid"`
}

type FacilityResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

func NewFacilityResponse(f facility.Facility) FacilityResponse {
	return FacilityResponse{
		ID:        f.ID,
		Name:      f.Name,
		Address:   f.Address,
		SortOrder: f.SortOrder,
		CreatedAt: f.CreatedAt,
	}
}

// ResourceResponse mirrors the flattened resource record consumed by the booking UI.
type ResourceResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Color       string   `json:"color"`
	Category    string   `json:"category"`
	GroupID     string   `json:"group_id"`
	Type        string   `json:"type"`
	IsComposite bool     `json:"is_composite,omitempty"`
	Includes    []string `json:"includes,omitempty"`
	PartOf      string   `json:"part_of,omitempty"`
}

func NewResourceResponse(r facility.BookableResource) ResourceResponse {
	return ResourceResponse{
		ID:          r.ID,
		Name:        r.Name,
		Color:       r.Color,
		Category:    r.Category,
		GroupID:     r.GroupID,
		Type:        string(r.Kind),
		IsComposite: r.IsComposite,
		Includes:    r.Includes,
		PartOf:      r.PartOf,
	}
}
