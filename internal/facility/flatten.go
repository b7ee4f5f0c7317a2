package facility

import "fmt"

// BuildBookableResources flattens the group/resource hierarchy.
// A splittable resource with parts yields its composite followed by one entry per part.
// Output follows input order; nothing is sorted.
func BuildBookableResources(groups []ResourceGroup, resources []Resource) []BookableResource {
	groupByID := make(map[string]ResourceGroup, len(groups))
	for _, g := range groups {
		groupByID[g.ID] = g
	}

	out := make([]BookableResource, 0, len(resources))
	for _, res := range resources {
		kind := KindRegular
		if res.BookingMode == BookingModeSlotOnly {
			kind = KindLimited
		}
		category := groupByID[res.GroupID].Icon

		if res.Splittable && len(res.SubResources) > 0 {
			includes := make([]string, len(res.SubResources))
			for i, sub := range res.SubResources {
				includes[i] = sub.ID
			}
			out = append(out, BookableResource{
				ID:          res.ID,
				Name:        res.Name,
				Color:       res.Color,
				Category:    category,
				GroupID:     res.GroupID,
				Kind:        kind,
				IsComposite: true,
				Includes:    includes,
			})
			for _, sub := range res.SubResources {
				out = append(out, BookableResource{
					ID:       sub.ID,
					Name:     sub.Name,
					Color:    sub.Color,
					Category: category,
					GroupID:  res.GroupID,
					Kind:     kind,
					PartOf:   res.ID,
				})
			}
			continue
		}

		out = append(out, BookableResource{
			ID:       res.ID,
			Name:     res.Name,
			Color:    res.Color,
			Category: category,
			GroupID:  res.GroupID,
			Kind:     kind,
		})
	}
	return out
}

// Index maps resource ids to their flattened records.
func Index(resources []BookableResource) map[string]BookableResource {
	idx := make(map[string]BookableResource, len(resources))
	for _, r := range resources {
		idx[r.ID] = r
	}
	return idx
}

// Validate checks the composite relation: ids are unique, no resource is both
// a composite and a part, and includes/partOf agree in both directions.
func Validate(resources []BookableResource) error {
	idx := make(map[string]BookableResource, len(resources))
	for _, r := range resources {
		if _, dup := idx[r.ID]; dup {
			return invalid("duplicate resource id %q", r.ID)
		}
		idx[r.ID] = r
	}

	for _, r := range resources {
		if r.IsComposite && r.PartOf != "" {
			return invalid("resource %q is both composite and part of %q", r.ID, r.PartOf)
		}
		for _, subID := range r.Includes {
			sub, ok := idx[subID]
			if !ok {
				return invalid("composite %q includes unknown resource %q", r.ID, subID)
			}
			if sub.PartOf != r.ID {
				return invalid("resource %q is included by %q but part of %q", subID, r.ID, sub.PartOf)
			}
		}
		if r.PartOf != "" {
			parent, ok := idx[r.PartOf]
			if !ok || !parent.Spans(r.ID) {
				return invalid("resource %q claims parent %q which does not include it", r.ID, r.PartOf)
			}
		}
	}
	return nil
}

func invalid(format string, args ...any) error {
	return ErrInvalidConfig.WithCause(fmt.Errorf(format, args...))
}
