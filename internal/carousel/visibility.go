package carousel

// ItemVisibility is the derived display state of an item.
type ItemVisibility struct {
	// Visible is set for items inside the current window.
	Visible bool
	// Active is set for the item whose value is current.
	Active bool
	// Inactive hides non-active items when no scroll surface is mounted.
	Inactive bool
}

// TriggerVisibility is the derived display state of a trigger.
type TriggerVisibility struct {
	Rendered bool
	// Active is set when the current index falls in the trigger's page.
	Active bool
	// TabStop is set when the trigger points at the current value.
	TabStop bool
}

// ItemVisibility computes the flags of the item at ordinal.
func (s *State) ItemVisibility(ordinal int) ItemVisibility {
	start := s.CurrentIndex()
	end := start + s.opts.ItemsPerView
	active := ValueFromIndex(ordinal, s.values) == s.current
	return ItemVisibility{
		Visible:  ordinal >= start && ordinal < end && ordinal < len(s.items),
		Active:   active,
		Inactive: !s.scroller && !active,
	}
}

// TriggerVisibility computes the flags of the trigger at ordinal. A trigger
// is rendered when its ordinal is a valid stop and owns the half-open range
// of indices up to the next stop.
func (s *State) TriggerVisibility(ordinal int) TriggerVisibility {
	v := TriggerVisibility{
		TabStop: ValueFromIndex(ordinal, s.values) == s.current,
	}
	if len(s.items) == 0 {
		return v
	}
	stops := s.ValidStopIndexes()
	pos := positionOf(stops, ordinal)
	if pos < 0 {
		return v
	}
	v.Rendered = true

	idx := s.CurrentIndex()
	last := pos == len(stops)-1
	v.Active = idx >= ordinal && (last || idx < stops[pos+1])
	return v
}
