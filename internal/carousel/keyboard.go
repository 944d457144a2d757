package carousel

// HandleKey runs the trigger's key-down chain: default prevention for
// Home/End, then navigation, then external handlers.
func (t *Trigger) HandleKey(ev *KeyEvent) {
	t.mustState()
	chain := append([]Handler[*KeyEvent]{preventHomeEnd, t.navigate}, t.onKeyDown...)
	dispatch(ev, chain...)
}

// preventHomeEnd suppresses page scrolling for Home/End whether or not the
// carousel ends up moving.
func preventHomeEnd(ev *KeyEvent) {
	if ev.Key == KeyHome || ev.Key == KeyEnd {
		ev.PreventDefault()
	}
}

// navigate moves along the valid stops and focuses the trigger it lands on.
func (t *Trigger) navigate(ev *KeyEvent) {
	s := t.state
	var dir int
	switch ev.Key {
	case KeyArrowRight:
		dir = 1
	case KeyArrowLeft:
		dir = -1
	case KeyHome, KeyEnd:
	default:
		return
	}

	stops := s.ValidStopIndexes()
	if len(stops) == 0 {
		return
	}
	s.InterruptAutoplay()

	var pos int
	switch ev.Key {
	case KeyHome:
		pos = 0
	case KeyEnd:
		pos = len(stops) - 1
	default:
		cur := positionOf(stops, t.ordinal)
		if cur < 0 {
			return
		}
		pos = cur + dir
		if s.opts.Rewind {
			pos = (pos + len(stops)) % len(stops)
		} else {
			pos = max(0, min(pos, len(stops)-1))
		}
	}

	target := stops[pos]
	s.SetCurrentValue(ValueFromIndex(target, s.values))
	if next := s.Trigger(target); next != nil && s.host != nil {
		s.host.Focus(next.surface)
	}
}
