package domain

// Slide is one page of a deck
type Slide struct {
	Value string // identity reported to the carousel ("" means ordinal)
	Title string
	Body  string // markdown
}

// Deck is an ordered set of slides
type Deck struct {
	Title  string
	Slides []Slide
}

// Values returns the slide values in order
func (d Deck) Values() []string {
	values := make([]string, len(d.Slides))
	for i, s := range d.Slides {
		values[i] = s.Value
	}
	return values
}
