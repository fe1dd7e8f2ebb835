package viz

// Section is a named block of the home page starting at line Offset.
type Section struct {
	ID     string
	Label  string
	Offset int
}

const (
	// navLookahead is how many lines below the top edge a section may start
	// and still count as current.
	navLookahead = 6
	// navBottomMargin selects the last section once the viewport is this
	// close to the end of the page.
	navBottomMargin = 2
)

// ActiveSection picks the section to highlight for a viewport showing
// lines [scroll, scroll+height) of a total-line page.
func ActiveSection(sections []Section, scroll, height, total int) string {
	if len(sections) == 0 {
		return ""
	}
	if scroll+height >= total-navBottomMargin {
		return sections[len(sections)-1].ID
	}
	for i := len(sections) - 1; i >= 0; i-- {
		if scroll+navLookahead >= sections[i].Offset {
			return sections[i].ID
		}
	}
	return sections[0].ID
}

// Scrolled reports whether the nav bar should switch to its solid style.
func Scrolled(scroll int) bool { return scroll > 0 }

func sectionOffset(sections []Section, id string) (int, bool) {
	for _, s := range sections {
		if s.ID == id {
			return s.Offset, true
		}
	}
	return 0, false
}
