package assembler

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/placecards/winietki/backend/pdf"
	"github.com/placecards/winietki/core"
	"github.com/placecards/winietki/engine/place"
	"github.com/placecards/winietki/input/records"
)

// Limits for the font size of card text, in points.
const (
	MinFontSize = 6
	MaxFontSize = 72
)

// DefaultBasename is the base file name of outputs.
const DefaultBasename = "winietki"

// Mode selects how cards are packaged.
type Mode int

const (
	Merged Mode = iota // all cards in one PDF
	Split              // one PDF per card, packaged as a ZIP archive
)

func (m Mode) String() string {
	switch m {
	case Merged:
		return "merged"
	case Split:
		return "split"
	}
	return "Mode(" + strconv.Itoa(int(m)) + ")"
}

// ParseMode reads a mode from its name.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "merged", "":
		return Merged, nil
	case "split":
		return Split, nil
	}
	return Merged, fmt.Errorf("unknown output mode %q", s)
}

// Layout is the styling of card text.
type Layout struct {
	FontSize int // in whole points
	Color    pdf.Color
	Align    place.Alignment
	VAlign   place.VerticalAnchor
}

// DefaultLayout is black 12pt text centered on the anchor.
func DefaultLayout() Layout {
	return Layout{
		FontSize: 12,
		Color:    pdf.Black,
		Align:    place.AlignCenter,
		VAlign:   place.AnchorBaseline,
	}
}

// Validate checks a layout, returning an error with code core.EINVALID.
func (l Layout) Validate() error {
	if l.FontSize < MinFontSize || l.FontSize > MaxFontSize {
		return core.Error(core.EINVALID, "font size must be between %dpt and %dpt, is %d",
			MinFontSize, MaxFontSize, l.FontSize)
	}
	switch l.Align {
	case place.AlignLeft, place.AlignCenter, place.AlignRight:
	default:
		return core.Error(core.EINVALID, "invalid alignment %v", l.Align)
	}
	switch l.VAlign {
	case place.AnchorBaseline, place.AnchorTop:
	default:
		return core.Error(core.EINVALID, "invalid vertical anchor %v", l.VAlign)
	}
	return nil
}

// Job holds the parameters of a generation run. A Job is passed by value
// and read freshly for every run.
type Job struct {
	Anchor   place.Anchor          // position of the text on the preview
	Preview  place.PreviewGeometry // size of the preview the anchor refers to
	Layout   Layout
	Mode     Mode
	Basename string // base name of the output file; defaults to DefaultBasename
}

func (job Job) basename() string {
	b := strings.TrimSpace(job.Basename)
	if b == "" {
		return DefaultBasename
	}
	return sanitize(b)
}

var (
	whitespace = regexp.MustCompile(`\s+`)
	unsafeChar = regexp.MustCompile(`[/\\:*?"<>|\x00-\x1f\x7f]`)
)

func sanitize(s string) string {
	s = whitespace.ReplaceAllString(strings.TrimSpace(s), "_")
	return unsafeChar.ReplaceAllString(s, "")
}

// EntryName is the file name of a card's document in split mode:
// first and last name joined by an underscore, with whitespace replaced by
// underscores and characters unsafe in paths removed. Empty name parts are
// omitted. Records with no usable name are named by their position n
// (counting from 1).
func EntryName(r records.Record, n int) string {
	var parts []string
	for _, p := range []string{r.FirstName, r.LastName} {
		if p = sanitize(p); p != "" {
			parts = append(parts, p)
		}
	}
	name := strings.Join(parts, "_")
	if name == "" || name == "." || name == ".." {
		name = "card_" + strconv.Itoa(n)
	}
	return name + ".pdf"
}
