package assembler

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/placecards/winietki/backend/bundle"
	"github.com/placecards/winietki/backend/pdf"
	"github.com/placecards/winietki/core"
	"github.com/placecards/winietki/core/font"
	"github.com/placecards/winietki/core/locate/resources"
	"github.com/placecards/winietki/core/percent"
	"github.com/placecards/winietki/engine/place"
	"github.com/placecards/winietki/input/records"
)

// State is the state of an Assembler.
type State int

const (
	Idle          State = iota // inputs incomplete
	TemplateReady              // template and records present
	Generating                 // a run is in progress
	Completed                  // the last run succeeded
	Failed                     // the last run failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case TemplateReady:
		return "TemplateReady"
	case Generating:
		return "Generating"
	case Completed:
		return "Completed"
	case Failed:
		return "Failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ProgressFunc receives the progress of a run after every record. Values
// never decrease, and a successful run always reports 100 last.
type ProgressFunc func(percent.Percent)

// Assembler generates place cards from a template and a list of records.
// Inputs may be changed between runs; a run works on a snapshot of the
// inputs taken when it starts. At most one run may be in progress.
type Assembler struct {
	mu      sync.Mutex // guards the fields below, never held during a run
	state   State
	tmpl    *pdf.Template
	records []records.Record
	font    []byte
}

// New creates an assembler without inputs.
func New() *Assembler {
	return &Assembler{state: Idle}
}

// State returns the current state.
func (a *Assembler) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// ready must be called with a.mu held.
func (a *Assembler) ready() bool {
	return a.tmpl != nil && len(a.records) > 0
}

// inputsChanged must be called with a.mu held.
func (a *Assembler) inputsChanged() {
	switch a.state {
	case Idle:
		if a.ready() {
			a.state = TemplateReady
		}
	case TemplateReady:
		if !a.ready() {
			a.state = Idle
		}
	}
}

// SetTemplate sets the template. nil removes it.
func (a *Assembler) SetTemplate(t *pdf.Template) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tmpl = t
	a.inputsChanged()
}

// LoadTemplate validates template data and, if it is usable, sets it as
// the template. Otherwise the previous template is kept.
func (a *Assembler) LoadTemplate(data []byte) error {
	t, err := pdf.LoadTemplate(data)
	if err != nil {
		return err
	}
	a.SetTemplate(t)
	return nil
}

// SetRecords sets the records to generate cards for.
func (a *Assembler) SetRecords(recs []records.Record) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.records = append([]records.Record(nil), recs...)
	a.inputsChanged()
}

// LoadRecords reads records from CSV data. If the data cannot be parsed,
// an error with code core.EINVALID is returned and the previous records
// are kept.
func (a *Assembler) LoadRecords(r io.Reader) error {
	recs, err := records.Load(r)
	if err != nil {
		return err
	}
	tracer().Infof("%d records loaded", len(recs))
	a.SetRecords(recs)
	return nil
}

// SetFont sets the binary of a TrueType font to use for card text. An
// empty font selects the default font. Fonts which turn out to be unusable
// are replaced by the default font during generation.
func (a *Assembler) SetFont(fontdata []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.font = fontdata
}

// run is a single generation run.
type run struct {
	id       uuid.UUID
	job      Job
	tmpl     *pdf.Template
	records  []records.Record
	font     []byte
	anchor   place.Point
	progress ProgressFunc
	last     percent.Percent
}

// Generate produces cards for all records and packages them according to
// job.Mode.
//
// Generate fails with core.EBUSY if a run is already in progress,
// core.EMISSING if template or records are missing, and core.EINVALID for
// an invalid layout; in these cases the state of the assembler does not
// change. Errors during a run fail it with core.EASSEMBLY, or with
// core.ECANCELED if ctx is done before all records are processed. A
// failed run returns no output.
//
// progress may be nil.
func (a *Assembler) Generate(ctx context.Context, job Job, progress ProgressFunc) (out bundle.Output, err error) {
	r, err := a.start(job, progress)
	if err != nil {
		return bundle.Output{}, err
	}
	completed := false
	defer func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		if !completed {
			a.state = Failed
			tracer().Errorf("run %s failed: %v", r.id, err)
			return
		}
		a.state = Completed
		tracer().Infof("run %s completed: %s, %d bytes", r.id, out.Filename, len(out.Data))
	}()
	tracer().Infof("run %s: %d cards, mode %s", r.id, len(r.records), job.Mode)
	switch job.Mode {
	case Split:
		out, err = r.split(ctx)
	default:
		out, err = r.merged(ctx)
	}
	if err != nil {
		return bundle.Output{}, err
	}
	completed = true
	return out, nil
}

func (a *Assembler) start(job Job, progress ProgressFunc) (*run, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == Generating {
		return nil, core.Error(core.EBUSY, "a generation run is already in progress")
	}
	if a.tmpl == nil {
		return nil, core.Error(core.EMISSING, "no template loaded")
	}
	if len(a.records) == 0 {
		return nil, core.Error(core.EMISSING, "no records loaded")
	}
	if err := job.Layout.Validate(); err != nil {
		return nil, err
	}
	if job.Mode != Merged && job.Mode != Split {
		return nil, core.Error(core.EINVALID, "invalid output mode %v", job.Mode)
	}
	geom := place.TemplateGeometry{
		PageWidthPt:  a.tmpl.PageWidth,
		PageHeightPt: a.tmpl.PageHeight,
	}
	r := &run{
		id:       uuid.New(),
		job:      job,
		tmpl:     a.tmpl,
		records:  a.records,
		font:     a.font,
		anchor:   place.Map(job.Anchor, job.Preview, geom),
		progress: progress,
	}
	a.state = Generating
	return r, nil
}

func (r *run) advance(i int) {
	p := percent.Of(i+1, len(r.records))
	if p < r.last {
		p = r.last
	}
	r.last = p
	if r.progress != nil {
		r.progress(p)
	}
}

func (r *run) checkCanceled(ctx context.Context, i int) error {
	if err := ctx.Err(); err != nil {
		return core.WrapError(err, core.ECANCELED, "generation canceled after %d of %d cards",
			i, len(r.records))
	}
	return nil
}

// prepare creates a document and resolves the run's font for it.
func (r *run) prepare() (*pdf.Document, *pdf.Font, *font.TypeCase, error) {
	doc := pdf.NewDocument(r.tmpl)
	f, err := resources.ResolveFont[*pdf.Font](doc, r.font)
	if err != nil {
		return nil, nil, nil, err
	}
	tc, err := f.Source.PrepareCase(float64(r.job.Layout.FontSize))
	if err != nil {
		return nil, nil, nil, core.WrapError(err, core.EASSEMBLY, "cannot measure text in font %s",
			f.Source.Fontname)
	}
	return doc, f, tc, nil
}

// card adds a page for a record to doc.
func (r *run) card(doc *pdf.Document, f *pdf.Font, tc *font.TypeCase, rec records.Record) error {
	if err := doc.AddTemplatePage(); err != nil {
		return core.WrapError(err, core.EASSEMBLY, "cannot copy template page")
	}
	text := rec.DisplayName()
	layout := r.job.Layout
	at := place.Placement(tc, text, r.anchor, layout.Align, layout.VAlign)
	tracer().Debugf("%q at (%.2f, %.2f)", text, at.X, at.Y)
	if err := doc.DrawText(f, text, at.X, at.Y, tc.PtSize(), layout.Color); err != nil {
		return core.WrapError(err, core.EASSEMBLY, "cannot draw text %q", text)
	}
	return nil
}

func (r *run) merged(ctx context.Context) (bundle.Output, error) {
	doc, f, tc, err := r.prepare()
	if err != nil {
		return bundle.Output{}, err
	}
	for i, rec := range r.records {
		if err = r.checkCanceled(ctx, i); err != nil {
			return bundle.Output{}, err
		}
		if err = r.card(doc, f, tc, rec); err != nil {
			return bundle.Output{}, err
		}
		r.advance(i)
	}
	data, err := doc.Bytes()
	if err != nil {
		return bundle.Output{}, core.WrapError(err, core.EASSEMBLY, "cannot serialize document")
	}
	return bundle.Merged(r.job.basename(), data), nil
}

func (r *run) split(ctx context.Context) (bundle.Output, error) {
	entries := make([]bundle.Entry, 0, len(r.records))
	for i, rec := range r.records {
		if err := r.checkCanceled(ctx, i); err != nil {
			return bundle.Output{}, err
		}
		doc, f, tc, err := r.prepare()
		if err != nil {
			return bundle.Output{}, err
		}
		if err = r.card(doc, f, tc, rec); err != nil {
			return bundle.Output{}, err
		}
		data, err := doc.Bytes()
		if err != nil {
			return bundle.Output{}, core.WrapError(err, core.EASSEMBLY,
				"cannot serialize card for %q", rec.DisplayName())
		}
		entries = append(entries, bundle.Entry{Name: EntryName(rec, i+1), Data: data})
		r.advance(i)
	}
	return bundle.Archive(r.job.basename(), entries)
}
