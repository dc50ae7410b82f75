/*
Command winietki generates personalized place cards from a PDF template
and a CSV guest list.

Usage:

	winietki -job cards.yaml
	winietki -template card.pdf -data guests.csv -mode split -size 24 -color '#333333'
	winietki -init cards.yaml
	winietki -inspect card.pdf -job cards.yaml

Flags override the settings of a job file.
*/
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/placecards/winietki/backend/pdf"
	"github.com/placecards/winietki/core"
	"github.com/placecards/winietki/core/locate/resources"
	"github.com/placecards/winietki/core/percent"
	"github.com/placecards/winietki/engine/assembler"
	"github.com/placecards/winietki/engine/place"
	"github.com/pterm/pterm"
)

// tracer traces with key 'winietki.cli'
func tracer() tracing.Trace {
	return tracing.Select("winietki.cli")
}

func main() {
	initDisplay()

	// command line flags
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	jobfile := flag.String("job", "", "YAML job file")
	initfile := flag.String("init", "", "Write a default job file and exit")
	inspect := flag.String("inspect", "", "Print page count and size of a PDF and exit")
	jf := DefaultJobFile()
	flag.StringVar(&jf.Template, "template", "", "PDF template")
	flag.StringVar(&jf.Data, "data", "", "CSV file with guests")
	flag.StringVar(&jf.Font, "font", "", "Font file, URL or system font name")
	flag.StringVar(&jf.Output, "out", jf.Output, "Output directory")
	flag.StringVar(&jf.Basename, "basename", jf.Basename, "Base name of the output file")
	flag.StringVar(&jf.Mode, "mode", jf.Mode, "Output mode [merged|split]")
	flag.Float64Var(&jf.Anchor.X, "x", jf.Anchor.X, "Horizontal text position on the preview, in pixels")
	flag.Float64Var(&jf.Anchor.Y, "y", jf.Anchor.Y, "Vertical text position on the preview, in pixels")
	flag.Float64Var(&jf.Preview.Width, "preview-width", jf.Preview.Width, "Width of the preview, in pixels")
	flag.Float64Var(&jf.Preview.Height, "preview-height", jf.Preview.Height, "Height of the preview, in pixels")
	flag.IntVar(&jf.Layout.Size, "size", jf.Layout.Size, "Font size in points")
	flag.StringVar(&jf.Layout.Color, "color", jf.Layout.Color, "Text color as #rrggbb")
	flag.StringVar(&jf.Layout.Align, "align", jf.Layout.Align, "Text alignment [left|center|right]")
	flag.StringVar(&jf.Layout.VAlign, "valign", jf.Layout.VAlign, "Vertical anchor [baseline|top]")
	flag.Parse()

	// set up logging
	conf := setupTracing(*tlevel)

	if *initfile != "" {
		if err := DefaultJobFile().Save(*initfile); err != nil {
			fail(err, 2)
		}
		pterm.Info.Printf("Job file written to %s\n", *initfile)
		return
	}
	if *jobfile != "" {
		loaded, err := LoadJobFile(*jobfile)
		if err != nil {
			fail(err, 2)
		}
		jf = overrideFromFlags(loaded, jf)
	}
	if *inspect != "" {
		if err := inspectPDF(*inspect, jf); err != nil {
			fail(err, 2)
		}
		return
	}
	pterm.Info.Println("Welcome to winietki") // colored welcome message
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := generate(ctx, conf, jf); err != nil {
		fail(err, 3)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func setupTracing(level string) schuko.Configuration {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":          "go",
		"trace.winietki.cli":       level,
		"trace.winietki.assembler": level,
		"trace.winietki.records":   level,
		"trace.winietki.resources": level,
		"trace.winietki.fonts":     level,
		"trace.winietki.pdf":       level,
		"trace.winietki.bundle":    level,
		"app-key":                  "winietki",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		core.UserError(core.WrapError(err, core.EINTERNAL, "error configuring tracing"))
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return conf
}

// overrideFromFlags copies values of flags set on the command line from
// flagged into loaded.
func overrideFromFlags(loaded, flagged *JobFile) *JobFile {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "template":
			loaded.Template = flagged.Template
		case "data":
			loaded.Data = flagged.Data
		case "font":
			loaded.Font = flagged.Font
		case "out":
			loaded.Output = flagged.Output
		case "basename":
			loaded.Basename = flagged.Basename
		case "mode":
			loaded.Mode = flagged.Mode
		case "x":
			loaded.Anchor.X = flagged.Anchor.X
		case "y":
			loaded.Anchor.Y = flagged.Anchor.Y
		case "preview-width":
			loaded.Preview.Width = flagged.Preview.Width
		case "preview-height":
			loaded.Preview.Height = flagged.Preview.Height
		case "size":
			loaded.Layout.Size = flagged.Layout.Size
		case "color":
			loaded.Layout.Color = flagged.Layout.Color
		case "align":
			loaded.Layout.Align = flagged.Layout.Align
		case "valign":
			loaded.Layout.VAlign = flagged.Layout.VAlign
		}
	})
	return loaded
}

func fail(err error, exitcode int) {
	tracer().Errorf("%v", err)
	if core.Code(err) == core.EINTERNAL {
		pterm.Error.Println(err.Error())
	} else {
		pterm.Error.Println(core.UserMessage(err))
	}
	os.Exit(exitcode)
}

// inspectPDF reports the size of a template and where the job's text
// anchor lands on it.
func inspectPDF(path string, jf *JobFile) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.WrapError(err, core.EMISSING, "cannot read %s", path)
	}
	info, err := pdf.Inspect(data)
	if err != nil {
		return core.WrapError(err, core.EINVALID, "%s is not a readable PDF", path)
	}
	pterm.Info.Printf("%s: %d page(s), page 1 is %.2f x %.2f pt\n",
		path, info.PageCount, info.PageWidth, info.PageHeight)
	geom := place.TemplateGeometry{PageWidthPt: info.PageWidth, PageHeightPt: info.PageHeight}
	preview := place.PreviewGeometry{WidthPx: jf.Preview.Width, HeightPx: jf.Preview.Height}
	anchor := place.Anchor{X: jf.Anchor.X, Y: jf.Anchor.Y}
	at := place.Map(anchor, preview, geom)
	if shown := place.ToPreview(at, preview, geom); shown != anchor {
		pterm.Warning.Printf("anchor (%g, %g) is outside of the preview, using (%.1f, %.1f)\n",
			anchor.X, anchor.Y, shown.X, shown.Y)
	}
	pterm.Info.Printf("text anchor at (%.2f, %.2f) pt\n", at.X, at.Y)
	pterm.Info.Printf("%dpt text shows as %.1fpx on the preview\n", jf.Layout.Size,
		place.PreviewFontSize(float64(jf.Layout.Size), preview, geom))
	return nil
}

func generate(ctx context.Context, conf schuko.Configuration, jf *JobFile) error {
	job, err := jf.Job()
	if err != nil {
		return err
	}
	a := assembler.New()
	if jf.Template != "" {
		data, err := os.ReadFile(jf.Template)
		if err != nil {
			return core.WrapError(err, core.EMISSING, "cannot read template %s", jf.Template)
		}
		if err = a.LoadTemplate(data); err != nil {
			return err
		}
	}
	if jf.Data != "" {
		f, err := os.Open(jf.Data)
		if err != nil {
			return core.WrapError(err, core.EMISSING, "cannot read guest list %s", jf.Data)
		}
		err = a.LoadRecords(f)
		f.Close()
		if err != nil {
			return err
		}
	}
	if jf.Font != "" {
		sf, err := resources.LocateFont(conf, jf.Font).Await(ctx)
		if err != nil {
			pterm.Warning.Printf("font %s not usable, using default font: %v\n", jf.Font, err)
		} else {
			pterm.Info.Printf("using font %s\n", sf.Fontname)
			a.SetFont(sf.Binary)
		}
	}
	bar, err := pterm.DefaultProgressbar.WithTotal(100).WithTitle("Generating cards").Start()
	if err != nil {
		return err
	}
	out, err := a.Generate(ctx, job, func(p percent.Percent) {
		bar.Add(int(p) - bar.Current)
	})
	bar.Stop()
	if err != nil {
		return err
	}
	path, err := out.WriteFile(jf.Output)
	if err != nil {
		return err
	}
	pterm.Success.Printf("%s written\n", path)
	return nil
}
