package main

import (
	"os"

	"github.com/placecards/winietki/backend/pdf"
	"github.com/placecards/winietki/core"
	"github.com/placecards/winietki/engine/assembler"
	"github.com/placecards/winietki/engine/place"
	"gopkg.in/yaml.v3"
)

// JobFile is the YAML description of a generation job.
type JobFile struct {
	Template string        `yaml:"template"`
	Data     string        `yaml:"data"`
	Font     string        `yaml:"font"` // file path, http(s) URL or system font name
	Output   string        `yaml:"output"`
	Basename string        `yaml:"basename"`
	Mode     string        `yaml:"mode"` // merged | split
	Anchor   AnchorConfig  `yaml:"anchor"`
	Preview  PreviewConfig `yaml:"preview"`
	Layout   LayoutConfig  `yaml:"layout"`
}

// AnchorConfig is the text position in preview pixels.
type AnchorConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// PreviewConfig is the size of the preview the anchor refers to.
type PreviewConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// LayoutConfig holds text styling.
type LayoutConfig struct {
	Size   int     `yaml:"size"`
	Color  string  `yaml:"color"`
	Align  string  `yaml:"align"`  // left | center | right
	VAlign string  `yaml:"valign"` // baseline | top
}

// DefaultJobFile returns a job with default settings and no inputs.
func DefaultJobFile() *JobFile {
	return &JobFile{
		Output:   ".",
		Basename: assembler.DefaultBasename,
		Mode:     assembler.Merged.String(),
		Anchor:   AnchorConfig{X: 100, Y: 100},
		Preview: PreviewConfig{
			Width:  place.DefaultPreviewWidthPx,
			Height: place.DefaultPreviewHeightPx,
		},
		Layout: LayoutConfig{
			Size:   12,
			Color:  pdf.Black.String(),
			Align:  place.AlignCenter.String(),
			VAlign: place.AnchorBaseline.String(),
		},
	}
}

// LoadJobFile reads a job from a YAML file. Settings missing in the file
// keep their defaults.
func LoadJobFile(path string) (*JobFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "failed to read job file %s", path)
	}
	jf := DefaultJobFile()
	if err := yaml.Unmarshal(data, jf); err != nil {
		return nil, core.WrapError(err, core.EINVALID, "failed to parse job file %s", path)
	}
	return jf, nil
}

// Save writes the job to a YAML file.
func (jf *JobFile) Save(path string) error {
	data, err := yaml.Marshal(jf)
	if err != nil {
		return core.WrapError(err, core.EINTERNAL, "failed to marshal job")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return core.WrapError(err, core.EINTERNAL, "failed to write job file %s", path)
	}
	return nil
}

// Job converts the settings into an assembler job.
func (jf *JobFile) Job() (assembler.Job, error) {
	job := assembler.Job{
		Anchor:   place.Anchor{X: jf.Anchor.X, Y: jf.Anchor.Y},
		Preview:  place.PreviewGeometry{WidthPx: jf.Preview.Width, HeightPx: jf.Preview.Height},
		Basename: jf.Basename,
	}
	var err error
	if job.Mode, err = assembler.ParseMode(jf.Mode); err != nil {
		return job, core.WrapError(err, core.EINVALID, "%v", err)
	}
	layout := assembler.Layout{FontSize: jf.Layout.Size}
	if layout.Color, err = pdf.ParseHexColor(jf.Layout.Color); err != nil {
		return job, core.WrapError(err, core.EINVALID, "%v", err)
	}
	if layout.Align, err = place.ParseAlignment(jf.Layout.Align); err != nil {
		return job, core.WrapError(err, core.EINVALID, "%v", err)
	}
	if layout.VAlign, err = place.ParseVerticalAnchor(jf.Layout.VAlign); err != nil {
		return job, core.WrapError(err, core.EINVALID, "%v", err)
	}
	job.Layout = layout
	return job, job.Layout.Validate()
}
