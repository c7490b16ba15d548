// Package report renders a scanned catalog as a single printable HTML page.
package report

import (
	"bytes"
	"html/template"
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/claes/coursereport/internal/model"
)

const (
	DefaultTitle              = "Deep Learning Specialization"
	DefaultSubtitle           = "Course Progress Report"
	DefaultDescriptionPreview = 100
	TimestampLayout           = "2006-01-02 15:04:05"
)

// Options controls the rendered page.
type Options struct {
	Title              string
	Subtitle           string
	GeneratedAt        time.Time
	DescriptionPreview int // characters of each description shown, <= 0 shows all
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Subtitle == "" {
		o.Subtitle = DefaultSubtitle
	}
	return o
}

type page struct {
	Options
	Generated string
	*model.Catalog
}

var tpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"preview": preview,
	"plural": func(n int, one, many string) string {
		if n == 1 {
			return one
		}
		return many
	},
}).Parse(pageTpl))

// Render writes the HTML report for cat to w.
func Render(w io.Writer, cat *model.Catalog, opts Options) error {
	if cat == nil {
		cat = &model.Catalog{}
	}
	opts = opts.withDefaults()
	p := page{Options: opts, Generated: opts.GeneratedAt.Format(TimestampLayout), Catalog: cat}
	if err := tpl.Execute(w, p); err != nil {
		return errors.Wrap(err, "render report")
	}
	return nil
}

// RenderBytes returns the HTML report for cat.
func RenderBytes(cat *model.Catalog, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, cat, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func preview(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
