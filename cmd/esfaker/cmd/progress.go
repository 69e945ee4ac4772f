package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/progress"
)

// progressBar draws a single-line progress bar that is redrawn in place.
type progressBar struct {
	out   io.Writer
	bar   progress.Model
	total int
	drawn bool
}

func newProgressBar(out io.Writer, total int) *progressBar {
	return &progressBar{
		out:   out,
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		total: total,
	}
}

// Update redraws the bar for the cumulative number of documents submitted.
func (p *progressBar) Update(attempted int) {
	percent := 1.0
	if p.total > 0 {
		percent = float64(attempted) / float64(p.total)
	}
	fmt.Fprintf(p.out, "\rGenerating documents %s %d/%d", p.bar.ViewAs(percent), attempted, p.total)
	p.drawn = true
}

// Done ends the bar's line.
func (p *progressBar) Done() {
	if p.drawn {
		fmt.Fprintln(p.out)
	}
}
