// Package report renders solids, analysis results and timings as text.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chazu/solidkit/pkg/analysis"
	"github.com/chazu/solidkit/pkg/bench"
	"github.com/chazu/solidkit/pkg/solid"
	"github.com/chazu/solidkit/pkg/tessellate"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
)

// DefaultNameWidth is the widest name shown in tables before truncation.
const DefaultNameWidth = 19

const (
	separator    = "============================================================"
	subseparator = "----------------------------------------"
)

// Printer writes report sections to an output.
type Printer struct {
	w         io.Writer
	st        styles
	nameWidth int
}

// New returns a Printer writing to w. Names wider than nameWidth are
// truncated in tables; values below 4 fall back to DefaultNameWidth.
func New(w io.Writer, nameWidth int) *Printer {
	if nameWidth < 4 {
		nameWidth = DefaultNameWidth
	}
	return &Printer{
		w:         w,
		st:        newStyles(lipgloss.NewRenderer(w)),
		nameWidth: nameWidth,
	}
}

func (p *Printer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) println(s string) {
	fmt.Fprintln(p.w, s)
}

// Truncate shortens s to at most max runes, replacing the tail with "...".
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

func (p *Printer) name(s solid.Solid) string {
	return Truncate(s.Name(), p.nameWidth)
}

// Header prints the program banner.
func (p *Printer) Header() {
	p.println(p.st.banner.Render(separator))
	p.println(p.st.banner.Render("              3D SHAPE ANALYSIS SYSTEM"))
	p.println(p.st.banner.Render(separator))
	p.println("")
}

// Section prints a section title.
func (p *Printer) Section(title string) {
	p.println(p.st.section.Render(">>> " + title))
	p.println("")
}

// Shapes lists every solid with its identity and measurements.
func (p *Printer) Shapes(solids []solid.Solid) {
	p.printf("Created %s:\n\n", english.Plural(len(solids), "shape", ""))
	for i, s := range solids {
		p.printf("%d. %s {type=%s, color=%s}\n", i+1, p.st.label.Render(s.Name()), s.Kind().DisplayName(), s.Color())
		p.printf("   %s\n", s.String())
		p.printf("   - Volume: %.2f cubic units\n", s.Volume())
		p.printf("   - Surface Area: %.2f square units\n", s.SurfaceArea())
		p.println("")
	}
}

// Created confirms a newly created solid.
func (p *Printer) Created(s solid.Solid) {
	p.println(p.st.good.Render("✓ Successfully created: " + s.Name()))
	p.printf("  Volume: %.2f | Surface Area: %.2f\n\n", s.Volume(), s.SurfaceArea())
}

// Summary prints one table row per solid.
func (p *Printer) Summary(solids []solid.Solid) {
	w := p.nameWidth + 1
	p.println(p.st.heading.Render("Created Shapes Summary:"))
	p.println("")
	p.printf("%-3s %-*s %-17s %10s %10s %8s\n", "#", w, "Name", "Type", "Volume", "Surface", "Ratio")
	p.println(p.st.muted.Render(subseparator + strings.Repeat("-", w+10)))
	for i, s := range solids {
		p.printf("%-3d %-*s %-17s %10.2f %10.2f %8.3f\n",
			i+1, w, p.name(s), s.Kind().DisplayName(), s.Volume(), s.SurfaceArea(), analysis.Efficiency(s))
	}
	p.println("")
}

// Analysis prints extremes, statistics, distribution and efficiency.
func (p *Printer) Analysis(rep analysis.Report) {
	if rep.Empty() {
		p.println(p.st.warn.Render("No shapes available for analysis."))
		p.println("")
		return
	}

	p.println(p.st.heading.Render("Comparative Analysis Results:"))
	p.println("")
	p.extreme("Largest Volume", rep.VolumeExtremes.Max, "cubic units")
	p.extreme("Smallest Volume", rep.VolumeExtremes.Min, "cubic units")
	p.extreme("Largest Surface Area", rep.SurfaceExtremes.Max, "square units")
	p.extreme("Smallest Surface Area", rep.SurfaceExtremes.Min, "square units")
	p.println("")

	p.println(p.st.heading.Render("Statistical Analysis:"))
	p.println("")
	p.stats("Volume Statistics", rep.VolumeStats)
	p.stats("Surface Area Statistics", rep.SurfaceStats)

	p.println(p.st.heading.Render("Shape Type Distribution:"))
	for _, kc := range rep.Distribution {
		p.printf("  %s: %s\n", kc.Kind.DisplayName(), english.Plural(kc.Count, "shape", ""))
	}
	p.println("")

	p.Efficiency(rep.Efficiency)
}

func (p *Printer) extreme(label string, m analysis.Measured, unit string) {
	p.printf("%s: %s (%.2f %s)\n", p.st.label.Render(label), m.Solid.Name(), m.Value, unit)
}

func (p *Printer) stats(title string, st analysis.Stats) {
	p.printf("%s:\n", title)
	p.printf("  Average: %.2f | Total: %.2f\n", st.Mean, st.Sum)
	p.printf("  Range: %.2f - %.2f\n", st.Min, st.Max)
	p.printf("  Std Dev: %.2f\n", st.StdDev)
	p.println("")
}

// Efficiency prints the volume-to-surface ranking.
func (p *Printer) Efficiency(ranked []analysis.Measured) {
	w := p.nameWidth + 1
	p.println(p.st.heading.Render("Efficiency Analysis (Volume/Surface Ratio):"))
	p.println("")
	p.printf("%-4s %-*s %-17s %10s\n", "Rank", w, "Name", "Type", "Efficiency")
	p.println(p.st.muted.Render(subseparator + strings.Repeat("-", w-5)))
	for i, m := range ranked {
		p.printf("%-4d %-*s %-17s %10.4f\n", i+1, w, p.name(m.Solid), m.Solid.Kind().DisplayName(), m.Value)
	}
	p.println("")
	if len(ranked) > 0 {
		p.printf("%s: %s (%.4f ratio)\n\n", p.st.good.Render("Most Efficient Shape"), ranked[0].Solid.Name(), ranked[0].Value)
	}
}

// Timing prints the per-solid measurement cost.
func (p *Printer) Timing(res bench.Result) {
	w := p.nameWidth + 1
	p.printf("Measured calculation performance (%s iterations per metric):\n\n", humanize.Comma(int64(res.Iterations)))
	p.printf("%-*s %-17s %12s %12s %12s\n", w, "Name", "Type", "Volume (ns)", "Surface (ns)", "Total (ns)")
	p.println(p.st.muted.Render(subseparator + strings.Repeat("-", w+10)))
	for _, t := range res.Timings {
		p.printf("%-*s %-17s %12.2f %12.2f %12.2f\n",
			w, p.name(t.Solid), t.Solid.Kind().DisplayName(),
			t.Average(t.Volume), t.Average(t.Surface), t.Average(t.Total()))
	}
	if fast, ok := res.Fastest(); ok {
		slow, _ := res.Slowest()
		p.println("")
		p.printf("%s: %s (%s, %s calls)\n", p.st.good.Render("Fastest"),
			fast.Solid.Name(), fast.Solid.Kind().DisplayName(), bench.PerSecond(fast.Average(fast.Total())))
		p.printf("%s: %s (%s, %s calls)\n", p.st.warn.Render("Slowest"),
			slow.Solid.Name(), slow.Solid.Kind().DisplayName(), bench.PerSecond(slow.Average(slow.Total())))
	}
	p.println("")
}

// Deviations prints how closely each tessellated mesh matches its solid.
func (p *Printer) Deviations(devs []tessellate.Deviation) {
	w := p.nameWidth + 1
	p.println(p.st.heading.Render("Tessellation Accuracy:"))
	p.println("")
	p.printf("%-*s %-17s %12s %12s %8s %8s\n", w, "Name", "Type", "Volume", "Mesh", "Vol err", "Area err")
	p.println(p.st.muted.Render(subseparator + strings.Repeat("-", w+20)))
	for _, d := range devs {
		p.printf("%-*s %-17s %12.2f %12.2f %7.2f%% %7.2f%%\n",
			w, Truncate(d.Name, p.nameWidth), d.Kind.DisplayName(),
			d.AnalyticVolume, d.MeshVolume, 100*d.VolumeError(), 100*d.SurfaceError())
	}
	p.println("")
}

// Closing prints the final banner.
func (p *Printer) Closing(processed int) {
	p.println(p.st.banner.Render(separator))
	p.println(p.st.banner.Render("            ANALYSIS COMPLETE"))
	p.printf("        Processed %s successfully\n", english.Plural(processed, "shape", ""))
	p.println(p.st.banner.Render(separator))
}
