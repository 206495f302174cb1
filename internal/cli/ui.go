package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/waterants/sketchcoach/pkg/pipeline"
	"github.com/waterants/sketchcoach/pkg/strokes"
	"github.com/waterants/sketchcoach/pkg/tasks"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - low scores
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleLink    = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(14)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)

	styleScoreHigh = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	styleScoreMid  = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	styleScoreLow  = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + styleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// printDetail prints an indented, muted line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + styleDim.Render(fmt.Sprintf(format, args...)))
}

func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + styleValue.Render(value))
}

func printNextStep(description, cmd string) {
	fmt.Println(styleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// =============================================================================
// Analysis Display
// =============================================================================

// scoreStyle colors a score by the same bands the feedback opener uses.
func scoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= 0.85:
		return styleScoreHigh
	case score >= 0.6:
		return styleScoreMid
	default:
		return styleScoreLow
	}
}

// printAnalysis renders a pipeline result for the terminal.
func printAnalysis(res *pipeline.Result) {
	a := res.Analysis

	printSuccess("%s", res.Feedback.Text)
	fmt.Println()
	printKeyValue("score", scoreStyle(res.Feedback.Score).Render(fmt.Sprintf("%.0f%%", res.Feedback.Score*100)))
	printKeyValue("focus", string(a.FocusArea))
	printKeyValue("wobble", fmt.Sprintf("%.2f", a.StrokeMetrics.Wobble))
	printKeyValue("speed var.", fmt.Sprintf("%.2f", a.StrokeMetrics.SpeedVariation))
	printKeyValue("image", fmt.Sprintf("%s %dx%d", a.Image.Format, a.Image.Width, a.Image.Height))
	printStats(a.Strokes.Count, a.Strokes.Points, res.CacheInfo.AnalysisHit)

	switch a.Strokes.Status {
	case strokes.StatusFallback:
		printWarning("Stroke data could not be read and was ignored")
		if a.Strokes.Reason != "" {
			printDetail("%s", a.Strokes.Reason)
		}
	case strokes.StatusParsed:
		if a.Strokes.Skipped > 0 {
			printWarning("%d malformed strokes counted as empty", a.Strokes.Skipped)
		}
	}

	fmt.Println()
	printKeyValue("next task", styleTitle.Render(res.NextTask.ID))
	printKeyValue("prompt", styleLink.Render(res.NextTask.ImageURL))
	printNextStep("Serve it", "sketchcoach serve")
}

// printStats prints stroke statistics on a single line.
func printStats(strokeCount, pointCount int, cached bool) {
	parts := []string{
		fmt.Sprintf("%d strokes", strokeCount),
		fmt.Sprintf("%d points", pointCount),
	}

	status := styleComputed.Render(iconFresh)
	if cached {
		status = styleCached.Render(iconCached)
	}

	rendered := make([]string, 0, len(parts)+1)
	for _, p := range parts {
		rendered = append(rendered, styleDim.Render(p))
	}
	rendered = append(rendered, status)
	fmt.Println("  " + strings.Join(rendered, styleDim.Render(" · ")))
}

// printTask renders a drawing prompt.
func printTask(t tasks.Task) {
	fmt.Println(styleTitle.Render(t.ID))
	if t.Instructions != "" {
		printDetail("%s", t.Instructions)
	}
	printKeyValue("prompt", styleLink.Render(t.ImageURL))
}
