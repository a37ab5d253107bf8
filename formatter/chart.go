package formatter

import (
	"hiring-simulator/models"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// MinChartHeight is the smallest plot height FormatChart will draw.
const MinChartHeight = 2

const overlapMarker = "*"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	axisStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	overlapStyle = lipgloss.NewStyle().Bold(true)

	// needMarkers and needStyles are indexed by Need.Index().
	needMarkers = [3]string{"o", "x", "+"}
	needStyles  = [3]lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("#E4572E")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#29335C")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#4CB944")),
	}
)

// cell is one plotted point; owner is a need index or -1 when several needs overlap.
type cell struct {
	set   bool
	owner int
}

// FormatChart renders the urgency of every need against the day as a
// terminal line chart, one colour and marker per need, with a legend.
// NaN and infinite scores are left out of the plot.
func FormatChart[T models.Number](result *models.Result[T], height int) string {
	if height < MinChartHeight {
		height = MinChartHeight
	}

	series := make([][]float64, len(models.Needs))
	for _, n := range models.Needs {
		raw := result.Series(n)
		values := make([]float64, len(raw))
		for i, v := range raw {
			values[i] = float64(v)
		}
		series[n.Index()] = values
	}

	lo, hi, ok := bounds(series)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Urgency by day"))
	sb.WriteString("\n")

	if !ok {
		sb.WriteString("(no data)\n")
		sb.WriteString(legend())
		sb.WriteString("\n")
		return sb.String()
	}

	grid := make([][]cell, height)
	for r := range grid {
		grid[r] = make([]cell, len(result.Days))
	}
	for need, values := range series {
		for col, v := range values {
			if !finite(v) {
				continue
			}
			row := plotRow(v, lo, hi, height)
			c := &grid[row][col]
			if c.set && c.owner != need {
				c.owner = -1
				continue
			}
			c.set = true
			c.owner = need
		}
	}

	hiLabel := formatTick(hi)
	loLabel := formatTick(lo)
	gutter := max(len(hiLabel), len(loLabel))

	for r, row := range grid {
		label := ""
		switch r {
		case 0:
			label = hiLabel
		case height - 1:
			label = loLabel
		}
		sb.WriteString(axisStyle.Render(padLeft(label, gutter) + " |"))
		for _, c := range row {
			sb.WriteString(renderCell(c))
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}

	sb.WriteString(axisStyle.Render(strings.Repeat(" ", gutter) + " +" + strings.Repeat("--", len(result.Days))))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat(" ", gutter+2))
	sb.WriteString(dayTicks(result.Days))
	sb.WriteString("\n")
	sb.WriteString(legend())
	sb.WriteString("\n")
	return sb.String()
}

// bounds returns the smallest and largest finite value across all series.
func bounds(series [][]float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, values := range series {
		for _, v := range values {
			if !finite(v) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
			ok = true
		}
	}
	return lo, hi, ok
}

// plotRow maps a value to a grid row, row 0 being the top.
func plotRow(v, lo, hi float64, height int) int {
	if hi == lo {
		return (height - 1) / 2
	}
	pos := int(math.Round((v - lo) / (hi - lo) * float64(height-1)))
	return height - 1 - pos
}

func renderCell(c cell) string {
	switch {
	case !c.set:
		return " "
	case c.owner < 0:
		return overlapStyle.Render(overlapMarker)
	default:
		return needStyles[c.owner].Render(needMarkers[c.owner])
	}
}

// dayTicks labels day 1 and every fifth day under its column.
func dayTicks(days []int) string {
	line := []byte(strings.Repeat(" ", 2*len(days)))
	for i, d := range days {
		if d != 1 && d%5 != 0 {
			continue
		}
		copy(line[2*i:], strconv.Itoa(d))
	}
	return strings.TrimRight(string(line), " ")
}

func legend() string {
	items := make([]string, 0, 2*len(models.Needs)+1)
	for _, n := range models.Needs {
		i := n.Index()
		items = append(items, needStyles[i].Render(needMarkers[i]+" "+n.String()), "   ")
	}
	items = append(items, overlapStyle.Render(overlapMarker+" overlap"))
	return lipgloss.JoinHorizontal(lipgloss.Top, items...)
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
