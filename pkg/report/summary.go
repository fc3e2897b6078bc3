package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dd0wney/cluso-community/pkg/algorithms"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF"))

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(0, 2).
			MarginRight(2)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFF00")).
			Bold(true)

	headerCellStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle       = lipgloss.NewStyle().Padding(0, 1)
)

// RenderSummary renders a terminal summary of r: graph and community
// statistics plus the topN largest communities and ranked nodes.
func RenderSummary(r *Report, topN int) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("PPI community report " + r.RunID))
	b.WriteString("\n")

	graphBox := statsBoxStyle.Render(lines(
		sectionStyle.Render("Graph"),
		stat("nodes", strconv.Itoa(r.Graph.Nodes)),
		stat("edges", strconv.Itoa(r.Graph.Edges)),
		stat("components", strconv.Itoa(r.Graph.Components)),
		stat("largest", strconv.Itoa(r.Graph.LargestComponent)),
	))

	c := r.Community
	converged := "yes"
	if !c.Converged {
		converged = warnStyle.Render("no (pass limit)")
	}
	communityBox := statsBoxStyle.Render(lines(
		sectionStyle.Render("Communities"),
		stat("modularity", fmt.Sprintf("%.4f", c.Modularity)),
		stat("resolution", fmt.Sprintf("%g", c.Resolution)),
		stat("count", strconv.Itoa(c.Count)),
		stat("passes", strconv.Itoa(c.Passes)),
		stat("converged", converged),
	))

	boxes := []string{graphBox, communityBox}
	if m := r.Metrics; m != nil {
		boxes = append(boxes, statsBoxStyle.Render(lines(
			sectionStyle.Render("Structure"),
			stat("mean degree", fmt.Sprintf("%.2f", m.Degree.Mean)),
			stat("max degree", strconv.Itoa(m.Degree.Max)),
			stat("transitivity", fmt.Sprintf("%.4f", m.GlobalTransitivity)),
			stat("avg clustering", fmt.Sprintf("%.4f", m.AverageTransitivity)),
			stat("triangles", strconv.Itoa(m.Triangles)),
		)))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Largest communities"))
	b.WriteString("\n")
	rows := make([][]string, 0, topN)
	for i, comm := range c.Communities {
		if topN > 0 && i >= topN {
			break
		}
		rows = append(rows, []string{
			strconv.Itoa(comm.ID),
			strconv.Itoa(comm.Size),
			fmt.Sprintf("%.3f", comm.Density),
			preview(comm.Members, 4),
		})
	}
	b.WriteString(renderTable([]string{"id", "size", "density", "members"}, rows))
	b.WriteString("\n")

	if m := r.Metrics; m != nil {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("Top nodes"))
		b.WriteString("\n")
		b.WriteString(renderTable(
			[]string{"degree", "betweenness", "transitivity"},
			rankedColumns(topN, m.TopByDegree, m.TopByBetweenness, m.TopByTransitivity),
		))
		b.WriteString("\n")
	}

	return b.String()
}

func lines(parts ...string) string {
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func stat(label, value string) string {
	return labelStyle.Render(fmt.Sprintf("%-15s", label)) + value
}

func preview(members []string, n int) string {
	if len(members) <= n {
		return strings.Join(members, " ")
	}
	return fmt.Sprintf("%s … (+%d)", strings.Join(members[:n], " "), len(members)-n)
}

func renderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#00FFFF"))).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCellStyle
			}
			return cellStyle
		})
	return t.String()
}

// rankedColumns lays several rankings side by side, one column each
func rankedColumns(n int, columns ...[]algorithms.RankedNode) [][]string {
	depth := 0
	for _, col := range columns {
		if len(col) > depth {
			depth = len(col)
		}
	}
	if n > 0 && depth > n {
		depth = n
	}

	rows := make([][]string, depth)
	for i := range rows {
		rows[i] = make([]string, len(columns))
		for j, col := range columns {
			if i < len(col) {
				rows[i][j] = fmt.Sprintf("%s (%.3g)", col[i].Key, col[i].Score)
			}
		}
	}
	return rows
}
