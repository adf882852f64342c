package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/openswoop/registrar/pkg/school"
)

const chartWidth = 40

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

type distributionView struct {
	GPA      string `csv:"gpa"`
	Students int    `csv:"students"`
}

func WriteDistribution(fileName string, dist school.Distribution) error {
	rows := make([]distributionView, 0, len(school.DistributionBuckets))
	for _, bucket := range school.DistributionBuckets {
		rows = append(rows, distributionView{bucket, dist[bucket]})
	}
	return WriteCsv(rows, fileName)
}

// Chart draws the distribution as a horizontal bar chart, one bar per GPA
// bucket.
func Chart(dist school.Distribution) string {
	most := 0
	for _, bucket := range school.DistributionBuckets {
		if dist[bucket] > most {
			most = dist[bucket]
		}
	}

	lines := []string{titleStyle.Render("Student Stats"), ""}
	for _, bucket := range school.DistributionBuckets {
		count := dist[bucket]
		width := 0
		if most > 0 {
			width = count * chartWidth / most
		}
		if count > 0 && width == 0 {
			width = 1
		}
		bar := barStyle.Render(strings.Repeat("█", width))
		lines = append(lines, fmt.Sprintf("%s | %s %d", bucket, bar, count))
	}
	lines = append(lines, "", "GPA | Number of Students")
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
