package display

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"stagedtimer/internal/duration"
	"stagedtimer/internal/schedule"
)

// ColumnAlignment selects left or right alignment for RenderTable columns.
type ColumnAlignment int

const (
	AlignLeft ColumnAlignment = iota
	AlignRight
)

// RenderTable renders rows as a rounded table. Short rows are padded.
func RenderTable(headers []string, rows [][]string, aligns []ColumnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := range headers {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == AlignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// PlanTable renders the stages of plan with their durations and start offsets.
func PlanTable(plan schedule.Plan) string {
	rows := make([][]string, 0, len(plan.Stages)+2)
	if plan.PreWait > 0 {
		rows = append(rows, []string{"-", "(wait)", duration.Format(plan.PreWait), "0"})
	}
	for i, stage := range plan.Stages {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			stage.Name,
			duration.Format(stage.Duration),
			duration.Format(plan.StartOffset(i)),
		})
	}
	rows = append(rows, []string{"", "Total", duration.Format(plan.Total()), ""})
	return RenderTable(
		[]string{"#", "Stage", "Duration", "Starts at"},
		rows,
		[]ColumnAlignment{AlignRight, AlignLeft, AlignRight, AlignRight},
	)
}

// Announcements returns one "Timer '<name>' set for <duration>" line per stage.
func Announcements(plan schedule.Plan) []string {
	lines := make([]string, 0, len(plan.Stages)+1)
	if plan.PreWait > 0 {
		lines = append(lines, "Waiting "+duration.Format(plan.PreWait)+" before the first stage")
	}
	for _, stage := range plan.Stages {
		lines = append(lines, "Timer '"+stage.Name+"' set for "+durationLabel(stage.Duration))
	}
	return lines
}

func durationLabel(s duration.Seconds) string {
	if s < 60 {
		return strconv.FormatInt(int64(s), 10) + "s"
	}
	return duration.Format(s)
}
