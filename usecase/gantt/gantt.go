// Package gantt turns tasks into chart geometry measured in calendar days.
package gantt

import (
	"github.com/fastygo/planner/domain"
)

// MaxAxisDays bounds the day axis, roughly a thousand years.
const MaxAxisDays = 366000

// Row places one task on the chart.
type Row struct {
	TaskID      string            `json:"taskId"`
	Title       string            `json:"title"`
	Assignee    string            `json:"assignee"`
	Status      domain.TaskStatus `json:"status"`
	Priority    domain.Priority   `json:"priority"`
	StartDate   domain.Date       `json:"startDate"`
	DueDate     domain.Date       `json:"dueDate"`
	StartOffset int               `json:"startOffset"`
	Duration    int               `json:"duration"`
}

// Chart is the axis of days plus one row per charted task.
// Truncated is set when the range exceeds MaxAxisDays; Days then stops
// early while MaxDate and the row offsets stay exact.
type Chart struct {
	MinDate   domain.Date   `json:"minDate,omitempty"`
	MaxDate   domain.Date   `json:"maxDate,omitempty"`
	Days      []domain.Date `json:"days"`
	Rows      []Row         `json:"rows"`
	Truncated bool          `json:"truncated,omitempty"`
}

// Compute lays tasks out on a day axis running from the earliest start date
// to the latest due date. Tasks without a start date or with unparsable
// dates are not charted. Rows follow input order; offsets and durations do not.
func Compute(tasks []domain.Task) Chart {
	chart := Chart{Days: []domain.Date{}, Rows: []Row{}}

	charted := make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.StartDate.IsZero() || !task.StartDate.Valid() || !task.DueDate.Valid() {
			continue
		}
		charted = append(charted, task)
	}
	if len(charted) == 0 {
		return chart
	}

	minDate, maxDate := charted[0].StartDate, charted[0].DueDate
	for _, task := range charted[1:] {
		if before(task.StartDate, minDate) {
			minDate = task.StartDate
		}
		if before(maxDate, task.DueDate) {
			maxDate = task.DueDate
		}
	}
	if before(maxDate, minDate) {
		maxDate = minDate
	}
	chart.MinDate, chart.MaxDate = minDate, maxDate

	span, _ := domain.DaysBetween(minDate, maxDate)
	axis := span + 1
	if axis > MaxAxisDays {
		axis = MaxAxisDays
		chart.Truncated = true
	}
	start, _ := minDate.Time()
	chart.Days = make([]domain.Date, 0, axis)
	for i := 0; i < axis; i++ {
		chart.Days = append(chart.Days, domain.DateOf(start.AddDate(0, 0, i)))
	}

	for _, task := range charted {
		offset, _ := domain.DaysBetween(minDate, task.StartDate)
		length, _ := domain.DaysBetween(task.StartDate, task.DueDate)
		duration := length + 1
		if duration < 1 {
			duration = 1
		}
		chart.Rows = append(chart.Rows, Row{
			TaskID:      task.ID,
			Title:       task.Title,
			Assignee:    task.Assignee,
			Status:      task.Status,
			Priority:    task.Priority,
			StartDate:   task.StartDate,
			DueDate:     task.DueDate,
			StartOffset: offset,
			Duration:    duration,
		})
	}
	return chart
}

func before(a, b domain.Date) bool {
	n, err := domain.DaysBetween(b, a)
	return err == nil && n < 0
}
