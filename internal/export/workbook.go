// Package export builds xlsx workbooks from plan and log rows. Layout only;
// cell styling is deliberately minimal.
package export

import (
	"bytes"
	"fmt"

	"avihayshai/hypertrophy-toolbox/internal/domain"

	"github.com/xuri/excelize/v2"
)

// XLSXContentType is the MIME type of the generated workbooks.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var planHeader = []string{"Routine", "Exercise", "Pattern", "Role", "Sets", "Min Reps", "Max Reps", "RIR", "Weight", "Superset"}

// PlanWorkbook renders the current plan, one row per selection, ordered as
// stored (routine, then exercise order).
func PlanWorkbook(selections []domain.UserSelection) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Workout Plan"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	if err := writeRow(f, sheet, 1, toCells(planHeader)); err != nil {
		return nil, err
	}

	for i, sel := range selections {
		row := []interface{}{
			sel.Routine,
			sel.ExerciseName,
			sel.MovementPattern,
			string(sel.Role),
			sel.Sets,
			sel.MinReps,
			sel.MaxReps,
			derefInt(sel.RIR),
			derefFloat(sel.Weight),
			derefString(sel.SupersetGroup),
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}

var logHeader = []string{"Session Date", "Routine", "Exercise", "Planned Sets", "Planned Reps", "Scored Sets", "Scored Reps", "Weight", "RIR", "RPE"}

// LogWorkbook renders the workout log, one row per entry.
func LogWorkbook(entries []domain.WorkoutLogEntry) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Workout Log"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	if err := writeRow(f, sheet, 1, toCells(logHeader)); err != nil {
		return nil, err
	}

	for i, entry := range entries {
		row := []interface{}{
			entry.SessionDate.Format("2006-01-02"),
			entry.Routine,
			entry.ExerciseName,
			entry.PlannedSets,
			fmt.Sprintf("%d-%d", entry.PlannedMinReps, entry.PlannedMaxReps),
			derefInt(entry.ScoredSets),
			scoredRepsCell(entry),
			derefFloat(entry.ScoredWeight),
			derefInt(entry.RIR),
			derefFloat(entry.RPE),
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}

func scoredRepsCell(entry domain.WorkoutLogEntry) interface{} {
	if entry.ScoredMaxReps == nil {
		return ""
	}
	if entry.ScoredMinReps != nil && *entry.ScoredMinReps != *entry.ScoredMaxReps {
		return fmt.Sprintf("%d-%d", *entry.ScoredMinReps, *entry.ScoredMaxReps)
	}
	return *entry.ScoredMaxReps
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func toCells(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func derefInt(v *int) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func derefFloat(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func derefString(v *string) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
