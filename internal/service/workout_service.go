package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"avihayshai/hypertrophy-toolbox/internal/domain"
	"avihayshai/hypertrophy-toolbox/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrLogEntryNotFound = errors.New("workout log entry not found")
	ErrNothingToExport  = errors.New("no plan selections to export")
)

// SessionSummary aggregates one training day of the log.
type SessionSummary struct {
	SessionDate   time.Time `json:"sessionDate"`
	Exercises     int       `json:"exercises"`
	ScoredEntries int       `json:"scoredEntries"`
	TotalSets     int       `json:"totalSets"`
	TotalReps     int       `json:"totalReps"`
	// TotalVolume is sets * reps * weight summed over scored entries that
	// carry a weight. Unweighted work contributes reps but no volume.
	TotalVolume float64 `json:"totalVolume"`
}

// MuscleVolume is the per-muscle slice of a weekly summary.
type MuscleVolume struct {
	Muscle    string  `json:"muscle"`
	Sets      int     `json:"sets"`
	Reps      int     `json:"reps"`
	Volume    float64 `json:"volume"`
	Exercises int     `json:"exercises"`
}

// WeeklySummary aggregates one ISO week of the log by primary muscle.
type WeeklySummary struct {
	Year    int            `json:"year"`
	Week    int            `json:"week"`
	Muscles []MuscleVolume `json:"muscles"`
}

// ScoreInput carries the recorded performance for one log entry.
type ScoreInput struct {
	ScoredSets    *int
	ScoredMinReps *int
	ScoredMaxReps int
	ScoredWeight  *float64
	RIR           *int
	RPE           *float64
}

// WorkoutService manages the workout log: exporting the plan into loggable
// sessions, recording performance and summarizing history.
type WorkoutService interface {
	ExportPlanToLog(ctx context.Context, userID primitive.ObjectID, routine string, sessionDate time.Time) ([]domain.WorkoutLogEntry, error)
	ListLog(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutLogEntry, error)
	RecordPerformance(ctx context.Context, userID, entryID primitive.ObjectID, score ScoreInput) (*domain.WorkoutLogEntry, error)
	DeleteLogEntry(ctx context.Context, userID, entryID primitive.ObjectID) error
	SessionSummaries(ctx context.Context, userID primitive.ObjectID) ([]SessionSummary, error)
	WeeklySummaries(ctx context.Context, userID primitive.ObjectID) ([]WeeklySummary, error)
}

// workoutService implements the WorkoutService interface.
type workoutService struct {
	workoutLogRepo repository.WorkoutLogRepository
	selectionRepo  repository.SelectionRepository
	exerciseRepo   repository.ExerciseRepository
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(
	workoutLogRepo repository.WorkoutLogRepository,
	selectionRepo repository.SelectionRepository,
	exerciseRepo repository.ExerciseRepository,
) WorkoutService {
	return &workoutService{
		workoutLogRepo: workoutLogRepo,
		selectionRepo:  selectionRepo,
		exerciseRepo:   exerciseRepo,
	}
}

// ExportPlanToLog copies the planned prescription of one routine (or the
// whole plan when routine is empty) into fresh unscored log entries dated
// sessionDate.
func (s *workoutService) ExportPlanToLog(ctx context.Context, userID primitive.ObjectID, routine string, sessionDate time.Time) ([]domain.WorkoutLogEntry, error) {
	var selections []domain.UserSelection
	var err error
	if routine == "" {
		selections, err = s.selectionRepo.ListByUser(ctx, userID)
	} else {
		selections, err = s.selectionRepo.ListByRoutine(ctx, userID, routine)
	}
	if err != nil {
		return nil, err
	}
	if len(selections) == 0 {
		return nil, ErrNothingToExport
	}

	if sessionDate.IsZero() {
		sessionDate = time.Now().UTC()
	}

	entries := make([]domain.WorkoutLogEntry, 0, len(selections))
	for _, sel := range selections {
		entries = append(entries, domain.WorkoutLogEntry{
			UserID:         userID,
			Routine:        sel.Routine,
			ExerciseName:   sel.ExerciseName,
			PlannedSets:    sel.Sets,
			PlannedMinReps: sel.MinReps,
			PlannedMaxReps: sel.MaxReps,
			PlannedWeight:  sel.Weight,
			PlannedRIR:     sel.RIR,
			SessionDate:    sessionDate,
		})
	}

	if err := s.workoutLogRepo.InsertMany(ctx, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ListLog returns all log entries of the user, newest session first.
func (s *workoutService) ListLog(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutLogEntry, error) {
	return s.workoutLogRepo.ListByUser(ctx, userID)
}

// RecordPerformance fills in the scored fields of one entry. Scoring an
// already scored entry overwrites the previous score.
func (s *workoutService) RecordPerformance(ctx context.Context, userID, entryID primitive.ObjectID, score ScoreInput) (*domain.WorkoutLogEntry, error) {
	if score.ScoredMaxReps < 1 {
		return nil, fmt.Errorf("%w: scored max reps must be positive", ErrValidationFailed)
	}
	if score.ScoredMinReps != nil && *score.ScoredMinReps > score.ScoredMaxReps {
		return nil, fmt.Errorf("%w: scored min reps cannot exceed scored max reps", ErrValidationFailed)
	}
	if score.RIR != nil && (*score.RIR < 0 || *score.RIR > 10) {
		return nil, fmt.Errorf("%w: rir must be between 0 and 10", ErrValidationFailed)
	}
	if score.RPE != nil && (*score.RPE < 1 || *score.RPE > 10) {
		return nil, fmt.Errorf("%w: rpe must be between 1 and 10", ErrValidationFailed)
	}

	entry, err := s.workoutLogRepo.GetByID(ctx, userID, entryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLogEntryNotFound
		}
		return nil, err
	}

	entry.ScoredSets = score.ScoredSets
	if entry.ScoredSets == nil {
		sets := entry.PlannedSets
		entry.ScoredSets = &sets
	}
	entry.ScoredMinReps = score.ScoredMinReps
	maxReps := score.ScoredMaxReps
	entry.ScoredMaxReps = &maxReps
	entry.ScoredWeight = score.ScoredWeight
	if entry.ScoredWeight == nil {
		entry.ScoredWeight = entry.PlannedWeight
	}
	entry.RIR = score.RIR
	entry.RPE = score.RPE
	now := time.Now().UTC()
	entry.ScoredAt = &now

	if err := s.workoutLogRepo.Update(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLogEntryNotFound
		}
		return nil, err
	}
	return entry, nil
}

// DeleteLogEntry removes one entry from the log.
func (s *workoutService) DeleteLogEntry(ctx context.Context, userID, entryID primitive.ObjectID) error {
	err := s.workoutLogRepo.Delete(ctx, userID, entryID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrLogEntryNotFound
	}
	return err
}

// SessionSummaries groups the log by calendar day, newest first.
func (s *workoutService) SessionSummaries(ctx context.Context, userID primitive.ObjectID) ([]SessionSummary, error) {
	entries, err := s.workoutLogRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	byDay := make(map[time.Time]*SessionSummary)
	for i := range entries {
		e := &entries[i]
		day := e.SessionDate.UTC().Truncate(24 * time.Hour)
		summary, ok := byDay[day]
		if !ok {
			summary = &SessionSummary{SessionDate: day}
			byDay[day] = summary
		}
		summary.Exercises++

		sets, reps, weight := entryWork(e)
		summary.TotalSets += sets
		summary.TotalReps += sets * reps
		if e.IsScored() {
			summary.ScoredEntries++
		}
		if weight != nil {
			summary.TotalVolume += float64(sets*reps) * *weight
		}
	}

	summaries := make([]SessionSummary, 0, len(byDay))
	for _, summary := range byDay {
		summaries = append(summaries, *summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].SessionDate.After(summaries[j].SessionDate)
	})
	return summaries, nil
}

// WeeklySummaries groups the log by ISO week and primary muscle, newest week
// first. Muscle attribution comes from the catalog; entries whose exercise is
// no longer in the catalog fall under "Unknown".
func (s *workoutService) WeeklySummaries(ctx context.Context, userID primitive.ObjectID) ([]WeeklySummary, error) {
	entries, err := s.workoutLogRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	muscleByExercise := make(map[string]string)
	type weekKey struct{ year, week int }
	weeks := make(map[weekKey]map[string]*MuscleVolume)
	exerciseSeen := make(map[weekKey]map[string]map[string]bool)

	for i := range entries {
		e := &entries[i]

		muscle, ok := muscleByExercise[e.ExerciseName]
		if !ok {
			muscle = "Unknown"
			if ex, err := s.exerciseRepo.GetByName(ctx, e.ExerciseName); err == nil && ex.PrimaryMuscle != "" {
				muscle = ex.PrimaryMuscle
			} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
				return nil, err
			}
			muscleByExercise[e.ExerciseName] = muscle
		}

		year, week := e.SessionDate.UTC().ISOWeek()
		key := weekKey{year, week}
		if weeks[key] == nil {
			weeks[key] = make(map[string]*MuscleVolume)
			exerciseSeen[key] = make(map[string]map[string]bool)
		}
		mv, ok := weeks[key][muscle]
		if !ok {
			mv = &MuscleVolume{Muscle: muscle}
			weeks[key][muscle] = mv
			exerciseSeen[key][muscle] = make(map[string]bool)
		}

		sets, reps, weight := entryWork(e)
		mv.Sets += sets
		mv.Reps += sets * reps
		if weight != nil {
			mv.Volume += float64(sets*reps) * *weight
		}
		if !exerciseSeen[key][muscle][e.ExerciseName] {
			exerciseSeen[key][muscle][e.ExerciseName] = true
			mv.Exercises++
		}
	}

	summaries := make([]WeeklySummary, 0, len(weeks))
	for key, muscles := range weeks {
		ws := WeeklySummary{Year: key.year, Week: key.week}
		for _, mv := range muscles {
			ws.Muscles = append(ws.Muscles, *mv)
		}
		sort.Slice(ws.Muscles, func(i, j int) bool {
			if ws.Muscles[i].Sets != ws.Muscles[j].Sets {
				return ws.Muscles[i].Sets > ws.Muscles[j].Sets
			}
			return ws.Muscles[i].Muscle < ws.Muscles[j].Muscle
		})
		summaries = append(summaries, ws)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Year != summaries[j].Year {
			return summaries[i].Year > summaries[j].Year
		}
		return summaries[i].Week > summaries[j].Week
	})
	return summaries, nil
}

// entryWork returns the sets, per-set reps and weight that count toward
// summaries. Scored values win over the plan; unscored entries fall back to
// the planned prescription with max reps as the rep estimate.
func entryWork(e *domain.WorkoutLogEntry) (sets, reps int, weight *float64) {
	sets = e.PlannedSets
	reps = e.PlannedMaxReps
	weight = e.PlannedWeight
	if e.ScoredSets != nil {
		sets = *e.ScoredSets
	}
	if e.ScoredMaxReps != nil {
		reps = *e.ScoredMaxReps
	}
	if e.ScoredWeight != nil {
		weight = e.ScoredWeight
	}
	return sets, reps, weight
}
