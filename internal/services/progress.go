package services

import (
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/terraincognita07/splitday/internal/models"
)

var ErrInvalidWeightUnit = errors.New("invalid weight unit")

const kilogramsPerPound = 0.453592

type WeightUnit string

const (
	WeightUnitPounds    WeightUnit = "lbs"
	WeightUnitKilograms WeightUnit = "kg"
)

// ParseWeightUnit accepts "lbs", "lb", "kg" in any case. Empty input means pounds.
func ParseWeightUnit(raw string) (WeightUnit, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "lbs", "lb":
		return WeightUnitPounds, nil
	case "kg", "kgs":
		return WeightUnitKilograms, nil
	default:
		return "", ErrInvalidWeightUnit
	}
}

// Convert takes a stored pound value into the unit. Kilograms are rounded to one decimal.
func (unit WeightUnit) Convert(pounds float64) float64 {
	if unit == WeightUnitKilograms {
		return LbsToKg(pounds)
	}
	return pounds
}

func LbsToKg(pounds float64) float64 {
	return roundToTenth(pounds * kilogramsPerPound)
}

func KgToLbs(kilograms float64) float64 {
	return roundToTenth(kilograms / kilogramsPerPound)
}

func roundToTenth(value float64) float64 {
	return math.Round(value*10) / 10
}

// OneRepMax estimates a single-repetition max with the Epley formula.
func OneRepMax(weight float64, reps int) float64 {
	return math.Round(weight * (1 + float64(reps)/30))
}

type BestSet struct {
	Weight    float64 `json:"weight"`
	Reps      int     `json:"reps"`
	OneRepMax float64 `json:"oneRepMax"`
}

type ExerciseProgress struct {
	ExerciseID    string    `json:"exerciseId"`
	ExerciseName  string    `json:"exerciseName"`
	MuscleGroup   string    `json:"muscleGroup"`
	BestSet       BestSet   `json:"bestSet"`
	TotalVolume   float64   `json:"totalVolume"`
	AverageVolume float64   `json:"averageVolume"`
	TotalSets     int       `json:"totalSets"`
	LastPerformed time.Time `json:"lastPerformed"`
	Progression   float64   `json:"progression"`
}

type MuscleGroupVolume struct {
	MuscleGroup string  `json:"muscleGroup"`
	Volume      float64 `json:"volume"`
	Sets        int     `json:"sets"`
}

type ProgressReport struct {
	Unit        WeightUnit          `json:"unit"`
	Exercises   []ExerciseProgress  `json:"exercises"`
	MuscleGroup []MuscleGroupVolume `json:"muscleGroups"`
}

type progressPoint struct {
	date   time.Time
	weight float64
	reps   int
}

// BuildProgressReport aggregates every completed set in days. Values are
// computed in pounds and converted to unit at the end.
func BuildProgressReport(days []models.WorkoutDay, unit WeightUnit, location *time.Location) ProgressReport {
	if location == nil {
		location = time.UTC
	}

	exerciseStats := make(map[string]*ExerciseProgress)
	points := make(map[string][]progressPoint)
	groupStats := make(map[string]*MuscleGroupVolume)

	for _, day := range days {
		date := DateAtLocation(day.Date, location)
		for _, record := range day.Sets {
			if !record.IsCompleted() {
				continue
			}
			weight := *record.ActualWeight
			reps := *record.ActualReps
			volume := weight * float64(reps)
			oneRepMax := OneRepMax(weight, reps)

			name, group := record.ExerciseID, ""
			if record.Exercise != nil {
				name = record.Exercise.Name
				group = record.Exercise.MuscleGroup
			}

			stats, ok := exerciseStats[record.ExerciseID]
			if !ok {
				stats = &ExerciseProgress{
					ExerciseID:    record.ExerciseID,
					ExerciseName:  name,
					MuscleGroup:   group,
					BestSet:       BestSet{Weight: weight, Reps: reps, OneRepMax: oneRepMax},
					LastPerformed: date,
				}
				exerciseStats[record.ExerciseID] = stats
			} else if oneRepMax > stats.BestSet.OneRepMax {
				stats.BestSet = BestSet{Weight: weight, Reps: reps, OneRepMax: oneRepMax}
			}
			stats.TotalVolume += volume
			stats.TotalSets++
			if date.After(stats.LastPerformed) {
				stats.LastPerformed = date
			}
			points[record.ExerciseID] = append(points[record.ExerciseID], progressPoint{date: date, weight: weight, reps: reps})

			groupVolume, ok := groupStats[group]
			if !ok {
				groupVolume = &MuscleGroupVolume{MuscleGroup: group}
				groupStats[group] = groupVolume
			}
			groupVolume.Volume += volume
			groupVolume.Sets++
		}
	}

	report := ProgressReport{
		Unit:        unit,
		Exercises:   make([]ExerciseProgress, 0, len(exerciseStats)),
		MuscleGroup: make([]MuscleGroupVolume, 0, len(groupStats)),
	}
	for exerciseID, stats := range exerciseStats {
		stats.AverageVolume = stats.TotalVolume / float64(stats.TotalSets)
		stats.Progression = progression(points[exerciseID])

		stats.BestSet.Weight = unit.Convert(stats.BestSet.Weight)
		stats.BestSet.OneRepMax = unit.Convert(stats.BestSet.OneRepMax)
		stats.TotalVolume = roundToTenth(unit.Convert(stats.TotalVolume))
		stats.AverageVolume = roundToTenth(unit.Convert(stats.AverageVolume))
		report.Exercises = append(report.Exercises, *stats)
	}
	for _, groupVolume := range groupStats {
		groupVolume.Volume = roundToTenth(unit.Convert(groupVolume.Volume))
		report.MuscleGroup = append(report.MuscleGroup, *groupVolume)
	}

	sort.Slice(report.Exercises, func(i, j int) bool {
		if report.Exercises[i].BestSet.OneRepMax != report.Exercises[j].BestSet.OneRepMax {
			return report.Exercises[i].BestSet.OneRepMax > report.Exercises[j].BestSet.OneRepMax
		}
		return report.Exercises[i].ExerciseName < report.Exercises[j].ExerciseName
	})
	sort.Slice(report.MuscleGroup, func(i, j int) bool {
		return report.MuscleGroup[i].MuscleGroup < report.MuscleGroup[j].MuscleGroup
	})
	return report
}

// progression is the percentage change in estimated one-rep max between the
// chronologically first and last points, rounded to one decimal. It is zero
// with fewer than two points.
func progression(points []progressPoint) float64 {
	if len(points) < 2 {
		return 0
	}
	ordered := append([]progressPoint(nil), points...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].date.Before(ordered[j].date)
	})

	first := OneRepMax(ordered[0].weight, ordered[0].reps)
	last := OneRepMax(ordered[len(ordered)-1].weight, ordered[len(ordered)-1].reps)
	if first == 0 {
		return 0
	}
	return roundToTenth((last - first) / first * 100)
}
