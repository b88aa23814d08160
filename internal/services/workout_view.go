package services

import (
	"math"
	"sort"
	"strings"

	"github.com/terraincognita07/splitday/internal/models"
)

const splitNameSeparator = " + "

// WorkoutSummary is a workout day with the values derived from its sets.
type WorkoutSummary struct {
	models.WorkoutDay
	Completed            bool   `json:"completed"`
	IsRestDay            bool   `json:"isRestDay"`
	SplitName            string `json:"splitName"`
	TotalSets            int    `json:"totalSets"`
	CompletedSets        int    `json:"completedSets"`
	CompletionPercentage int    `json:"completionPercentage"`
}

func SummarizeWorkout(day models.WorkoutDay) WorkoutSummary {
	if day.Sets == nil {
		day.Sets = []models.SetRecord{}
	}
	return WorkoutSummary{
		WorkoutDay:           day,
		Completed:            day.State.IsCompleted(),
		IsRestDay:            day.State.IsRestDay(),
		SplitName:            SplitName(day.Sets),
		TotalSets:            len(day.Sets),
		CompletedSets:        CountCompletedSets(day.Sets),
		CompletionPercentage: CompletionPercentage(day.Sets),
	}
}

func SummarizeWorkouts(days []models.WorkoutDay) []WorkoutSummary {
	summaries := make([]WorkoutSummary, 0, len(days))
	for _, day := range days {
		summaries = append(summaries, SummarizeWorkout(day))
	}
	return summaries
}

func CountCompletedSets(sets []models.SetRecord) int {
	completed := 0
	for _, set := range sets {
		if set.IsCompleted() {
			completed++
		}
	}
	return completed
}

// CompletionPercentage is round(100 * completed / total), 0 for a day without sets.
func CompletionPercentage(sets []models.SetRecord) int {
	if len(sets) == 0 {
		return 0
	}
	return int(math.Round(100 * float64(CountCompletedSets(sets)) / float64(len(sets))))
}

// SplitName joins the sorted, distinct muscle groups of the day's exercises.
func SplitName(sets []models.SetRecord) string {
	seen := make(map[string]struct{})
	groups := make([]string, 0)
	for _, set := range sets {
		if set.Exercise == nil {
			continue
		}
		group := strings.TrimSpace(set.Exercise.MuscleGroup)
		if group == "" {
			continue
		}
		if _, ok := seen[group]; ok {
			continue
		}
		seen[group] = struct{}{}
		groups = append(groups, group)
	}
	sort.Strings(groups)
	return strings.Join(groups, splitNameSeparator)
}

// SortSetsForDisplay orders sets by exercise name, then set index.
func SortSetsForDisplay(sets []models.SetRecord) {
	sort.SliceStable(sets, func(i, j int) bool {
		left, right := setExerciseName(sets[i]), setExerciseName(sets[j])
		if left != right {
			return left < right
		}
		return sets[i].SetIndex < sets[j].SetIndex
	})
}

func setExerciseName(set models.SetRecord) string {
	if set.Exercise != nil {
		return set.Exercise.Name
	}
	return set.ExerciseID
}
