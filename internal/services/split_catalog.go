package services

import (
	"errors"
	"strings"
)

var ErrInvalidSplitKey = errors.New("invalid split key")

type SplitKey string

const (
	SplitChestTriceps  SplitKey = "CHEST_TRI"
	SplitBackBiceps    SplitKey = "BACK_BI"
	SplitLegsShoulders SplitKey = "LEGS_SHO"
)

// SplitGroup caps how many exercises of one muscle group a split pulls in.
type SplitGroup struct {
	MuscleGroup  string `json:"muscleGroup"`
	MaxExercises int    `json:"maxExercises"`
}

type Split struct {
	Key    SplitKey     `json:"key"`
	Name   string       `json:"name"`
	Groups []SplitGroup `json:"groups"`
}

var splitCatalog = []Split{
	{
		Key:  SplitChestTriceps,
		Name: "Chest + Triceps",
		Groups: []SplitGroup{
			{MuscleGroup: "Chest", MaxExercises: 3},
			{MuscleGroup: "Triceps", MaxExercises: 2},
		},
	},
	{
		Key:  SplitBackBiceps,
		Name: "Back + Biceps",
		Groups: []SplitGroup{
			{MuscleGroup: "Back", MaxExercises: 3},
			{MuscleGroup: "Biceps", MaxExercises: 2},
		},
	},
	{
		Key:  SplitLegsShoulders,
		Name: "Legs + Shoulders",
		Groups: []SplitGroup{
			{MuscleGroup: "Legs", MaxExercises: 3},
			{MuscleGroup: "Shoulders", MaxExercises: 2},
		},
	},
}

func LookupSplit(key string) (Split, error) {
	normalized := SplitKey(strings.ToUpper(strings.TrimSpace(key)))
	for _, split := range splitCatalog {
		if split.Key == normalized {
			return cloneSplit(split), nil
		}
	}
	return Split{}, ErrInvalidSplitKey
}

func ListSplits() []Split {
	splits := make([]Split, 0, len(splitCatalog))
	for _, split := range splitCatalog {
		splits = append(splits, cloneSplit(split))
	}
	return splits
}

func cloneSplit(split Split) Split {
	split.Groups = append([]SplitGroup(nil), split.Groups...)
	return split
}
