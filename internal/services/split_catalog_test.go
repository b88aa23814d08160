package services

import (
	"errors"
	"testing"
)

func TestLookupSplitNormalizesKey(t *testing.T) {
	split, err := LookupSplit(" chest_tri ")
	if err != nil {
		t.Fatalf("LookupSplit() unexpected error: %v", err)
	}
	if split.Key != SplitChestTriceps || len(split.Groups) != 2 {
		t.Fatalf("unexpected split %+v", split)
	}
	if split.Groups[0] != (SplitGroup{MuscleGroup: "Chest", MaxExercises: 3}) {
		t.Fatalf("expected chest group capped at 3, got %+v", split.Groups[0])
	}
	if split.Groups[1] != (SplitGroup{MuscleGroup: "Triceps", MaxExercises: 2}) {
		t.Fatalf("expected triceps group capped at 2, got %+v", split.Groups[1])
	}

	if _, err := LookupSplit("FULL_BODY"); !errors.Is(err, ErrInvalidSplitKey) {
		t.Fatalf("expected ErrInvalidSplitKey, got %v", err)
	}
}

func TestListSplitsReturnsCopies(t *testing.T) {
	splits := ListSplits()
	if len(splits) != 3 {
		t.Fatalf("expected 3 splits, got %d", len(splits))
	}
	splits[0].Groups[0].MaxExercises = 99

	fresh, err := LookupSplit(string(splits[0].Key))
	if err != nil {
		t.Fatalf("LookupSplit() unexpected error: %v", err)
	}
	if fresh.Groups[0].MaxExercises == 99 {
		t.Fatalf("expected catalog to be unaffected by caller mutation")
	}
}
