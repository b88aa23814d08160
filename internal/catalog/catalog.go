// Package catalog holds the built-in exercise catalog and seeds it into the store.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/splitday/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed exercises.yaml
var builtinCatalog []byte

const maxDefaultSets = 10

type Entry struct {
	Name        string `yaml:"name"`
	MuscleGroup string `yaml:"muscle_group"`
	DefaultSets int    `yaml:"default_sets"`
	DefaultReps int    `yaml:"default_reps"`
}

type document struct {
	Exercises []Entry `yaml:"exercises"`
}

// Store is the part of the exercise repository seeding needs.
type Store interface {
	FindByName(name string) (models.Exercise, bool, error)
	Create(exercise *models.Exercise) error
}

func Builtin() ([]Entry, error) {
	return Parse(builtinCatalog)
}

// Parse decodes a catalog document. Missing set and rep counts fall back to
// the model defaults; duplicate names are rejected.
func Parse(raw []byte) ([]Entry, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode exercise catalog: %w", err)
	}

	seen := make(map[string]struct{}, len(doc.Exercises))
	entries := make([]Entry, 0, len(doc.Exercises))
	for index, entry := range doc.Exercises {
		entry.Name = strings.TrimSpace(entry.Name)
		entry.MuscleGroup = strings.TrimSpace(entry.MuscleGroup)
		if entry.Name == "" || entry.MuscleGroup == "" {
			return nil, fmt.Errorf("exercise catalog entry %d: name and muscle_group are required", index)
		}
		if _, ok := seen[entry.Name]; ok {
			return nil, fmt.Errorf("exercise catalog entry %d: duplicate name %q", index, entry.Name)
		}
		seen[entry.Name] = struct{}{}

		if entry.DefaultSets == 0 {
			entry.DefaultSets = models.DefaultExerciseSets
		}
		if entry.DefaultReps == 0 {
			entry.DefaultReps = models.DefaultExerciseReps
		}
		if entry.DefaultSets < 1 || entry.DefaultSets > maxDefaultSets || entry.DefaultReps < 1 {
			return nil, fmt.Errorf("exercise catalog entry %q: invalid defaults %dx%d", entry.Name, entry.DefaultSets, entry.DefaultReps)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Seed creates every entry whose name is not in the store yet and returns how
// many were created. Existing exercises are left untouched.
func Seed(store Store, entries []Entry) (int, error) {
	created := 0
	for _, entry := range entries {
		_, found, err := store.FindByName(entry.Name)
		if err != nil {
			return created, fmt.Errorf("look up exercise %q: %w", entry.Name, err)
		}
		if found {
			continue
		}

		exercise := models.Exercise{
			Name:        entry.Name,
			MuscleGroup: entry.MuscleGroup,
			DefaultSets: entry.DefaultSets,
			DefaultReps: entry.DefaultReps,
		}
		if err := store.Create(&exercise); err != nil {
			return created, fmt.Errorf("create exercise %q: %w", entry.Name, err)
		}
		created++
	}

	logrus.WithFields(logrus.Fields{
		"created": created,
		"total":   len(entries),
	}).Info("exercise catalog seeded")
	return created, nil
}
