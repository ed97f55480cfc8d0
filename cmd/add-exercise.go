package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/misterclayt0n/ironlog/internal/models"
)

var (
	newExType      string
	newExEquipment string
	newExPrimary   string
	newExSecondary string
	newExPatterns  string
	newExNotes     string
	newExMedia     string
)

var addExerciseCmd = &cobra.Command{
	Use:   "add-exercise [name]",
	Short: "Add a new exercise to the library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		name := args[0]
		existing, err := st.GetExerciseByName(name)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("Exercise %q already exists", name)
		}

		primary, err := parseMuscleSpec(newExPrimary)
		if err != nil {
			return err
		}
		secondary, err := parseMuscleSpec(newExSecondary)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		ex := models.Exercise{
			ID:               uuid.New().String(),
			Name:             name,
			Type:             models.ExerciseType(newExType),
			Equipment:        newExEquipment,
			PrimaryMuscles:   primary,
			SecondaryMuscles: secondary,
			Patterns:         splitList(newExPatterns),
			Notes:            newExNotes,
			MediaRef:         newExMedia,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := ex.Validate(); err != nil {
			return err
		}

		if err := st.CreateExercise(ex); err != nil {
			return fmt.Errorf("Failed to create exercise: %w", err)
		}

		fmt.Printf("✅ Added exercise '%s' (%s)\n", ex.Name, ex.Type)
		return nil
	},
}

// parseMuscleSpec reads "chest:1.0,front-delts:0.5" into muscle targets.
// A bare muscle name gets weight 1.
func parseMuscleSpec(spec string) ([]models.MuscleTarget, error) {
	if spec == "" {
		return nil, nil
	}

	var targets []models.MuscleTarget
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		muscle, weightStr, found := strings.Cut(part, ":")
		weight := 1.0
		if found {
			w, err := strconv.ParseFloat(weightStr, 64)
			if err != nil {
				return nil, fmt.Errorf("Invalid muscle weight in %q", part)
			}
			weight = w
		}
		targets = append(targets, models.MuscleTarget{Muscle: muscle, Weight: weight})
	}
	return targets, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func init() {
	addExerciseCmd.Flags().StringVarP(&newExType, "type", "t", "reps", "Exercise type: reps, time or cardio")
	addExerciseCmd.Flags().StringVarP(&newExEquipment, "equipment", "e", "", "Equipment, e.g. barbell")
	addExerciseCmd.Flags().StringVarP(&newExPrimary, "primary", "p", "", "Primary muscles as muscle:weight, comma separated")
	addExerciseCmd.Flags().StringVarP(&newExSecondary, "secondary", "s", "", "Secondary muscles as muscle:weight, comma separated")
	addExerciseCmd.Flags().StringVar(&newExPatterns, "patterns", "", "Movement patterns, comma separated")
	addExerciseCmd.Flags().StringVarP(&newExNotes, "notes", "n", "", "Free-form notes")
	addExerciseCmd.Flags().StringVar(&newExMedia, "media", "", "Reference to a form video or image")
	rootCmd.AddCommand(addExerciseCmd)
}
