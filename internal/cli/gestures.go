package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/store"
)

func newGesturesCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gestures",
		Short: "Manage the gesture templates in the model",
	}
	cmd.AddCommand(
		newTrainCommand(opts),
		newListCommand(opts),
		newDeleteCommand(opts),
	)
	return cmd
}

// samplesFile has the same shape as a prediction request, with any number of frames.
type samplesFile struct {
	Landmarks [][]float64 `json:"landmarks"`
}

func readSamples(path string) ([][]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read samples: %w", err)
	}

	var f samplesFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse samples %s: %w", path, err)
	}
	if len(f.Landmarks) == 0 {
		return nil, fmt.Errorf("samples %s: %w", path, gesture.ErrNoSamples)
	}
	return f.Landmarks, nil
}

func newTrainCommand(opts *rootOptions) *cobra.Command {
	var (
		name        string
		samplesPath string
		tolerance   float64
	)

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a gesture template from recorded frames",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			frames, err := readSamples(samplesPath)
			if err != nil {
				return err
			}

			trainer := gesture.NewTrainer()
			template, err := trainer.Train(frames)
			if err != nil {
				return fmt.Errorf("train %s: %w", name, err)
			}
			if tolerance <= 0 {
				if tolerance, err = trainer.SuggestTolerance(frames, template); err != nil {
					return fmt.Errorf("train %s: %w", name, err)
				}
			}

			st, err := opts.openStore(true)
			if err != nil {
				return err
			}
			defer st.Close()

			g, err := gesture.SaveTemplate(st, name, template, tolerance, frames)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Trained '%s' from %d samples (tolerance %.2f)\n", g.Name, g.Samples, g.Tolerance)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "gesture name reported on a match")
	cmd.Flags().StringVar(&samplesPath, "samples", "", `JSON file of frames: {"landmarks": [[126 values], ...]}`)
	cmd.Flags().Float64Var(&tolerance, "tolerance", 0, "maximum match distance (default: derived from the samples)")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("samples")
	return cmd
}

func newListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the gesture templates in the model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.openStore(false)
			if err != nil {
				return err
			}
			defer st.Close()

			gestures, err := st.Gestures().List()
			if err != nil {
				return fmt.Errorf("list gestures: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(gestures) == 0 {
				fmt.Fprintln(out, "No gestures found in model.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "NAME\tTOLERANCE\tSAMPLES\tUPDATED")
			fmt.Fprintln(w, "----\t---------\t-------\t-------")
			for _, g := range gestures {
				fmt.Fprintf(w, "%s\t%.2f\t%d\t%s\n", g.Name, g.Tolerance, g.Samples, g.UpdatedAt.Local().Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}
}

func newDeleteCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Remove a gesture template from the model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			st, err := opts.openStore(false)
			if err != nil {
				return err
			}
			defer st.Close()

			g, err := st.Gestures().GetByName(name)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return fmt.Errorf("gesture %q not found", name)
				}
				return fmt.Errorf("look up gesture %s: %w", name, err)
			}
			if err := st.Gestures().Delete(g.ID); err != nil {
				return fmt.Errorf("delete gesture %s: %w", name, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted '%s'\n", name)
			return nil
		},
	}
}
