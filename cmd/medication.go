package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cordial-cms/cordial-cms/medication"
)

func newMedicationCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "medication",
		Short: "Check and preview persona medication schedules",
	}
	c.AddCommand(newMedicationValidateCmd(), newMedicationRenderCmd(), newMedicationFormatCmd())
	return c
}

func newMedicationValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check that a medication schedule parses",
		Long:  "Reads the medication text from file, or stdin when no file is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			s, err := medication.Parse(input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "valid: %d medication(s)\n", s.Len())
			return nil
		},
	}
}

func newMedicationRenderCmd() *cobra.Command {
	var variant, only string

	c := &cobra.Command{
		Use:   "render [file]",
		Short: "Print a medication schedule the way the dashboard shows it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			v := medication.ParseVariant(variant)
			if only == "" {
				printDisplay(cmd.OutOrStdout(), medication.Present(input, v))
				return nil
			}

			s, err := medication.Parse(input)
			if err != nil {
				return err
			}
			doses, ok := s.Doses(only)
			if !ok {
				return fmt.Errorf("no medication named %q", only)
			}
			single := medication.NewSchedule()
			single.Set(only, doses)
			printDisplay(cmd.OutOrStdout(), medication.Display{Variant: v, Medications: medication.Render(single, v)})
			return nil
		},
	}
	c.Flags().StringVar(&variant, "variant", string(medication.Full), "compact or full")
	c.Flags().StringVar(&only, "medication", "", "only render this medication")
	return c
}

func newMedicationFormatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "format [file]",
		Short: "Rewrite a medication schedule in the canonical stored form",
		Long:  "Parses the schedule and prints it re-encoded, keeping medication and dose order.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			s, err := medication.Parse(input)
			if err != nil {
				return err
			}
			encoded, err := s.Encode()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), encoded)
			return nil
		},
	}
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 {
		b, err := io.ReadAll(cmd.InOrStdin())
		return string(b), err
	}
	b, err := os.ReadFile(args[0])
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("no such file: %s", args[0])
	}
	return string(b), err
}

func printDisplay(w io.Writer, d medication.Display) {
	if d.IsFallback() {
		fmt.Fprintln(w, d.Fallback)
		return
	}
	for _, m := range d.Medications {
		fmt.Fprintf(w, "%s (%s)\n", m.Name, medication.DoseLabel(m.DoseCount))
		for _, dose := range m.Doses {
			mark := " "
			if dose.IsPositive {
				mark = "x"
			}
			fmt.Fprintf(w, "  [%s] %s %s\n", mark, dose.Time, dose.Status)
		}
	}
}
