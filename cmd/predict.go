package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/orsched/core/prediction"
)

var (
	predictSurgeon    string
	predictProcedure  string
	predictPatient    string
	predictComplexity float64
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Estimate a procedure duration for a surgeon",
	RunE:  runPredict,
}

func init() {
	predictCmd.Flags().StringVar(&predictSurgeon, "surgeon", "", "surgeon id")
	predictCmd.Flags().StringVar(&predictProcedure, "procedure", "", "procedure name")
	predictCmd.Flags().StringVar(&predictPatient, "patient", "", "patient id supplying surgeon and procedure")
	predictCmd.Flags().Float64Var(&predictComplexity, "complexity", prediction.DefaultComplexity, "patient complexity factor")
	rootCmd.AddCommand(predictCmd)
}

func runPredict(cmd *cobra.Command, args []string) error {
	if err := prediction.ValidateComplexity(predictComplexity); err != nil {
		return err
	}
	_, snap, an, err := loadSchedule()
	if err != nil {
		return err
	}
	surgeonID, procedure := predictSurgeon, predictProcedure
	if predictPatient != "" {
		found := false
		for _, p := range snap.Patients {
			if p.ID == predictPatient {
				if surgeonID == "" {
					surgeonID = p.SurgeonID
				}
				if procedure == "" {
					procedure = p.Procedure
				}
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("unknown patient %q", predictPatient)
		}
	}
	if surgeonID == "" || procedure == "" {
		return fmt.Errorf("--surgeon and --procedure (or --patient) are required")
	}
	for _, s := range snap.Surgeons {
		if s.ID == surgeonID {
			minutes := an.PredictDuration(procedure, s, predictComplexity)
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s by %s: %d minutes\n", procedure, s.Name, minutes)
			return err
		}
	}
	return fmt.Errorf("unknown surgeon %q", surgeonID)
}
