package main

import (
	l3_service "finplan/internal/service/l3"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var reportFlags struct {
	planInput
	clientName string
	out        string
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render a client's financial plan as a pdf",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := handler.ReportService.GeneratePlanReport(commandContext(), l3_service.ReportRequest{
			ClientName:  reportFlags.clientName,
			PlanRequest: reportFlags.request(),
		})
		if err != nil {
			return err
		}

		err = writeFile(reportFlags.out, func(w io.Writer) error {
			_, err := w.Write(out)
			return err
		})
		if err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		if reportFlags.out != "-" {
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", reportFlags.out)
		}
		return nil
	},
}

func init() {
	bindPlanFlags(reportCmd, &reportFlags.planInput)
	reportCmd.Flags().StringVar(&reportFlags.clientName, "name", "", "client name printed on the report")
	reportCmd.Flags().StringVarP(&reportFlags.out, "out", "o", "report.pdf", "output path, - for stdout")
}
