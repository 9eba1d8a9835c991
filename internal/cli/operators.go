package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/me/civicflow/internal/access"
	"github.com/me/civicflow/pkg/model"
)

func newOperatorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "operators",
		Aliases: []string{"operator", "ops"},
		Short:   "Manage department operators",
	}
	cmd.AddCommand(
		newOperatorListCmd(),
		&cobra.Command{
			Use:   "show <operator-id>",
			Short: "Show an operator and their reports",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := route(access.PathOperators + "/" + args[0]); err != nil {
					return err
				}
				v, err := app.Operator(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return render(cmd, v, func(w io.Writer) error {
					writeOperator(w, v.Operator)
					fmt.Fprintln(w)
					writeReports(w, v.Reports)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "reports <operator-id>",
			Short: "List an operator's reports",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := route(access.PathOperators + "/" + args[0]); err != nil {
					return err
				}
				reports, err := app.API.OperatorReports(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return render(cmd, reports, func(w io.Writer) error {
					writeReports(w, reports)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "report <operator-id> <report-id>",
			Short: "Show one of an operator's reports with its full details",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := route(access.PathOperators + "/" + args[0]); err != nil {
					return err
				}
				report, err := app.OperatorReport(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				return render(cmd, report, func(w io.Writer) error {
					writeReport(w, report)
					return nil
				})
			},
		},
		newOperatorCreateCmd(),
	)
	return cmd
}

// ownDepartment returns dept, or the signed-in department head's own.
func ownDepartment(dept string) string {
	if dept != "" {
		return dept
	}
	if u := app.Session.CurrentUser(); u != nil {
		return u.DepartmentID
	}
	return ""
}

func newOperatorListCmd() *cobra.Command {
	var dept string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the operators of a department",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := route(access.PathOperators); err != nil {
				return err
			}
			ops, err := app.API.DepartmentOperators(cmd.Context(), ownDepartment(dept))
			if err != nil {
				return err
			}
			return render(cmd, ops, func(w io.Writer) error {
				writeOperators(w, ops)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&dept, "department", "", "Department id (defaults to your own department)")
	return cmd
}

func newOperatorCreateCmd() *cobra.Command {
	var o model.NewOperator
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an operator login",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := route(access.PathOperators); err != nil {
				return err
			}
			o.OperatorName = args[0]
			created, err := app.API.CreateOperator(cmd.Context(), o)
			if err != nil {
				return err
			}
			return render(cmd, created, func(w io.Writer) error {
				row(w, "Operator created:", o.OperatorName)
				return nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.PhoneNumber, "phone", "", "Phone number used to sign in")
	f.StringVar(&o.Password, "password", "", "Initial password")
	f.StringVar(&o.Email, "email", "", "Contact email")
	f.StringVar(&o.Specialization, "specialization", "", "Specialization")
	return cmd
}

func writeOperators(w io.Writer, ops []model.Operator) {
	if len(ops) == 0 {
		fmt.Fprintln(w, "No operators found.")
		return
	}
	row(w, "ID", "NAME", "STATUS", "WORKLOAD", "COMPLETED", "AVG RESOLUTION")
	for _, o := range ops {
		row(w, o.ID, o.Name, o.Status, o.Workload, o.CompletedReports, o.AvgResolutionTime)
	}
}

func writeOperator(w io.Writer, o *model.Operator) {
	if o == nil {
		return
	}
	row(w, "OPERATOR", o.Name)
	row(w, "ID", o.ID)
	row(w, "STATUS", o.Status)
	row(w, "DEPARTMENT", orDash(o.Department))
	row(w, "PHONE", orDash(o.Phone))
	row(w, "EMAIL", orDash(o.Email))
	row(w, "WORKLOAD", o.Workload)
	row(w, "COMPLETED", o.CompletedReports)
	row(w, "AVG RESOLUTION", o.AvgResolutionTime)
	row(w, "JOINED", ago(o.JoinDate))
}
