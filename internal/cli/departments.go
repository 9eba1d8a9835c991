package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/me/civicflow/internal/access"
	"github.com/me/civicflow/pkg/model"
)

func newDepartmentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "departments",
		Aliases: []string{"department", "dept"},
		Short:   "Manage municipal departments",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List departments",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := route(access.PathDepartments); err != nil {
					return err
				}
				deps, err := app.API.Departments(cmd.Context())
				if err != nil {
					return err
				}
				return render(cmd, deps, func(w io.Writer) error {
					if len(deps) == 0 {
						fmt.Fprintln(w, "No departments found.")
						return nil
					}
					row(w, "ID", "NAME", "MANAGER", "OPEN", "ACTIVE", "RESOLVED (30D)", "AVG RESOLUTION")
					for _, d := range deps {
						row(w, d.ID, d.Name, orDash(d.Manager), d.OpenReports, d.ActiveReports, d.ResolvedLast30Days, d.AvgResolutionTime)
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "show <department-id>",
			Short: "Show a department with its operators and reports",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := route(access.PathDepartments + "/" + args[0]); err != nil {
					return err
				}
				v, err := app.Department(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return render(cmd, v, func(w io.Writer) error {
					writeDepartment(w, v.Department)
					fmt.Fprintln(w)
					writeOperators(w, v.Operators)
					fmt.Fprintln(w)
					writeReports(w, v.Reports)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "reports <department-id>",
			Short: "List a department's reports",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := route(access.PathDepartments + "/" + args[0]); err != nil {
					return err
				}
				reports, err := app.API.DepartmentReports(cmd.Context(), args[0])
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
			Use:   "report <department-id> <report-id>",
			Short: "Show one of a department's reports with its full details",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := route(access.PathDepartments + "/" + args[0]); err != nil {
					return err
				}
				report, err := app.DepartmentReport(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				return render(cmd, report, func(w io.Writer) error {
					writeReport(w, report)
					return nil
				})
			},
		},
		newDepartmentCreateCmd(),
	)
	return cmd
}

func newDepartmentCreateCmd() *cobra.Command {
	var d model.NewDepartment
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a department and its head's login",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := route(access.PathDepartments); err != nil {
				return err
			}
			d.Name = args[0]
			created, err := app.API.CreateDepartment(cmd.Context(), d)
			if err != nil {
				return err
			}
			return render(cmd, created, func(w io.Writer) error {
				row(w, "Department created:", d.Name)
				return nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&d.Description, "description", "", "Description")
	f.StringVar(&d.Address, "address", "", "Office address")
	f.StringVar(&d.DepartmentHead, "head", "", "Department head name")
	f.StringVar(&d.Email, "email", "", "Contact email")
	f.StringVar(&d.Phone, "phone", "", "Contact phone (department head login)")
	f.StringVar(&d.Password, "password", "", "Initial password for the department head")
	return cmd
}

func writeDepartment(w io.Writer, d *model.Department) {
	if d == nil {
		return
	}
	row(w, "DEPARTMENT", d.Name)
	row(w, "ID", d.ID)
	row(w, "MANAGER", orDash(d.Manager))
	row(w, "EMAIL", orDash(d.Email))
	row(w, "PHONE", orDash(d.Phone))
	row(w, "OPEN REPORTS", d.OpenReports)
	row(w, "ACTIVE REPORTS", d.ActiveReports)
	row(w, "RESOLVED (30D)", d.ResolvedLast30Days)
	row(w, "AVG RESOLUTION", d.AvgResolutionTime)
}
