package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"bookstore-ledger/store"
)

func newReportCmd(a *app) *cobra.Command {
	report := &cobra.Command{
		Use:   "report",
		Short: "Print a report over the stored ledger",
	}

	emit := func(cmd *cobra.Command, s string) {
		if s != "" {
			fmt.Fprintln(cmd.OutOrStdout(), s)
		}
	}

	report.AddCommand(
		&cobra.Command{
			Use:   "sales FROM TO",
			Short: "Sales dated within FROM..TO inclusive (YYYY-MM-DD)",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				emit(cmd, a.mgr.Reports.SalesReport(args[0], args[1]))
				return nil
			},
		},
		&cobra.Command{
			Use:   "date DATE",
			Short: "Sales made on one date",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				emit(cmd, a.mgr.Reports.SalesByDateReport(args[0]))
				return nil
			},
		},
		&cobra.Command{
			Use:   "employee NAME",
			Short: "All sales credited to one employee",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				emit(cmd, a.mgr.Reports.EmployeeSalesReport(args[0]))
				return nil
			},
		},
		&cobra.Command{
			Use:   "top [N]",
			Short: "Best-selling titles (default 5)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				n := 5
				if len(args) == 1 {
					var err error
					if n, err = strconv.Atoi(args[0]); err != nil || n < 0 {
						return fmt.Errorf("invalid count %q", args[0])
					}
				}
				emit(cmd, a.mgr.Reports.TopBooksReport(n))
				return nil
			},
		},
		&cobra.Command{
			Use:   "employees",
			Short: "Every employee on file",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				emit(cmd, a.mgr.Reports.EmployeesReport())
				return nil
			},
		},
		&cobra.Command{
			Use:   "books",
			Short: "Every book in the catalog",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				emit(cmd, a.mgr.Reports.BooksReport())
				return nil
			},
		},
	)
	return report
}

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show where the ledger is stored and what it holds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Store:     %s (%s)\n", a.cfg.StorePath, a.cfg.StoreKind)
			fmt.Fprintf(out, "Employees: %d\nBooks:     %d\nSales:     %d\n",
				a.mgr.Employees.Len(), a.mgr.Catalog.Len(), a.mgr.Sales.Len())

			switch s := a.store.(type) {
			case *store.SQLite:
				info, err := s.Info(cmd.Context())
				if err != nil {
					return err
				}
				if info.SnapshotID == "" {
					fmt.Fprintln(out, "Snapshot:  never saved")
					return nil
				}
				fmt.Fprintf(out, "Snapshot:  %s saved %s\n", info.SnapshotID, info.SavedAt.Local().Format("2006-01-02 15:04:05"))
				fmt.Fprintf(out, "Stored:    %d employees, %d books, %d sales\n", info.Employees, info.Books, info.Sales)
			case *store.JSONFile:
				st, err := os.Stat(s.Path())
				if err != nil {
					fmt.Fprintln(out, "Snapshot:  never saved")
					return nil
				}
				fmt.Fprintf(out, "Snapshot:  %d bytes saved %s\n", st.Size(), st.ModTime().Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
}
