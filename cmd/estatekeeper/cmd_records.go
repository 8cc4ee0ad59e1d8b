package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"estatekeeper/internal/deadline"
	"estatekeeper/internal/export"
	"estatekeeper/internal/types"
)

// --- assets ---

var (
	assetCategory string
	assetProbate  bool
	assetTaxable  bool
	assetValue    float64
	assetNote     string
)

var assetCmd = &cobra.Command{
	Use:   "asset",
	Short: "Manage estate assets",
}

var assetAddCmd = &cobra.Command{
	Use:   "add [description]",
	Short: "Add an asset",
	Args:  cobra.MinimumNArgs(1),
	RunE:  assetAdd,
}

var assetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List assets",
	RunE:  assetList,
}

var assetRmCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "Delete an asset",
	Args:  cobra.ExactArgs(1),
	RunE:  assetRm,
}

// --- expenses ---

var (
	expenseDate       string
	expensePayee      string
	expenseCategory   string
	expenseAmount     float64
	expensePaidFrom   string
	expenseReimbursed bool
	expenseNotes      string
)

var expenseCmd = &cobra.Command{
	Use:   "expense",
	Short: "Manage estate expenses",
}

var expenseAddCmd = &cobra.Command{
	Use:   "add [description]",
	Short: "Record an expense",
	Args:  cobra.MinimumNArgs(1),
	RunE:  expenseAdd,
}

var expenseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List expenses (newest first)",
	RunE:  expenseList,
}

var expenseRmCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "Delete an expense",
	Args:  cobra.ExactArgs(1),
	RunE:  expenseRm,
}

var expenseExportCmd = &cobra.Command{
	Use:   "export-csv [file]",
	Short: "Export expenses to a CSV file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  expenseExportCSV,
}

// --- beneficiaries ---

var (
	benName     string
	benRelation string
	benEmail    string
	benPhone    string
	benAddress  string
	benShare    float64
	benNotes    string
	benSentDate string
)

var beneficiaryCmd = &cobra.Command{
	Use:     "beneficiary",
	Aliases: []string{"ben"},
	Short:   "Manage beneficiaries and rule 10.5 notices",
}

var benAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a beneficiary",
	RunE:  benAdd,
}

var benListCmd = &cobra.Command{
	Use:   "list",
	Short: "List beneficiaries",
	RunE:  benList,
}

var benRmCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "Delete a beneficiary",
	Args:  cobra.ExactArgs(1),
	RunE:  benRm,
}

var benNoticeCmd = &cobra.Command{
	Use:   "notice-sent [id]",
	Short: "Record the date the rule 10.5 notice was mailed",
	Args:  cobra.ExactArgs(1),
	RunE:  benNoticeSent,
}

func init() {
	f := assetAddCmd.Flags()
	f.StringVar(&assetCategory, "category", string(types.AssetOther), "Category (RealEstate|Vehicle|Bank|Retirement|Brokerage|PersonalProperty|LifeInsurance|Other)")
	f.BoolVar(&assetProbate, "probate", false, "Part of the probate estate")
	f.BoolVar(&assetTaxable, "taxable", false, "Subject to PA inheritance tax")
	f.Float64Var(&assetValue, "value", 0, "Date-of-death value")
	f.StringVar(&assetNote, "note", "", "Ownership note")
	assetCmd.AddCommand(assetAddCmd)
	assetCmd.AddCommand(assetListCmd)
	assetCmd.AddCommand(assetRmCmd)

	f = expenseAddCmd.Flags()
	f.StringVar(&expenseDate, "date", "", "Expense date (YYYY-MM-DD, required)")
	f.StringVar(&expensePayee, "payee", "", "Payee (required)")
	f.StringVar(&expenseCategory, "category", string(types.ExpenseOther), "Category (Funeral|Utilities|Maintenance|CourtFees|Professional|Tax|Other)")
	f.Float64Var(&expenseAmount, "amount", 0, "Amount (required)")
	f.StringVar(&expensePaidFrom, "paid-from", "Estate", "Paid from (Estate|ExecutorAdvance)")
	f.BoolVar(&expenseReimbursed, "reimbursed", false, "Already reimbursed to the executor")
	f.StringVar(&expenseNotes, "notes", "", "Notes")
	expenseCmd.AddCommand(expenseAddCmd)
	expenseCmd.AddCommand(expenseListCmd)
	expenseCmd.AddCommand(expenseRmCmd)
	expenseCmd.AddCommand(expenseExportCmd)

	f = benAddCmd.Flags()
	f.StringVar(&benName, "name", "", "Name (required)")
	f.StringVar(&benRelation, "relation", "", "Relation to the decedent")
	f.StringVar(&benEmail, "email", "", "Email")
	f.StringVar(&benPhone, "phone", "", "Phone")
	f.StringVar(&benAddress, "address", "", "Mailing address")
	f.Float64Var(&benShare, "share", 0, "Share of the estate in percent")
	f.StringVar(&benNotes, "notes", "", "Notes")
	benNoticeCmd.Flags().StringVar(&benSentDate, "date", "", "Mailing date (YYYY-MM-DD, default today)")
	beneficiaryCmd.AddCommand(benAddCmd)
	beneficiaryCmd.AddCommand(benListCmd)
	beneficiaryCmd.AddCommand(benRmCmd)
	beneficiaryCmd.AddCommand(benNoticeCmd)
}

func assetAdd(cmd *cobra.Command, args []string) error {
	_, s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	now := nowISO()
	asset := types.AssetRecord{
		ID:                   uuid.NewString(),
		Category:             types.AssetCategory(assetCategory),
		Description:          joinArgs(args),
		Probate:              assetProbate,
		PAInheritanceTaxable: assetTaxable,
		OwnershipNote:        assetNote,
		DODValue:             assetValue,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := s.AddAsset(asset); err != nil {
		return err
	}
	fmt.Printf("Added asset %s\n", asset.ID)
	return nil
}

func assetList(cmd *cobra.Command, args []string) error {
	_, s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	assets, err := s.ListAssets()
	if err != nil {
		return err
	}

	var probateTotal, taxableTotal float64
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCATEGORY\tDOD VALUE\tPROBATE\tTAXABLE\tDESCRIPTION")
	for _, a := range assets {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%t\t%t\t%s\n",
			a.ID, a.Category, a.DODValue, a.Probate, a.PAInheritanceTaxable, a.Description)
		if a.Probate {
			probateTotal += a.DODValue
		}
		if a.PAInheritanceTaxable {
			taxableTotal += a.DODValue
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nProbate total: %.2f   Taxable total: %.2f\n", probateTotal, taxableTotal)
	return nil
}

func assetRm(cmd *cobra.Command, args []string) error {
	_, s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.DeleteAsset(args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted asset %s\n", args[0])
	return nil
}

func expenseAdd(cmd *cobra.Command, args []string) error {
	if _, ok := deadline.ParseDate(expenseDate); !ok {
		return fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", expenseDate)
	}
	if expensePayee == "" {
		return fmt.Errorf("--payee is required")
	}
	if expensePaidFrom != "Estate" && expensePaidFrom != "ExecutorAdvance" {
		return fmt.Errorf("invalid --paid-from %q: expected Estate or ExecutorAdvance", expensePaidFrom)
	}

	_, s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	now := nowISO()
	e := types.ExpenseRecord{
		ID:          uuid.NewString(),
		Date:        expenseDate,
		Payee:       expensePayee,
		Description: joinArgs(args),
		Category:    types.ExpenseCategory(expenseCategory),
		Amount:      expenseAmount,
		PaidFrom:    expensePaidFrom,
		Reimbursed:  expenseReimbursed,
		Notes:       expenseNotes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.AddExpense(e); err != nil {
		return err
	}
	fmt.Printf("Added expense %s\n", e.ID)
	return nil
}

func expenseList(cmd *cobra.Command, args []string) error {
	_, s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	expenses, err := s.ListExpenses()
	if err != nil {
		return err
	}

	var total, advanced float64
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tPAYEE\tAMOUNT\tPAID FROM\tDESCRIPTION")
	for _, e := range expenses {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%s\t%s\n",
			e.ID, e.Date, e.Payee, e.Amount, e.PaidFrom, e.Description)
		total += e.Amount
		if e.PaidFrom == "ExecutorAdvance" && !e.Reimbursed {
			advanced += e.Amount
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nTotal: %.2f   Unreimbursed executor advances: %.2f\n", total, advanced)
	return nil
}

func expenseRm(cmd *cobra.Command, args []string) error {
	_, s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.DeleteExpense(args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted expense %s\n", args[0])
	return nil
}

func expenseExportCSV(cmd *cobra.Command, args []string) error {
	path := "estate-expenses.csv"
	if len(args) == 1 {
		path = args[0]
	}

	_, s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	expenses, err := s.ListExpenses()
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := export.WriteExpensesCSV(f, expenses); err != nil {
		return err
	}
	fmt.Printf("Wrote %d expenses to %s\n", len(expenses), path)
	return nil
}

func benAdd(cmd *cobra.Command, args []string) error {
	if benName == "" {
		return fmt.Errorf("--name is required")
	}

	_, s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	now := nowISO()
	b := types.BeneficiaryRecord{
		ID:        uuid.NewString(),
		Name:      benName,
		Relation:  benRelation,
		Email:     benEmail,
		Phone:     benPhone,
		Address:   benAddress,
		SharePct:  benShare,
		Notes:     benNotes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.AddBeneficiary(b); err != nil {
		return err
	}
	fmt.Printf("Added beneficiary %s\n", b.ID)
	return nil
}

func benList(cmd *cobra.Command, args []string) error {
	_, s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	bens, err := s.ListBeneficiaries()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tRELATION\tSHARE\tNOTICE SENT")
	for _, b := range bens {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f%%\t%s\n",
			b.ID, b.Name, orDash(b.Relation), b.SharePct, orDash(b.Rule105NoticeSentDate))
	}
	return w.Flush()
}

func benRm(cmd *cobra.Command, args []string) error {
	_, s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.DeleteBeneficiary(args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted beneficiary %s\n", args[0])
	return nil
}

func benNoticeSent(cmd *cobra.Command, args []string) error {
	date := benSentDate
	if date == "" {
		date = todayISO()
	} else if _, ok := deadline.ParseDate(date); !ok {
		return fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", date)
	}

	_, s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	bens, err := s.ListBeneficiaries()
	if err != nil {
		return err
	}
	for _, b := range bens {
		if b.ID != args[0] {
			continue
		}
		b.Rule105NoticeSentDate = date
		b.UpdatedAt = nowISO()
		if err := s.UpdateBeneficiary(b); err != nil {
			return err
		}
		fmt.Printf("Recorded notice mailed to %s on %s\n", b.Name, date)
		return nil
	}
	return fmt.Errorf("beneficiary %s not found", args[0])
}
