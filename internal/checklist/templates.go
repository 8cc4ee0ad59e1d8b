package checklist

import (
	"estatekeeper/internal/deadline"
	"estatekeeper/internal/types"
)

// Template is one entry of the fixed checklist catalog. Templates are static
// configuration: they are never stored, only the tasks generated from them.
// Key is stable across releases; it is how a generated task finds its way
// back to its template on re-seeding.
type Template struct {
	Key         string
	Title       string
	Description string
	Category    types.TaskCategory
	Tags        []string
	// Due derives the task's due date from the profile; empty means no due
	// date can be computed yet.
	Due func(profile *types.EstateProfile) string
}

func dueNever(*types.EstateProfile) string { return "" }

func dueFromDeadline(pick func(types.DeadlineSummary) string) func(*types.EstateProfile) string {
	return func(profile *types.EstateProfile) string {
		return pick(deadline.Calculate(profile))
	}
}

func dueWeeksFromFirstAd(weeks int) func(*types.EstateProfile) string {
	return func(profile *types.EstateProfile) string {
		if profile == nil {
			return ""
		}
		return deadline.WeeksFrom(profile.FirstAdvertisementDate, weeks)
	}
}

// Catalog is the ordered checklist template list. Order matters only for
// presentation; reconciliation matches by key.
var Catalog = []Template{
	{
		Key:      "lawReporterNotice-1",
		Title:    "Publish estate notice (county law reporter) – week 1",
		Category: types.CategoryLegal,
		Tags:     []string{"Notice"},
		Due:      dueWeeksFromFirstAd(0),
	},
	{
		Key:      "lawReporterNotice-2",
		Title:    "Publish estate notice (county law reporter) – week 2",
		Category: types.CategoryLegal,
		Tags:     []string{"Notice"},
		Due:      dueWeeksFromFirstAd(1),
	},
	{
		Key:      "lawReporterNotice-3",
		Title:    "Publish estate notice (county law reporter) – week 3",
		Category: types.CategoryLegal,
		Tags:     []string{"Notice"},
		Due:      dueWeeksFromFirstAd(2),
	},
	{
		Key:      "newspaperNotice-1",
		Title:    "Publish estate notice (newspaper of general circulation) – week 1",
		Category: types.CategoryLegal,
		Tags:     []string{"Notice"},
		Due:      dueWeeksFromFirstAd(0),
	},
	{
		Key:      "newspaperNotice-2",
		Title:    "Publish estate notice (newspaper of general circulation) – week 2",
		Category: types.CategoryLegal,
		Tags:     []string{"Notice"},
		Due:      dueWeeksFromFirstAd(1),
	},
	{
		Key:      "newspaperNotice-3",
		Title:    "Publish estate notice (newspaper of general circulation) – week 3",
		Category: types.CategoryLegal,
		Tags:     []string{"Notice"},
		Due:      dueWeeksFromFirstAd(2),
	},
	{
		Key:      "affidavits",
		Title:    "Obtain & file affidavits of publication",
		Category: types.CategoryLegal,
		Tags:     []string{"Notice"},
		Due:      dueWeeksFromFirstAd(5),
	},
	{
		Key:      "rule105",
		Title:    "Rule 10.5 heir notices – mail to heirs",
		Category: types.CategoryComms,
		Tags:     []string{"Heirs"},
		Due:      dueFromDeadline(func(d types.DeadlineSummary) string { return d.Rule105Notice }),
	},
	{
		Key:      "certificationNotice",
		Title:    "File Certification of Notice with Register of Wills",
		Category: types.CategoryLegal,
		Tags:     []string{"Heirs"},
		Due:      dueFromDeadline(func(d types.DeadlineSummary) string { return d.CertificationOfNotice }),
	},
	{
		Key:      "ein",
		Title:    "Obtain EIN for the estate",
		Category: types.CategoryFinancial,
		Tags:     []string{"Setup"},
		Due:      dueNever,
	},
	{
		Key:      "bankAccount",
		Title:    "Open estate bank account and deposit incoming checks",
		Category: types.CategoryFinancial,
		Tags:     []string{"Banking"},
		Due:      dueNever,
	},
	{
		Key:      "secureProperty",
		Title:    "Secure and preserve property (insurance, utilities, locks)",
		Category: types.CategoryProperty,
		Tags:     []string{"Property"},
		Due:      dueNever,
	},
	{
		Key:      "assetInventory",
		Title:    "Conduct asset inventory (capture date-of-death values)",
		Category: types.CategoryProperty,
		Tags:     []string{"Inventory"},
		Due:      dueFromDeadline(func(d types.DeadlineSummary) string { return d.InventoryDue }),
	},
	{
		Key:      "inventoryFiling",
		Title:    "File inventory with Register of Wills",
		Category: types.CategoryLegal,
		Tags:     []string{"Inventory"},
		Due:      dueFromDeadline(func(d types.DeadlineSummary) string { return d.InventoryDue }),
	},
	{
		Key:      "inheritanceTax",
		Title:    "Prepare and file PA inheritance tax return",
		Category: types.CategoryTax,
		Tags:     []string{"Tax"},
		Due:      dueFromDeadline(func(d types.DeadlineSummary) string { return d.InheritanceTaxDue }),
	},
	{
		Key:      "inheritanceTaxDiscount",
		Title:    "Optional 5% discount if tax paid within 3 months",
		Category: types.CategoryTax,
		Tags:     []string{"Tax"},
		Due:      dueFromDeadline(func(d types.DeadlineSummary) string { return d.InheritanceTaxDiscount }),
	},
	{
		Key:      "creditorBar",
		Title:    "Creditor bar date checkpoint",
		Category: types.CategoryLegal,
		Tags:     []string{"Creditors"},
		Due:      dueFromDeadline(func(d types.DeadlineSummary) string { return d.CreditorBarDate }),
	},
	{
		Key:      "finalAccounting",
		Title:    "Final accounting & distribution; close estate",
		Category: types.CategoryFinancial,
		Tags:     []string{"Closing"},
		Due:      dueNever,
	},
}
