// Package types provides the shared record definitions used across
// estatekeeper packages. It exists so that the store, checklist, and backup
// layers can exchange records without importing each other. Types here are
// plain data structures with no behavior beyond small helpers.
//
// JSON tags follow the backup manifest schema (camelCase); a data.json
// produced by any prior version of the application restores unchanged.
package types

// TaskCategory classifies a task for filtering and reporting.
type TaskCategory string

const (
	CategoryLegal     TaskCategory = "Legal"
	CategoryTax       TaskCategory = "Tax"
	CategoryProperty  TaskCategory = "Property"
	CategoryFinancial TaskCategory = "Financial"
	CategoryComms     TaskCategory = "Comms"
	CategoryOther     TaskCategory = "Other"
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "Todo"
	StatusInProgress TaskStatus = "InProgress"
	StatusBlocked    TaskStatus = "Blocked"
	StatusDone       TaskStatus = "Done"
)

// ValidStatus reports whether s is one of the four task states.
func ValidStatus(s TaskStatus) bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusBlocked, StatusDone:
		return true
	}
	return false
}

// LinkedIDs cross-references a task to related records in other collections.
type LinkedIDs struct {
	Documents []string `json:"documents,omitempty"`
	Assets    []string `json:"assets,omitempty"`
	Expenses  []string `json:"expenses,omitempty"`
}

// Task is a single estate-administration task. Tasks created from the
// checklist carry a TemplateKey linking them back to their template; the key
// is unique across the collection.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Category    TaskCategory `json:"category"`
	Tags        []string     `json:"tags"`
	Status      TaskStatus   `json:"status"`
	DueDate     string       `json:"dueDate,omitempty"` // YYYY-MM-DD
	AssignedTo  []string     `json:"assignedTo,omitempty"`
	RelatedIDs  *LinkedIDs   `json:"relatedIds,omitempty"`
	CreatedAt   string       `json:"createdAt"` // RFC 3339
	UpdatedAt   string       `json:"updatedAt"`
	TemplateKey string       `json:"templateKey,omitempty"`
}

// DocumentTag classifies an uploaded document.
type DocumentTag string

const (
	DocTagLegal    DocumentTag = "Legal"
	DocTagTax      DocumentTag = "Tax"
	DocTagProperty DocumentTag = "Property"
	DocTagReceipts DocumentTag = "Receipts"
	DocTagBank     DocumentTag = "Bank"
	DocTagID       DocumentTag = "ID"
	DocTagOther    DocumentTag = "Other"
)

// DocumentRecord is document metadata. The raw bytes live in the separate
// blob store under BlobRef so that listing documents never drags payloads
// through memory.
type DocumentRecord struct {
	ID        string        `json:"id"`
	Filename  string        `json:"filename"`
	MimeType  string        `json:"mimeType"`
	Size      int64         `json:"size"`
	Title     string        `json:"title,omitempty"`
	Notes     string        `json:"notes,omitempty"`
	Tags      []DocumentTag `json:"tags"`
	CreatedAt string        `json:"createdAt"`
	UpdatedAt string        `json:"updatedAt,omitempty"`
	BlobRef   string        `json:"blobRef"`
}

// AssetCategory classifies an estate asset.
type AssetCategory string

const (
	AssetRealEstate       AssetCategory = "RealEstate"
	AssetVehicle          AssetCategory = "Vehicle"
	AssetBank             AssetCategory = "Bank"
	AssetRetirement       AssetCategory = "Retirement"
	AssetBrokerage        AssetCategory = "Brokerage"
	AssetPersonalProperty AssetCategory = "PersonalProperty"
	AssetLifeInsurance    AssetCategory = "LifeInsurance"
	AssetOther            AssetCategory = "Other"
)

// AssetRecord is a single estate asset with its date-of-death valuation.
type AssetRecord struct {
	ID                   string        `json:"id"`
	Category             AssetCategory `json:"category"`
	Description          string        `json:"description"`
	Probate              bool          `json:"probate"`
	PAInheritanceTaxable bool          `json:"paInheritanceTaxable"`
	OwnershipNote        string        `json:"ownershipNote,omitempty"`
	DODValue             float64       `json:"dodValue,omitempty"`
	ValuationNotes       string        `json:"valuationNotes,omitempty"`
	Documents            []string      `json:"documents,omitempty"`
	Disposed             bool          `json:"disposed,omitempty"`
	DisposedNote         string        `json:"disposedNote,omitempty"`
	CreatedAt            string        `json:"createdAt"`
	UpdatedAt            string        `json:"updatedAt"`
}

// ExpenseCategory classifies an estate expense.
type ExpenseCategory string

const (
	ExpenseFuneral      ExpenseCategory = "Funeral"
	ExpenseUtilities    ExpenseCategory = "Utilities"
	ExpenseMaintenance  ExpenseCategory = "Maintenance"
	ExpenseCourtFees    ExpenseCategory = "CourtFees"
	ExpenseProfessional ExpenseCategory = "Professional"
	ExpenseTax          ExpenseCategory = "Tax"
	ExpenseOther        ExpenseCategory = "Other"
)

// ExpenseRecord is an estate expense, optionally linked to a receipt document.
type ExpenseRecord struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"` // YYYY-MM-DD
	Payee       string          `json:"payee"`
	Description string          `json:"description"`
	Category    ExpenseCategory `json:"category"`
	Amount      float64         `json:"amount"`
	PaidFrom    string          `json:"paidFrom"` // Estate | ExecutorAdvance
	Reimbursed  bool            `json:"reimbursed"`
	Notes       string          `json:"notes,omitempty"`
	ReceiptID   string          `json:"receiptId,omitempty"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
}

// BeneficiaryRecord is an heir or beneficiary of the estate.
type BeneficiaryRecord struct {
	ID                    string  `json:"id"`
	Name                  string  `json:"name"`
	Relation              string  `json:"relation"`
	Email                 string  `json:"email,omitempty"`
	Phone                 string  `json:"phone,omitempty"`
	Address               string  `json:"address,omitempty"`
	SharePct              float64 `json:"sharePct,omitempty"`
	Rule105NoticeSentDate string  `json:"rule10_5NoticeSentDate,omitempty"`
	Notes                 string  `json:"notes,omitempty"`
	CreatedAt             string  `json:"createdAt"`
	UpdatedAt             string  `json:"updatedAt"`
}

// EstateProfile describes the estate under administration. One profile per
// installation, stored under the "profile" key in the kv table and replaced
// wholesale on save.
type EstateProfile struct {
	DecedentFullName       string `json:"decedentFullName"`
	DateOfDeath            string `json:"dateOfDeath"` // YYYY-MM-DD
	County                 string `json:"county"`
	State                  string `json:"state"`
	FileNumber             string `json:"fileNumber,omitempty"`
	LettersGrantedDate     string `json:"lettersGrantedDate"`
	FirstAdvertisementDate string `json:"firstAdvertisementDate,omitempty"`
	ContactName            string `json:"contactName,omitempty"`
	ContactEmail           string `json:"contactEmail,omitempty"`
	ContactPhone           string `json:"contactPhone,omitempty"`
	ContactAddress         string `json:"contactAddress,omitempty"`
}

// AppSettings are the user preferences persisted in the kv table.
type AppSettings struct {
	Theme          string `json:"theme"` // light | dark | system
	RememberDevice bool   `json:"rememberDevice"`
}

// DefaultSettings returns the settings applied when none are stored.
func DefaultSettings() AppSettings {
	return AppSettings{Theme: "system", RememberDevice: false}
}

// Metadata is internal bookkeeping persisted in the kv table. ChecklistSeeded
// records that template tasks were generated once, so a later profile save
// never recreates a task the user deleted.
type Metadata struct {
	ChecklistSeeded bool `json:"checklistSeeded"`
}

// DefaultMetadata returns the metadata applied when none is stored.
func DefaultMetadata() Metadata {
	return Metadata{ChecklistSeeded: false}
}

// DeadlineSummary holds the statutory deadlines derived from the profile.
// Every field is a YYYY-MM-DD string; an empty string means the anchor date
// needed to compute it is missing or unparseable.
//
// InventoryDue and InheritanceTaxDue are distinct filings that currently
// share the same nine-month offset from the date of death. They are kept as
// separate fields on purpose.
type DeadlineSummary struct {
	Rule105Notice          string `json:"rule105Notice,omitempty"`
	CertificationOfNotice  string `json:"certificationOfNotice,omitempty"`
	InventoryDue           string `json:"inventoryDue,omitempty"`
	InheritanceTaxDue      string `json:"inheritanceTaxDue,omitempty"`
	InheritanceTaxDiscount string `json:"inheritanceTaxDiscount,omitempty"`
	CreditorBarDate        string `json:"creditorBarDate,omitempty"`
}

// Empty reports whether no deadline could be derived.
func (d DeadlineSummary) Empty() bool {
	return d == DeadlineSummary{}
}

// CalendarEvent is a merged calendar entry: either a due-dated task or a
// computed deadline. Derived, never persisted.
type CalendarEvent struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Date        string     `json:"date"` // YYYY-MM-DD
	Type        string     `json:"type"` // Task | Deadline
	Status      TaskStatus `json:"status,omitempty"`
	ReferenceID string     `json:"referenceId,omitempty"`
}

// BackupPayload is the versioned manifest written to data.json inside a
// backup archive. Document blobs are not embedded; they travel as separate
// archive entries named {documentId}-{filename}.
type BackupPayload struct {
	Version       int                 `json:"version"`
	GeneratedAt   string              `json:"generatedAt"`
	Profile       *EstateProfile      `json:"profile"`
	Settings      AppSettings         `json:"settings"`
	Metadata      Metadata            `json:"metadata"`
	Tasks         []Task              `json:"tasks"`
	Assets        []AssetRecord       `json:"assets"`
	Expenses      []ExpenseRecord     `json:"expenses"`
	Beneficiaries []BeneficiaryRecord `json:"beneficiaries"`
	Documents     []DocumentRecord    `json:"documents"`
}

// BackupVersion is the current manifest schema version.
const BackupVersion = 1
