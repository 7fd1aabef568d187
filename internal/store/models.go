package store

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebtorRecord represents one row of the 'debtors' collection. Amounts are
// kept as the locale formatted strings found in the import file.
type DebtorRecord struct {
	ID                 string `json:"id"`
	TaxID              string `json:"tax_id"`
	Name               string `json:"name"`
	TradeName          string `json:"trade_name"`
	TotalDebtAmount    string `json:"total_debt_amount"`
	SelectedDebtAmount string `json:"selected_debt_amount"`
}

// ImportMetadata represents the 'import-metadata' document. Only the latest batch is kept.
type ImportMetadata struct {
	MinValue      string    `json:"min_value,omitempty"`
	MaxValue      string    `json:"max_value,omitempty"`
	Region        string    `json:"region,omitempty"`
	DebtNature    string    `json:"debt_nature,omitempty"`
	ReferenceDate string    `json:"reference_date,omitempty"`
	Source        string    `json:"source,omitempty"`
	ImportedAt    time.Time `json:"imported_at"`
	RowCount      int       `json:"row_count"`
	SkippedRows   int       `json:"skipped_rows"`
}

type Stage string

const (
	StageProspecting Stage = "prospecting"
	StageNegotiating Stage = "negotiating"
	StageProposal    Stage = "proposal"
	StageContracted  Stage = "contracted"
	StageConcluded   Stage = "concluded"
	StageCancelled   Stage = "cancelled"
)

var Stages = []Stage{
	StageProspecting,
	StageNegotiating,
	StageProposal,
	StageContracted,
	StageConcluded,
	StageCancelled,
}

func (s Stage) Valid() bool {
	for _, v := range Stages {
		if v == s {
			return true
		}
	}
	return false
}

// RegistryStatusPending marks a client whose public registry data could not be fetched.
const RegistryStatusPending = "pending"

// ClientCompany represents one entry of the 'clients' collection.
type ClientCompany struct {
	ID                   string          `json:"id"`
	TaxID                string          `json:"tax_id"`
	LegalName            string          `json:"legal_name"`
	TradeName            string          `json:"trade_name,omitempty"`
	Region               string          `json:"region,omitempty"`
	TotalDebtAmount      decimal.Decimal `json:"total_debt_amount"`
	SelectedDebtAmount   decimal.Decimal `json:"selected_debt_amount"`
	DebtNature           string          `json:"debt_nature,omitempty"`
	RegistryStatus       string          `json:"registry_status"`
	NegotiationStage     Stage           `json:"negotiation_stage"`
	AssignedEmployeeID   string          `json:"assigned_employee_id,omitempty"`
	AssignedEmployeeName string          `json:"assigned_employee_name,omitempty"`
	ExtraInfo            Provenance      `json:"extra_info"`
	RegistryData         *RegistryData   `json:"registry_data,omitempty"`
	Contracts            []Contract      `json:"contracts,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// Provenance records who brought a client in, from which batch, and who it
// has been handed to since.
type Provenance struct {
	AddedBy     *Actor            `json:"added_by,omitempty"`
	Origin      *Origin           `json:"origin,omitempty"`
	Assignments []Assignment      `json:"assignments,omitempty"`
	Notes       map[string]string `json:"notes,omitempty"`
}

type Actor struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Title string    `json:"title,omitempty"`
	At    time.Time `json:"at"`
}

type Origin struct {
	Source        string    `json:"source,omitempty"`
	DebtorID      string    `json:"debtor_id,omitempty"`
	Region        string    `json:"region,omitempty"`
	DebtNature    string    `json:"debt_nature,omitempty"`
	ReferenceDate string    `json:"reference_date,omitempty"`
	ImportedAt    time.Time `json:"imported_at"`
}

type Assignment struct {
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	AssignedBy   string    `json:"assigned_by,omitempty"`
	AssignedAt   time.Time `json:"assigned_at"`
}

// RegistryData is the public company registry snapshot merged into a client.
type RegistryData struct {
	TaxID           string          `json:"tax_id"`
	LegalName       string          `json:"legal_name,omitempty"`
	TradeName       string          `json:"trade_name,omitempty"`
	Status          string          `json:"status,omitempty"`
	Street          string          `json:"street,omitempty"`
	Number          string          `json:"number,omitempty"`
	Complement      string          `json:"complement,omitempty"`
	District        string          `json:"district,omitempty"`
	City            string          `json:"city,omitempty"`
	State           string          `json:"state,omitempty"`
	ZipCode         string          `json:"zip_code,omitempty"`
	Phone           string          `json:"phone,omitempty"`
	Email           string          `json:"email,omitempty"`
	FoundedAt       string          `json:"founded_at,omitempty"`
	ShareCapital    decimal.Decimal `json:"share_capital"`
	PrimaryCNAE     string          `json:"primary_cnae,omitempty"`
	PrimaryActivity string          `json:"primary_activity,omitempty"`
	SecondaryCNAEs  []string        `json:"secondary_cnaes,omitempty"`
	SimplesNacional bool            `json:"simples_nacional"`
	MEI             bool            `json:"mei"`
	Partners        []Partner       `json:"partners,omitempty"`
	FetchedAt       time.Time       `json:"fetched_at"`
}

type Partner struct {
	Name          string `json:"name"`
	Qualification string `json:"qualification,omitempty"`
	EnteredAt     string `json:"entered_at,omitempty"`
}

type ContractStatus string

const (
	ContractPending   ContractStatus = "pending"
	ContractActive    ContractStatus = "active"
	ContractConcluded ContractStatus = "concluded"
	ContractCancelled ContractStatus = "cancelled"
)

// Contract is a fee agreement signed with a client. AgreedPercentage is in
// percent points, so 20 means 20%.
type Contract struct {
	ID               string          `json:"id"`
	ServiceName      string          `json:"service_name"`
	BaseDebtValue    decimal.Decimal `json:"base_debt_value"`
	AgreedPercentage decimal.Decimal `json:"agreed_percentage"`
	FeeValue         decimal.Decimal `json:"fee_value"`
	Status           ContractStatus  `json:"status"`
	ContractDate     time.Time       `json:"contract_date"`
}

// Employee represents one entry of the 'employees' collection.
type Employee struct {
	ID         string    `json:"id"`
	Name       string    `json:"name" validate:"required"`
	Email      string    `json:"email" validate:"required,email"`
	Phone      string    `json:"phone,omitempty"`
	Title      string    `json:"title,omitempty"`
	Department string    `json:"department,omitempty"`
	Role       string    `json:"role" validate:"omitempty,oneof=admin manager agent"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
}

type GoalKind string

const (
	GoalIndividual   GoalKind = "individual"
	GoalDepartmental GoalKind = "departmental"
)

// Goal represents one entry of the 'goals' collection.
type Goal struct {
	ID           string          `json:"id"`
	Title        string          `json:"title" validate:"required"`
	Description  string          `json:"description,omitempty"`
	Kind         GoalKind        `json:"kind" validate:"required,oneof=individual departmental"`
	EmployeeID   string          `json:"employee_id,omitempty" validate:"required_if=Kind individual"`
	Department   string          `json:"department,omitempty" validate:"required_if=Kind departmental"`
	TargetValue  decimal.Decimal `json:"target_value"`
	CurrentValue decimal.Decimal `json:"current_value"`
	StartDate    time.Time       `json:"start_date"`
	EndDate      time.Time       `json:"end_date"`
	CreatedBy    string          `json:"created_by,omitempty"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

const (
	TaskPending    = "pending"
	TaskInProgress = "in_progress"
	TaskDone       = "done"
)

// Task represents one entry of the 'tasks' collection.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description,omitempty"`
	AssigneeID  string    `json:"assignee_id,omitempty"`
	ClientID    string    `json:"client_id,omitempty"`
	DueDate     time.Time `json:"due_date"`
	Status      string    `json:"status" validate:"omitempty,oneof=pending in_progress done"`
	Priority    string    `json:"priority" validate:"omitempty,oneof=low medium high"`
	CreatedAt   time.Time `json:"created_at"`
}

// Meeting represents one entry of the 'meetings' collection.
type Meeting struct {
	ID             string    `json:"id"`
	Title          string    `json:"title" validate:"required"`
	ClientID       string    `json:"client_id,omitempty"`
	ParticipantIDs []string  `json:"participant_ids,omitempty"`
	StartsAt       time.Time `json:"starts_at" validate:"required"`
	EndsAt         time.Time `json:"ends_at" validate:"omitempty,gtfield=StartsAt"`
	Location       string    `json:"location,omitempty"`
	Notes          string    `json:"notes,omitempty"`
}
