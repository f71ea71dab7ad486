package gateway

import "context"

// Collection names on the gateway.
const (
	Campaigns         = "campaigns"
	Donations         = "donations"
	Donors            = "donors"
	Receipts          = "receipts"
	MaterialDonations = "material-donations"
	Shelters          = "shelters"
	Staff             = "staff-credentials"
	Families          = "families"
	Children          = "children"
	Cases             = "cases"
	Assessments       = "assessments"
	CaseNotes         = "case-notes"
	Events            = "events"
	Reports           = "reports"
)

// Campaign statuses.
const (
	CampaignActive    = "ACTIVE"
	CampaignSuccess   = "SUCCESS"
	CampaignCompleted = "COMPLETED"
	CampaignPaused    = "PAUSED"
	CampaignCancelled = "CANCELLED"
)

// Donation statuses.
const (
	DonationPending   = "PENDING"
	DonationCompleted = "COMPLETED"
	DonationFailed    = "FAILED"
	DonationRefunded  = "REFUNDED"
	DonationVerified  = "VERIFIED"
)

// Material donation statuses.
const (
	MaterialPending   = "PENDING"
	MaterialCollected = "COLLECTED"
	MaterialRejected  = "REJECTED"
)

// Shelter compliance statuses.
const (
	CompliancePending      = "PENDING_REVIEW"
	ComplianceCompliant    = "COMPLIANT"
	ComplianceNonCompliant = "NON_COMPLIANT"
)

type Campaign struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Status       string `json:"status"`
	TargetCents  int64  `json:"target_amount_cents"`
	RaisedCents  int64  `json:"raised_amount_cents"`
	DonorCount   int    `json:"donor_count"`
	PhotoURL     string `json:"photo_url"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	CreatedAt    string `json:"created_at"`
}

type Donation struct {
	ID            string `json:"id"`
	CampaignID    string `json:"campaign_id"`
	DonorID       string `json:"donor_id"`
	DonorEmail    string `json:"donor_email"`
	AmountCents   int64  `json:"amount_cents"`
	Status        string `json:"status"`
	PaymentMethod string `json:"payment_method"`
	GatewayTxRef  string `json:"gateway_tx_ref"`
	CreatedAt     string `json:"created_at"`
}

type Donor struct {
	ID            string `json:"id"`
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	TotalCents    int64  `json:"total_donated_cents"`
	DonationCount int    `json:"donation_count"`
}

type Receipt struct {
	ID         string `json:"id"`
	DonationID string `json:"donation_id"`
	Number     string `json:"number"`
	IssuedAt   string `json:"issued_at"`
}

type MaterialDonation struct {
	ID            string `json:"id"`
	Category      string `json:"category"`
	Description   string `json:"description"`
	Status        string `json:"status"`
	DonorName     string `json:"donor_name"`
	PickupAddress string `json:"pickup_address"`
	PickupDate    string `json:"pickup_date"`
	Notes         string `json:"notes"`
}

type Shelter struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Capacity         int      `json:"capacity"`
	Occupied         int      `json:"occupied"`
	ComplianceStatus string   `json:"compliance_status"`
	Contact          string   `json:"contact"`
	Photos           []string `json:"photos"`
}

type StaffCredential struct {
	ID         string `json:"id"`
	StaffName  string `json:"staff_name"`
	IDNumber   string `json:"id_number"`
	Position   string `json:"position"`
	IsVerified bool   `json:"is_verified"`
}

type Family struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Contact  string  `json:"contact"`
	Children []Child `json:"children"`
}

type Child struct {
	ID        string `json:"id"`
	FamilyID  string `json:"family_id"`
	FullName  string `json:"full_name"`
	BirthDate string `json:"birth_date"`
}

type Case struct {
	ID         string     `json:"id"`
	ChildID    string     `json:"child_id"`
	ChildName  string     `json:"child_name"`
	Status     string     `json:"status"`
	OpenedAt   string     `json:"opened_at"`
	AssignedTo string     `json:"assigned_to"`
	Notes      []CaseNote `json:"notes"`
}

type Assessment struct {
	ID      string `json:"id"`
	CaseID  string `json:"case_id"`
	Score   int    `json:"score"`
	Summary string `json:"summary"`
}

type CaseNote struct {
	ID        string `json:"id"`
	CaseID    string `json:"case_id"`
	Author    string `json:"author"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

type Event struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	StartsAt        string `json:"starts_at"`
	Location        string `json:"location"`
	FlyerURL        string `json:"flyer_url"`
	RegisteredCount int    `json:"registered_count"`
}

type Report struct {
	ID          string      `json:"id"`
	Period      string      `json:"period"`
	GeneratedAt string      `json:"generated_at"`
	Rows        []ReportRow `json:"rows"`
}

type ReportRow struct {
	Label string `json:"label"`
	Count int    `json:"count"`
	Cents int64  `json:"cents"`
}

// Collection binds a record type to its gateway path so callers can hold a
// typed handle instead of repeating path strings.
type Collection[T any] struct {
	client *Client
	path   string
}

func NewCollection[T any](c *Client, path string) Collection[T] {
	return Collection[T]{client: c, path: path}
}

func (col Collection[T]) List(ctx context.Context) ([]T, error) {
	return List[T](ctx, col.client, col.path)
}

func (col Collection[T]) Create(ctx context.Context, in any) (T, error) {
	return Create[T](ctx, col.client, col.path, in)
}

func (col Collection[T]) Update(ctx context.Context, id string, in any) (T, error) {
	return Update[T](ctx, col.client, col.path, id, in)
}

func (col Collection[T]) Delete(ctx context.Context, id string) error {
	return Delete(ctx, col.client, col.path, id)
}

func (col Collection[T]) Action(ctx context.Context, id, verb string, in any) (T, error) {
	return Action[T](ctx, col.client, col.path, id, verb, in)
}
