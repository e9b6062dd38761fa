package dto

import "time"

// ESGDetailsSchema is the ESG extension of an application.
type ESGDetailsSchema struct {
	SubSector               string   `json:"subSector"`
	TradeLicense            string   `json:"tradeLicense" validate:"required,max=100"`
	EmployeeCount           int      `json:"employeeCount" validate:"gte=0"`
	HasSustainabilityPolicy bool     `json:"hasSustainabilityPolicy"`
	Frameworks              []string `json:"frameworks" validate:"max=20,dive,max=50"`
	Initiatives             string   `json:"initiatives" validate:"max=5000"`
}

// KnowledgeSharingDetailsSchema is the Knowledge-Sharing extension of an application.
type KnowledgeSharingDetailsSchema struct {
	ProgramType       string     `json:"programType" validate:"required,max=100"`
	Topic             string     `json:"topic" validate:"required,max=300"`
	SessionDate       *time.Time `json:"sessionDate"`
	Format            string     `json:"format"`
	ExpectedAttendees int        `json:"expectedAttendees" validate:"gte=0"`
	Topics            []string   `json:"topics" validate:"max=20,dive,max=100"`
}

// ApplicationRequest is the body of POST /api/applications and
// PUT /api/applications/{id}.
type ApplicationRequest struct {
	ServiceType      string                         `json:"serviceType" validate:"required"`
	ServiceID        string                         `json:"serviceId" validate:"max=100"`
	ApplicantName    string                         `json:"applicantName" validate:"required,max=200"`
	ApplicantEmail   string                         `json:"applicantEmail" validate:"required,email"`
	ApplicantPhone   string                         `json:"applicantPhone" validate:"max=50"`
	Organization     string                         `json:"organization" validate:"required,max=300"`
	Sector           string                         `json:"sector" validate:"max=100"`
	Description      string                         `json:"description" validate:"max=5000"`
	AIPrecheck       string                         `json:"aiPrecheck" validate:"max=10000"`
	ESG              *ESGDetailsSchema              `json:"esg" validate:"omitempty"`
	KnowledgeSharing *KnowledgeSharingDetailsSchema `json:"knowledgeSharing" validate:"omitempty"`
}

// ChamberBoostRequest is the body of POST /api/services/chamber-boost.
type ChamberBoostRequest struct {
	ApplicantName  string `json:"applicantName" validate:"required,max=200"`
	ApplicantEmail string `json:"applicantEmail" validate:"required,email"`
	ApplicantPhone string `json:"applicantPhone" validate:"max=50"`
	Organization   string `json:"organization" validate:"required,max=300"`
	Sector         string `json:"sector" validate:"max=100"`
	Description    string `json:"description" validate:"max=5000"`
}

// NoteRequest is the body of POST /api/applications/{id}/notes.
type NoteRequest struct {
	AuthorType string `json:"authorType" validate:"required"`
	AuthorName string `json:"authorName" validate:"required,max=200"`
	Content    string `json:"content" validate:"required,max=5000"`
	Internal   bool   `json:"internal"`
}

// StatusRequest is the body of PUT /api/applications/{id}/status.
type StatusRequest struct {
	Status string `json:"status" validate:"required"`
	Reason string `json:"reason" validate:"max=5000"`
	Actor  string `json:"actor" validate:"max=200"`
}

// ReviewPatchRequest is the body of PATCH /api/staff/applications/{id}.
type ReviewPatchRequest struct {
	Status   *string `json:"status"`
	Reason   string  `json:"reason" validate:"max=5000"`
	Reviewer *string `json:"assignedReviewer" validate:"omitempty,max=200"`
	Comment  string  `json:"comment" validate:"max=5000"`
	Internal bool    `json:"internal"`
	Actor    string  `json:"actor" validate:"max=200"`
}

// ApplicationSchema is an application without its notes.
type ApplicationSchema struct {
	ID               string                         `json:"id"`
	ServiceType      string                         `json:"serviceType"`
	ServiceID        string                         `json:"serviceId,omitempty"`
	ApplicantName    string                         `json:"applicantName"`
	ApplicantEmail   string                         `json:"applicantEmail"`
	ApplicantPhone   string                         `json:"applicantPhone,omitempty"`
	Organization     string                         `json:"organization"`
	Sector           string                         `json:"sector"`
	Description      string                         `json:"description"`
	Status           string                         `json:"status"`
	AIPrecheck       string                         `json:"aiPrecheck,omitempty"`
	AssignedReviewer string                         `json:"assignedReviewer,omitempty"`
	ESG              *ESGDetailsSchema              `json:"esg,omitempty"`
	KnowledgeSharing *KnowledgeSharingDetailsSchema `json:"knowledgeSharing,omitempty"`
	CreatedAt        time.Time                      `json:"createdAt"`
	UpdatedAt        time.Time                      `json:"updatedAt"`
	SubmittedAt      time.Time                      `json:"submittedAt"`
	ReviewStartedAt  *time.Time                     `json:"reviewStartedAt"`
	DecidedAt        *time.Time                     `json:"decidedAt"`
	ClosedAt         *time.Time                     `json:"closedAt"`
}

// NoteSchema is one review note.
type NoteSchema struct {
	ID         int64     `json:"id"`
	AuthorType string    `json:"authorType"`
	AuthorName string    `json:"authorName"`
	Content    string    `json:"content"`
	FromStatus string    `json:"fromStatus,omitempty"`
	ToStatus   string    `json:"toStatus,omitempty"`
	Internal   bool      `json:"internal"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CertificateSchema is an issued certificate.
type CertificateSchema struct {
	Number        string    `json:"number"`
	ApplicationID string    `json:"applicationId"`
	ServiceType   string    `json:"serviceType"`
	Holder        string    `json:"holder"`
	IssuedAt      time.Time `json:"issuedAt"`
	ValidUntil    time.Time `json:"validUntil"`
	Valid         bool      `json:"valid"`
}

// StageSchema is one step of the progress timeline.
type StageSchema struct {
	Key            string     `json:"key"`
	Label          Localized  `json:"label"`
	State          string     `json:"state"`
	At             *time.Time `json:"at"`
	ActionRequired bool       `json:"actionRequired"`
}

// ApplicationDetailResponse is an application with its notes, certificate
// and timeline. Certificate is null unless the application is approved.
type ApplicationDetailResponse struct {
	LocaleInfo

	Success     bool               `json:"success"`
	Application ApplicationSchema  `json:"application"`
	ReviewNotes []NoteSchema       `json:"reviewNotes"`
	Certificate *CertificateSchema `json:"certificate"`
	Timeline    []StageSchema      `json:"timeline"`
}

// NoteResponse is the body returned after adding a note.
type NoteResponse struct {
	Success bool       `json:"success"`
	Note    NoteSchema `json:"note"`
}

// CertificateResponse is the body of GET /api/certificates/{number}.
type CertificateResponse struct {
	Success     bool              `json:"success"`
	Certificate CertificateSchema `json:"certificate"`
}

// ApplicationFilters echoes the console filters applied to a listing.
type ApplicationFilters struct {
	Status      string `json:"status,omitempty"`
	ServiceType string `json:"serviceType,omitempty"`
	Reviewer    string `json:"assignedReviewer,omitempty"`
	Query       string `json:"q,omitempty"`
	Sort        string `json:"sort"`
}

// ApplicationListResponse is the body of GET /api/staff/applications.
type ApplicationListResponse struct {
	Success    bool                `json:"success"`
	Filters    ApplicationFilters  `json:"filters"`
	Pagination Pagination          `json:"pagination"`
	Items      []ApplicationSchema `json:"items"`
}

// StatusCountsResponse is the body of GET /api/staff/applications/stats.
type StatusCountsResponse struct {
	Success bool             `json:"success"`
	Total   int64            `json:"total"`
	Counts  map[string]int64 `json:"counts"`
}
