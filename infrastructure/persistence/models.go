package persistence

import (
	"time"

	"gorm.io/datatypes"
)

// ServiceModel is a directory entry. English and Arabic text are stored in
// parallel columns.
type ServiceModel struct {
	ID            string                      `gorm:"column:id;primaryKey;size:255"`
	Name          string                      `gorm:"column:name;size:255"`
	NameAr        string                      `gorm:"column:name_ar;size:255"`
	Description   string                      `gorm:"column:description;type:text"`
	DescriptionAr string                      `gorm:"column:description_ar;type:text"`
	Department    string                      `gorm:"column:department;index;size:255"`
	Platform      string                      `gorm:"column:platform;index;size:255"`
	ChannelType   string                      `gorm:"column:channel_type;index;size:32"`
	URL           string                      `gorm:"column:url;size:1024"`
	Tags          datatypes.JSONSlice[string] `gorm:"column:tags"`
	Featured      bool                        `gorm:"column:featured;default:false"`
	GoldenVendor  bool                        `gorm:"column:golden_vendor;default:false"`
	SortOrder     int                         `gorm:"column:sort_order;default:0"`
	CreatedAt     time.Time                   `gorm:"column:created_at"`
	UpdatedAt     time.Time                   `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (ServiceModel) TableName() string {
	return "services"
}

// ApplicationModel is the parent row shared by every service type.
type ApplicationModel struct {
	ID               string     `gorm:"column:id;primaryKey;size:36"`
	ServiceType      string     `gorm:"column:service_type;index;size:32"`
	ServiceID        string     `gorm:"column:service_id;index;size:255"`
	ApplicantName    string     `gorm:"column:applicant_name;size:255"`
	ApplicantEmail   string     `gorm:"column:applicant_email;index;size:255"`
	ApplicantPhone   string     `gorm:"column:applicant_phone;size:64"`
	Organization     string     `gorm:"column:organization;index;size:255"`
	Sector           string     `gorm:"column:sector;size:255"`
	Description      string     `gorm:"column:description;type:text"`
	Status           string     `gorm:"column:status;index;size:32"`
	AIPrecheck       string     `gorm:"column:ai_precheck;type:text"`
	AssignedReviewer string     `gorm:"column:assigned_reviewer;index;size:255"`
	SubmittedAt      time.Time  `gorm:"column:submitted_at"`
	ReviewStartedAt  *time.Time `gorm:"column:review_started_at"`
	DecidedAt        *time.Time `gorm:"column:decided_at"`
	ClosedAt         *time.Time `gorm:"column:closed_at"`
	CreatedAt        time.Time  `gorm:"column:created_at;index"`
	UpdatedAt        time.Time  `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (ApplicationModel) TableName() string {
	return "applications"
}

// ESGDetailsModel is the ESG extension row, keyed by its parent.
type ESGDetailsModel struct {
	ApplicationID           string                      `gorm:"column:application_id;primaryKey;size:36"`
	Application             *ApplicationModel           `gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE"`
	SubSector               string                      `gorm:"column:sub_sector;size:255"`
	TradeLicense            string                      `gorm:"column:trade_license;size:255"`
	EmployeeCount           int                         `gorm:"column:employee_count;default:0"`
	HasSustainabilityPolicy bool                        `gorm:"column:has_sustainability_policy;default:false"`
	Frameworks              datatypes.JSONSlice[string] `gorm:"column:frameworks"`
	Initiatives             string                      `gorm:"column:initiatives;type:text"`
}

// TableName returns the table name.
func (ESGDetailsModel) TableName() string {
	return "esg_applications"
}

// KnowledgeSharingDetailsModel is the Knowledge-Sharing extension row.
type KnowledgeSharingDetailsModel struct {
	ApplicationID     string                      `gorm:"column:application_id;primaryKey;size:36"`
	Application       *ApplicationModel           `gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE"`
	ProgramType       string                      `gorm:"column:program_type;size:255"`
	Topic             string                      `gorm:"column:topic;size:512"`
	SessionDate       *time.Time                  `gorm:"column:session_date"`
	Format            string                      `gorm:"column:format;size:32"`
	ExpectedAttendees int                         `gorm:"column:expected_attendees;default:0"`
	Topics            datatypes.JSONSlice[string] `gorm:"column:topics"`
}

// TableName returns the table name.
func (KnowledgeSharingDetailsModel) TableName() string {
	return "knowledge_sharing_applications"
}

// ReviewNoteModel is one entry of the append-only review log.
type ReviewNoteModel struct {
	ID            int64             `gorm:"column:id;primaryKey;autoIncrement"`
	ApplicationID string            `gorm:"column:application_id;index;size:36"`
	Application   *ApplicationModel `gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE"`
	AuthorType    string            `gorm:"column:author_type;size:32"`
	AuthorName    string            `gorm:"column:author_name;size:255"`
	Content       string            `gorm:"column:content;type:text"`
	FromStatus    string            `gorm:"column:from_status;size:32"`
	ToStatus      string            `gorm:"column:to_status;size:32"`
	Internal      bool              `gorm:"column:internal;default:false"`
	CreatedAt     time.Time         `gorm:"column:created_at;index"`
}

// TableName returns the table name.
func (ReviewNoteModel) TableName() string {
	return "review_notes"
}

// CertificateModel is an issued certificate. One per application.
type CertificateModel struct {
	ID            int64             `gorm:"column:id;primaryKey;autoIncrement"`
	ApplicationID string            `gorm:"column:application_id;uniqueIndex;size:36"`
	Application   *ApplicationModel `gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE"`
	Number        string            `gorm:"column:number;uniqueIndex;size:64"`
	ServiceType   string            `gorm:"column:service_type;size:32"`
	Holder        string            `gorm:"column:holder;size:255"`
	IssuedAt      time.Time         `gorm:"column:issued_at"`
	ValidUntil    time.Time         `gorm:"column:valid_until"`
}

// TableName returns the table name.
func (CertificateModel) TableName() string {
	return "certificates"
}
