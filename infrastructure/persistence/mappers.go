package persistence

import (
	"github.com/chamberhub/bizportal/domain/application"
	"github.com/chamberhub/bizportal/domain/directory"
	"github.com/chamberhub/bizportal/domain/locale"
	"gorm.io/datatypes"
)

// ServiceMapper maps between directory.Service and ServiceModel.
type ServiceMapper struct{}

// ToDomain converts a ServiceModel to a directory.Service.
func (ServiceMapper) ToDomain(e ServiceModel) directory.Service {
	return directory.ReconstructService(
		e.ID,
		locale.NewText(e.Name, e.NameAr),
		locale.NewText(e.Description, e.DescriptionAr),
		e.Department,
		e.Platform,
		directory.ChannelType(e.ChannelType),
		e.URL,
		e.Tags,
		e.Featured,
		e.GoldenVendor,
		e.SortOrder,
		e.CreatedAt,
		e.UpdatedAt,
	)
}

// ToModel converts a directory.Service to a ServiceModel.
func (ServiceMapper) ToModel(s directory.Service) ServiceModel {
	return ServiceModel{
		ID:            s.ID(),
		Name:          s.Name().En,
		NameAr:        s.Name().Ar,
		Description:   s.Description().En,
		DescriptionAr: s.Description().Ar,
		Department:    s.Department(),
		Platform:      s.Platform(),
		ChannelType:   string(s.Channel()),
		URL:           s.URL(),
		Tags:          datatypes.JSONSlice[string](s.Tags()),
		Featured:      s.Featured(),
		GoldenVendor:  s.GoldenVendor(),
		SortOrder:     s.SortOrder(),
		CreatedAt:     s.CreatedAt(),
		UpdatedAt:     s.UpdatedAt(),
	}
}

// ApplicationMapper maps the parent row. Extension rows are mapped by
// esgToModel and knowledgeSharingToModel.
type ApplicationMapper struct{}

// ToDomain converts an ApplicationModel to an application.Application
// without extension details.
func (ApplicationMapper) ToDomain(e ApplicationModel) application.Application {
	return application.ReconstructApplication(
		e.ID,
		application.ServiceType(e.ServiceType),
		e.ServiceID,
		application.Applicant{Name: e.ApplicantName, Email: e.ApplicantEmail, Phone: e.ApplicantPhone},
		e.Organization,
		e.Sector,
		e.Description,
		application.Status(e.Status),
		e.AIPrecheck,
		e.AssignedReviewer,
		application.Timestamps{
			Created:       e.CreatedAt,
			Submitted:     e.SubmittedAt,
			ReviewStarted: e.ReviewStartedAt,
			Decided:       e.DecidedAt,
			Closed:        e.ClosedAt,
		},
		e.UpdatedAt,
	)
}

// ToModel converts an application.Application to its parent row.
func (ApplicationMapper) ToModel(a application.Application) ApplicationModel {
	ts := a.Timestamps()
	applicant := a.Applicant()
	return ApplicationModel{
		ID:               a.ID(),
		ServiceType:      string(a.ServiceType()),
		ServiceID:        a.ServiceID(),
		ApplicantName:    applicant.Name,
		ApplicantEmail:   applicant.Email,
		ApplicantPhone:   applicant.Phone,
		Organization:     a.Organization(),
		Sector:           a.Sector(),
		Description:      a.Description(),
		Status:           string(a.Status()),
		AIPrecheck:       a.AIPrecheck(),
		AssignedReviewer: a.AssignedReviewer(),
		SubmittedAt:      ts.Submitted,
		ReviewStartedAt:  ts.ReviewStarted,
		DecidedAt:        ts.Decided,
		ClosedAt:         ts.Closed,
		CreatedAt:        ts.Created,
		UpdatedAt:        a.UpdatedAt(),
	}
}

func esgToModel(applicationID string, d application.ESGDetails) ESGDetailsModel {
	return ESGDetailsModel{
		ApplicationID:           applicationID,
		SubSector:               d.SubSector,
		TradeLicense:            d.TradeLicense,
		EmployeeCount:           d.EmployeeCount,
		HasSustainabilityPolicy: d.HasSustainabilityPolicy,
		Frameworks:              datatypes.JSONSlice[string](d.Frameworks),
		Initiatives:             d.Initiatives,
	}
}

func esgToDomain(e ESGDetailsModel) application.ESGDetails {
	return application.ESGDetails{
		SubSector:               e.SubSector,
		TradeLicense:            e.TradeLicense,
		EmployeeCount:           e.EmployeeCount,
		HasSustainabilityPolicy: e.HasSustainabilityPolicy,
		Frameworks:              []string(e.Frameworks),
		Initiatives:             e.Initiatives,
	}
}

func knowledgeSharingToModel(applicationID string, d application.KnowledgeSharingDetails) KnowledgeSharingDetailsModel {
	return KnowledgeSharingDetailsModel{
		ApplicationID:     applicationID,
		ProgramType:       d.ProgramType,
		Topic:             d.Topic,
		SessionDate:       d.SessionDate,
		Format:            string(d.Format),
		ExpectedAttendees: d.ExpectedAttendees,
		Topics:            datatypes.JSONSlice[string](d.Topics),
	}
}

func knowledgeSharingToDomain(e KnowledgeSharingDetailsModel) application.KnowledgeSharingDetails {
	return application.KnowledgeSharingDetails{
		ProgramType:       e.ProgramType,
		Topic:             e.Topic,
		SessionDate:       e.SessionDate,
		Format:            application.ParseSessionFormat(e.Format),
		ExpectedAttendees: e.ExpectedAttendees,
		Topics:            []string(e.Topics),
	}
}

// ReviewNoteMapper maps between application.ReviewNote and ReviewNoteModel.
type ReviewNoteMapper struct{}

// ToDomain converts a ReviewNoteModel to an application.ReviewNote.
func (ReviewNoteMapper) ToDomain(e ReviewNoteModel) application.ReviewNote {
	return application.ReconstructReviewNote(
		e.ID,
		e.ApplicationID,
		application.AuthorType(e.AuthorType),
		e.AuthorName,
		e.Content,
		application.Status(e.FromStatus),
		application.Status(e.ToStatus),
		e.Internal,
		e.CreatedAt,
	)
}

// ToModel converts an application.ReviewNote to a ReviewNoteModel.
func (ReviewNoteMapper) ToModel(n application.ReviewNote) ReviewNoteModel {
	return ReviewNoteModel{
		ID:            n.ID(),
		ApplicationID: n.ApplicationID(),
		AuthorType:    string(n.AuthorType()),
		AuthorName:    n.AuthorName(),
		Content:       n.Content(),
		FromStatus:    string(n.FromStatus()),
		ToStatus:      string(n.ToStatus()),
		Internal:      n.Internal(),
		CreatedAt:     n.CreatedAt(),
	}
}

// CertificateMapper maps between application.Certificate and CertificateModel.
type CertificateMapper struct{}

// ToDomain converts a CertificateModel to an application.Certificate.
func (CertificateMapper) ToDomain(e CertificateModel) application.Certificate {
	return application.ReconstructCertificate(
		e.ID,
		e.ApplicationID,
		e.Number,
		application.ServiceType(e.ServiceType),
		e.Holder,
		e.IssuedAt,
		e.ValidUntil,
	)
}

// ToModel converts an application.Certificate to a CertificateModel.
func (CertificateMapper) ToModel(c application.Certificate) CertificateModel {
	return CertificateModel{
		ID:            c.ID(),
		ApplicationID: c.ApplicationID(),
		Number:        c.Number(),
		ServiceType:   string(c.ServiceType()),
		Holder:        c.Holder(),
		IssuedAt:      c.IssuedAt(),
		ValidUntil:    c.ValidUntil(),
	}
}
