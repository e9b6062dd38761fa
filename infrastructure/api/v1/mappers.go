package v1

import (
	"time"

	"github.com/chamberhub/bizportal/application/service"
	"github.com/chamberhub/bizportal/domain/application"
	"github.com/chamberhub/bizportal/domain/catalog"
	"github.com/chamberhub/bizportal/domain/directory"
	"github.com/chamberhub/bizportal/domain/locale"
	"github.com/chamberhub/bizportal/infrastructure/api/v1/dto"
)

func localized(t locale.Text, l locale.Locale) dto.Localized {
	return dto.Localized{Value: t.In(l), En: t.En, Ar: t.Ar}
}

func serviceToDTO(s directory.Service, l locale.Locale) dto.ServiceSchema {
	tags := s.Tags()
	if tags == nil {
		tags = []string{}
	}
	return dto.ServiceSchema{
		ID:           s.ID(),
		Name:         localized(s.Name(), l),
		Description:  localized(s.Description(), l),
		Department:   s.Department(),
		Platform:     s.Platform(),
		Channel:      string(s.Channel()),
		URL:          s.URL(),
		Tags:         tags,
		Featured:     s.Featured(),
		GoldenVendor: s.GoldenVendor(),
		SortOrder:    s.SortOrder(),
	}
}

func servicesToDTO(services []directory.Service, l locale.Locale) []dto.ServiceSchema {
	out := make([]dto.ServiceSchema, len(services))
	for i, s := range services {
		out[i] = serviceToDTO(s, l)
	}
	return out
}

func esgFromDTO(d *dto.ESGDetailsSchema) *application.ESGDetails {
	if d == nil {
		return nil
	}
	return &application.ESGDetails{
		SubSector:               d.SubSector,
		TradeLicense:            d.TradeLicense,
		EmployeeCount:           d.EmployeeCount,
		HasSustainabilityPolicy: d.HasSustainabilityPolicy,
		Frameworks:              d.Frameworks,
		Initiatives:             d.Initiatives,
	}
}

func esgToDTO(d *application.ESGDetails) *dto.ESGDetailsSchema {
	if d == nil {
		return nil
	}
	frameworks := d.Frameworks
	if frameworks == nil {
		frameworks = []string{}
	}
	return &dto.ESGDetailsSchema{
		SubSector:               d.SubSector,
		TradeLicense:            d.TradeLicense,
		EmployeeCount:           d.EmployeeCount,
		HasSustainabilityPolicy: d.HasSustainabilityPolicy,
		Frameworks:              frameworks,
		Initiatives:             d.Initiatives,
	}
}

func knowledgeSharingFromDTO(d *dto.KnowledgeSharingDetailsSchema) *application.KnowledgeSharingDetails {
	if d == nil {
		return nil
	}
	return &application.KnowledgeSharingDetails{
		ProgramType:       d.ProgramType,
		Topic:             d.Topic,
		SessionDate:       d.SessionDate,
		Format:            application.ParseSessionFormat(d.Format),
		ExpectedAttendees: d.ExpectedAttendees,
		Topics:            d.Topics,
	}
}

func knowledgeSharingToDTO(d *application.KnowledgeSharingDetails) *dto.KnowledgeSharingDetailsSchema {
	if d == nil {
		return nil
	}
	topics := d.Topics
	if topics == nil {
		topics = []string{}
	}
	return &dto.KnowledgeSharingDetailsSchema{
		ProgramType:       d.ProgramType,
		Topic:             d.Topic,
		SessionDate:       d.SessionDate,
		Format:            string(d.Format),
		ExpectedAttendees: d.ExpectedAttendees,
		Topics:            topics,
	}
}

func paramsFromDTO(req dto.ApplicationRequest) (service.ApplicationParams, error) {
	serviceType, err := application.ParseServiceType(req.ServiceType)
	if err != nil {
		return service.ApplicationParams{}, err
	}
	return service.ApplicationParams{
		ServiceType: serviceType,
		ServiceID:   req.ServiceID,
		Applicant: application.Applicant{
			Name:  req.ApplicantName,
			Email: req.ApplicantEmail,
			Phone: req.ApplicantPhone,
		},
		Organization:     req.Organization,
		Sector:           req.Sector,
		Description:      req.Description,
		AIPrecheck:       req.AIPrecheck,
		ESG:              esgFromDTO(req.ESG),
		KnowledgeSharing: knowledgeSharingFromDTO(req.KnowledgeSharing),
	}, nil
}

func applicationToDTO(a application.Application) dto.ApplicationSchema {
	ts := a.Timestamps()
	applicant := a.Applicant()
	return dto.ApplicationSchema{
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
		ESG:              esgToDTO(a.ESG()),
		KnowledgeSharing: knowledgeSharingToDTO(a.KnowledgeSharing()),
		CreatedAt:        a.CreatedAt(),
		UpdatedAt:        a.UpdatedAt(),
		SubmittedAt:      ts.Submitted,
		ReviewStartedAt:  ts.ReviewStarted,
		DecidedAt:        ts.Decided,
		ClosedAt:         ts.Closed,
	}
}

func applicationsToDTO(apps []application.Application) []dto.ApplicationSchema {
	out := make([]dto.ApplicationSchema, len(apps))
	for i, a := range apps {
		out[i] = applicationToDTO(a)
	}
	return out
}

func noteToDTO(n application.ReviewNote) dto.NoteSchema {
	return dto.NoteSchema{
		ID:         n.ID(),
		AuthorType: string(n.AuthorType()),
		AuthorName: n.AuthorName(),
		Content:    n.Content(),
		FromStatus: string(n.FromStatus()),
		ToStatus:   string(n.ToStatus()),
		Internal:   n.Internal(),
		CreatedAt:  n.CreatedAt(),
	}
}

func certificateToDTO(c application.Certificate) dto.CertificateSchema {
	return dto.CertificateSchema{
		Number:        c.Number(),
		ApplicationID: c.ApplicationID(),
		ServiceType:   string(c.ServiceType()),
		Holder:        c.Holder(),
		IssuedAt:      c.IssuedAt(),
		ValidUntil:    c.ValidUntil(),
		Valid:         c.IsValidAt(time.Now()),
	}
}

func detailToDTO(d service.Detail, l locale.Locale) dto.ApplicationDetailResponse {
	notes := make([]dto.NoteSchema, len(d.Notes))
	for i, n := range d.Notes {
		notes[i] = noteToDTO(n)
	}
	stages := make([]dto.StageSchema, len(d.Timeline))
	for i, s := range d.Timeline {
		stages[i] = dto.StageSchema{
			Key:            string(s.Key),
			Label:          localized(s.Label, l),
			State:          string(s.State),
			At:             s.At,
			ActionRequired: s.ActionRequired,
		}
	}
	var cert *dto.CertificateSchema
	if d.Certificate != nil {
		c := certificateToDTO(*d.Certificate)
		cert = &c
	}
	return dto.ApplicationDetailResponse{
		LocaleInfo:  localeInfo(l),
		Success:     true,
		Application: applicationToDTO(d.Application),
		ReviewNotes: notes,
		Certificate: cert,
		Timeline:    stages,
	}
}

func dealToDTO(d catalog.Deal, l locale.Locale) dto.DealSchema {
	return dto.DealSchema{
		ID:           d.ID,
		Title:        localized(d.Title, l),
		Description:  localized(d.Description, l),
		Partner:      localized(d.Partner, l),
		Category:     d.Category,
		Sector:       d.Sector,
		DiscountPct:  d.DiscountPct,
		MemberPrice:  d.MemberPrice,
		Currency:     d.Currency,
		ValidUntil:   d.ValidUntil,
		URL:          d.URL,
		Featured:     d.Featured,
		GoldenVendor: d.GoldenVendor,
	}
}

func datasetToDTO(d catalog.Dataset, l locale.Locale) dto.DatasetSchema {
	series := make([]dto.PointSchema, len(d.Series))
	for i, p := range d.Series {
		series[i] = dto.PointSchema{Label: p.Label, Value: p.Value}
	}
	out := dto.DatasetSchema{
		ID:          d.ID,
		Title:       localized(d.Title, l),
		Description: localized(d.Description, l),
		Category:    d.Category,
		Sector:      d.Sector,
		Source:      d.Source,
		Unit:        d.Unit,
		Frequency:   d.Frequency,
		UpdatedAt:   d.UpdatedAt,
		Series:      series,
		Featured:    d.Featured,
	}
	if p, ok := d.Latest(); ok {
		out.Latest = &dto.PointSchema{Label: p.Label, Value: p.Value}
	}
	if change, ok := d.Change(); ok {
		out.ChangePct = &change
	}
	return out
}

func reportToDTO(r catalog.Report, l locale.Locale) dto.ReportSchema {
	return dto.ReportSchema{
		ID:          r.ID,
		Title:       localized(r.Title, l),
		Summary:     localized(r.Summary, l),
		Category:    r.Category,
		Sector:      r.Sector,
		Author:      r.Author,
		PublishedAt: r.PublishedAt,
		Pages:       r.Pages,
		URL:         r.URL,
		Featured:    r.Featured,
	}
}

func companyToDTO(c catalog.Company, l locale.Locale) dto.CompanySchema {
	return dto.CompanySchema{
		ID:           c.ID,
		Name:         localized(c.Name, l),
		Description:  localized(c.Description, l),
		Category:     c.Category,
		Sector:       c.Sector,
		City:         localized(c.City, l),
		Website:      c.Website,
		Employees:    c.Employees,
		Founded:      c.Founded,
		Verified:     c.Verified,
		GoldenVendor: c.GoldenVendor,
	}
}

func supplierToDTO(s catalog.Supplier, l locale.Locale) dto.SupplierSchema {
	certifications := s.Certifications
	if certifications == nil {
		certifications = []string{}
	}
	return dto.SupplierSchema{
		ID:             s.ID,
		Name:           localized(s.Name, l),
		Description:    localized(s.Description, l),
		Category:       s.Category,
		Sector:         s.Sector,
		City:           localized(s.City, l),
		Rating:         s.Rating,
		Certifications: certifications,
		ContactEmail:   s.ContactEmail,
		GoldenVendor:   s.GoldenVendor,
	}
}

func tenderToDTO(t catalog.Tender, l locale.Locale) dto.TenderSchema {
	return dto.TenderSchema{
		ID:          t.ID,
		Title:       localized(t.Title, l),
		Description: localized(t.Description, l),
		Issuer:      localized(t.Issuer, l),
		Category:    t.Category,
		Sector:      t.Sector,
		Budget:      t.Budget,
		Currency:    t.Currency,
		PublishedAt: t.PublishedAt,
		Deadline:    t.Deadline,
		Status:      string(t.Status),
	}
}
