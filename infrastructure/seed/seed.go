// Package seed loads the embedded demo data: directory services, the five
// demo applications with their review history, and the member hub content.
package seed

import (
	"embed"
	"fmt"
	"sort"
	"time"

	"github.com/chamberhub/bizportal/domain/application"
	"github.com/chamberhub/bizportal/domain/directory"
	"github.com/chamberhub/bizportal/domain/locale"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var files embed.FS

func decode(name string, out any) error {
	raw, err := files.ReadFile("data/" + name)
	if err != nil {
		return fmt.Errorf("read seed %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode seed %s: %w", name, err)
	}
	return nil
}

type serviceDoc struct {
	Name          string   `yaml:"name"`
	NameAr        string   `yaml:"name_ar"`
	Description   string   `yaml:"description"`
	DescriptionAr string   `yaml:"description_ar"`
	Department    string   `yaml:"department"`
	Platform      string   `yaml:"platform"`
	Channel       string   `yaml:"channel"`
	URL           string   `yaml:"url"`
	Tags          []string `yaml:"tags"`
	Featured      bool     `yaml:"featured"`
	GoldenVendor  bool     `yaml:"golden_vendor"`
	SortOrder     int      `yaml:"sort_order"`
}

// Services returns the directory entries in display order.
func Services() ([]directory.Service, error) {
	var doc struct {
		Services []serviceDoc `yaml:"services"`
	}
	if err := decode("services.yaml", &doc); err != nil {
		return nil, err
	}

	out := make([]directory.Service, 0, len(doc.Services))
	seen := make(map[string]bool, len(doc.Services))
	for _, s := range doc.Services {
		channel, ok := directory.ParseChannelType(s.Channel)
		if !ok {
			return nil, fmt.Errorf("service %q: unknown channel %q", s.Name, s.Channel)
		}
		svc := directory.NewService(
			locale.NewText(s.Name, s.NameAr),
			locale.NewText(s.Description, s.DescriptionAr),
			s.Department, s.Platform, channel, s.URL,
		).WithTags(s.Tags...).
			WithFeatured(s.Featured).
			WithGoldenVendor(s.GoldenVendor).
			WithSortOrder(s.SortOrder)
		if seen[svc.ID()] {
			return nil, fmt.Errorf("service %q: duplicate id %q", s.Name, svc.ID())
		}
		seen[svc.ID()] = true
		out = append(out, svc)
	}
	return out, nil
}

type applicantDoc struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
	Phone string `yaml:"phone"`
}

type esgDoc struct {
	SubSector               string   `yaml:"sub_sector"`
	TradeLicense            string   `yaml:"trade_license"`
	EmployeeCount           int      `yaml:"employee_count"`
	HasSustainabilityPolicy bool     `yaml:"has_sustainability_policy"`
	Frameworks              []string `yaml:"frameworks"`
	Initiatives             string   `yaml:"initiatives"`
}

type knowledgeSharingDoc struct {
	ProgramType       string     `yaml:"program_type"`
	Topic             string     `yaml:"topic"`
	SessionDate       *time.Time `yaml:"session_date"`
	Format            string     `yaml:"format"`
	ExpectedAttendees int        `yaml:"expected_attendees"`
	Topics            []string   `yaml:"topics"`
}

type noteDoc struct {
	Author   string    `yaml:"author"`
	Name     string    `yaml:"name"`
	At       time.Time `yaml:"at"`
	Content  string    `yaml:"content"`
	Internal bool      `yaml:"internal"`
}

type historyDoc struct {
	To     string    `yaml:"to"`
	At     time.Time `yaml:"at"`
	Actor  string    `yaml:"actor"`
	Reason string    `yaml:"reason"`
}

type applicationDoc struct {
	ID               string               `yaml:"id"`
	ServiceType      string               `yaml:"service_type"`
	Service          string               `yaml:"service"`
	Applicant        applicantDoc         `yaml:"applicant"`
	Organization     string               `yaml:"organization"`
	Sector           string               `yaml:"sector"`
	Description      string               `yaml:"description"`
	SubmittedAt      time.Time            `yaml:"submitted_at"`
	Reviewer         string               `yaml:"reviewer"`
	ESG              *esgDoc              `yaml:"esg"`
	KnowledgeSharing *knowledgeSharingDoc `yaml:"knowledge_sharing"`
	Notes            []noteDoc            `yaml:"notes"`
	History          []historyDoc         `yaml:"history"`
	Certify          bool                 `yaml:"certify"`
}

// Fixture is a demo application in its final state together with the notes
// its history produced, oldest first.
type Fixture struct {
	Application application.Application
	Notes       []application.ReviewNote

	// CertifiedAt is set when the fixture should hold a certificate.
	CertifiedAt *time.Time
}

// Applications returns the demo applications. Each history step is applied
// through the workflow, so an invalid step is a load error.
func Applications() ([]Fixture, error) {
	var doc struct {
		Applications []applicationDoc `yaml:"applications"`
	}
	if err := decode("applications.yaml", &doc); err != nil {
		return nil, err
	}

	out := make([]Fixture, 0, len(doc.Applications))
	for _, d := range doc.Applications {
		f, err := d.fixture()
		if err != nil {
			return nil, fmt.Errorf("application %s: %w", d.ID, err)
		}
		out = append(out, f)
	}
	return out, nil
}

func (d applicationDoc) fixture() (Fixture, error) {
	serviceType, err := application.ParseServiceType(d.ServiceType)
	if err != nil {
		return Fixture{}, err
	}

	submitted := d.SubmittedAt.UTC()
	app := application.ReconstructApplication(
		d.ID, serviceType, d.Service,
		application.Applicant{Name: d.Applicant.Name, Email: d.Applicant.Email, Phone: d.Applicant.Phone},
		d.Organization, d.Sector, d.Description,
		application.StatusSubmitted, "", d.Reviewer,
		application.Timestamps{Created: submitted, Submitted: submitted},
		submitted,
	)
	if d.ESG != nil {
		app = app.WithESG(application.ESGDetails{
			SubSector:               d.ESG.SubSector,
			TradeLicense:            d.ESG.TradeLicense,
			EmployeeCount:           d.ESG.EmployeeCount,
			HasSustainabilityPolicy: d.ESG.HasSustainabilityPolicy,
			Frameworks:              d.ESG.Frameworks,
			Initiatives:             d.ESG.Initiatives,
		})
	}
	if d.KnowledgeSharing != nil {
		ks := d.KnowledgeSharing
		app = app.WithKnowledgeSharing(application.KnowledgeSharingDetails{
			ProgramType:       ks.ProgramType,
			Topic:             ks.Topic,
			SessionDate:       ks.SessionDate,
			Format:            application.ParseSessionFormat(ks.Format),
			ExpectedAttendees: ks.ExpectedAttendees,
			Topics:            ks.Topics,
		})
	}
	if err := app.Validate(); err != nil {
		return Fixture{}, err
	}

	notes := []application.ReviewNote{
		application.NewSubmissionNote(app.ID(), serviceType).WithCreatedAt(submitted),
	}
	for _, n := range d.Notes {
		author, ok := application.ParseAuthorType(n.Author)
		if !ok {
			return Fixture{}, fmt.Errorf("note author %q", n.Author)
		}
		notes = append(notes, application.NewComment(app.ID(), author, n.Name, n.Content, n.Internal).WithCreatedAt(n.At.UTC()))
	}
	for _, h := range d.History {
		to, err := application.ParseStatus(h.To)
		if err != nil {
			return Fixture{}, err
		}
		from := app.Status()
		if app, err = app.Transition(to, h.At); err != nil {
			return Fixture{}, err
		}
		notes = append(notes, application.NewStatusChangeNote(app.ID(), from, to, h.Actor, h.Reason).WithCreatedAt(h.At.UTC()))
	}
	sort.SliceStable(notes, func(i, j int) bool { return notes[i].CreatedAt().Before(notes[j].CreatedAt()) })

	f := Fixture{Application: app, Notes: notes}
	if d.Certify {
		if app.Status() != application.StatusApproved {
			return Fixture{}, fmt.Errorf("%w: cannot certify %s", application.ErrNotApproved, app.Status())
		}
		decided := app.Timestamps().Decided
		f.CertifiedAt = decided
	}
	return f, nil
}
