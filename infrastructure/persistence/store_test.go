package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/chamberhub/bizportal/domain/application"
	"github.com/chamberhub/bizportal/domain/directory"
	"github.com/chamberhub/bizportal/domain/locale"
	"github.com/chamberhub/bizportal/domain/repository"
	"github.com/chamberhub/bizportal/infrastructure/persistence"
	"github.com/chamberhub/bizportal/internal/database"
	"github.com/chamberhub/bizportal/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func esgApplication(org string) application.Application {
	return application.NewApplication(
		application.ServiceTypeESG,
		application.Applicant{Name: "Layla Haddad", Email: "layla@example.com"},
		org, "Manufacturing", "Sustainability reporting",
	).WithESG(application.ESGDetails{
		TradeLicense:  "TL-1001",
		EmployeeCount: 40,
		Frameworks:    []string{"GRI", "SASB"},
	})
}

func approve(t *testing.T, app application.Application) application.Application {
	t.Helper()
	at := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	app, err := app.Transition(application.StatusUnderReview, at)
	require.NoError(t, err)
	app, err = app.Transition(application.StatusApproved, at)
	require.NoError(t, err)
	return app
}

func TestValidateSchema(t *testing.T) {
	db := testdb.New(t)
	require.NoError(t, persistence.ValidateSchema(db))
}

func TestServiceStore_UpsertAndDepartments(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewServiceStore(testdb.New(t))

	a := directory.NewService(locale.NewText("Certificate of Origin", "شهادة المنشأ"), locale.NewText("Issue", "إصدار"),
		"Trade Services", "eChamber", directory.ChannelOnline, "https://example.com/coo").WithTags("export")
	b := directory.NewService(locale.NewText("Membership Renewal", "تجديد العضوية"), locale.NewText("Renew", "تجديد"),
		"Membership", "Portal", directory.ChannelHybrid, "")

	require.NoError(t, store.Upsert(ctx, []directory.Service{a, b}))
	require.NoError(t, store.Upsert(ctx, []directory.Service{a.WithFeatured(true)}))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	got, err := store.FindOne(ctx, repository.WithID(a.ID()))
	require.NoError(t, err)
	assert.True(t, got.Featured())
	assert.Equal(t, "شهادة المنشأ", got.Name().Ar)
	assert.Equal(t, []string{"export"}, got.Tags())

	online, err := store.Find(ctx, directory.WithChannel(directory.ChannelOnline))
	require.NoError(t, err)
	require.Len(t, online, 1)
	assert.Equal(t, a.ID(), online[0].ID())

	departments, err := store.Departments(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Membership", "Trade Services"}, departments)
}

func TestApplicationStore_CreateGetUpdate(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewApplicationStore(testdb.New(t))

	app := esgApplication("Green Co")
	_, err := store.Create(ctx, app)
	require.NoError(t, err)

	got, err := store.Get(ctx, app.ID())
	require.NoError(t, err)
	assert.Equal(t, application.StatusSubmitted, got.Status())
	require.NotNil(t, got.ESG())
	assert.Equal(t, "TL-1001", got.ESG().TradeLicense)
	assert.Equal(t, []string{"GRI", "SASB"}, got.ESG().Frameworks)

	moved, err := got.Transition(application.StatusCorrectionsRequested, time.Now())
	require.NoError(t, err)
	moved = moved.WithAssignedReviewer("reviewer@chamber.example")
	_, err = store.Update(ctx, moved)
	require.NoError(t, err)

	got, err = store.Get(ctx, app.ID())
	require.NoError(t, err)
	assert.Equal(t, application.StatusCorrectionsRequested, got.Status())
	assert.Equal(t, "reviewer@chamber.example", got.AssignedReviewer())

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestApplicationStore_StatusCountsAndSearch(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewApplicationStore(testdb.New(t))

	for _, org := range []string{"Alpha Trading", "Beta Foods", "Gamma Works"} {
		_, err := store.Create(ctx, esgApplication(org))
		require.NoError(t, err)
	}

	counts, err := store.StatusCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts[application.StatusSubmitted])
	assert.Equal(t, int64(0), counts[application.StatusApproved])

	found, err := store.Find(ctx, application.WithText("beta"))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Beta Foods", found[0].Organization())

	sorted, err := store.Find(ctx, application.SortOrganization.Options()...)
	require.NoError(t, err)
	require.Len(t, sorted, 3)
	assert.Equal(t, "Alpha Trading", sorted[0].Organization())
}

func TestApplicationStore_KnowledgeSharingOrphans(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	apps := persistence.NewApplicationStore(db)
	notes := persistence.NewNoteStore(db)

	applicant := application.Applicant{Name: "Omar", Email: "omar@example.com"}
	complete := application.NewApplication(application.ServiceTypeKnowledgeSharing, applicant, "Complete Org", "", "").
		WithKnowledgeSharing(application.KnowledgeSharingDetails{ProgramType: "Workshop", Topic: "Export finance"})
	orphan := application.NewApplication(application.ServiceTypeKnowledgeSharing, applicant, "Orphan Org", "", "")
	esg := esgApplication("ESG Org")

	for _, a := range []application.Application{complete, orphan, esg} {
		_, err := apps.Create(ctx, a)
		require.NoError(t, err)
		_, err = notes.Append(ctx, application.NewSubmissionNote(a.ID(), a.ServiceType()))
		require.NoError(t, err)
	}

	ids, err := apps.KnowledgeSharingOrphans(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{orphan.ID()}, ids)

	_, err = notes.DeleteByApplicationIDs(ctx, ids)
	require.NoError(t, err)
	deleted, err := apps.DeleteByIDs(ctx, ids)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	remaining, err := apps.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), remaining)

	orphanNotes, err := notes.ForApplication(ctx, orphan.ID(), true)
	require.NoError(t, err)
	assert.Empty(t, orphanNotes)
}

func TestNoteStore_InternalNotesHidden(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	apps := persistence.NewApplicationStore(db)
	notes := persistence.NewNoteStore(db)

	app := esgApplication("Delta")
	_, err := apps.Create(ctx, app)
	require.NoError(t, err)

	_, err = notes.Append(ctx, application.NewSubmissionNote(app.ID(), app.ServiceType()))
	require.NoError(t, err)
	_, err = notes.Append(ctx, application.NewComment(app.ID(), application.AuthorStaff, "Reviewer", "check license scan", true))
	require.NoError(t, err)
	stored, err := notes.Append(ctx, application.NewComment(app.ID(), application.AuthorApplicant, "Layla", "uploaded", false))
	require.NoError(t, err)
	assert.NotZero(t, stored.ID())

	_, err = notes.Append(ctx, stored)
	assert.Error(t, err)

	all, err := notes.ForApplication(ctx, app.ID(), true)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	public, err := notes.ForApplication(ctx, app.ID(), false)
	require.NoError(t, err)
	require.Len(t, public, 2)
	assert.Equal(t, "uploaded", public[1].Content())
}

func TestCertificateStore_IssueNumbersSequentially(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	apps := persistence.NewApplicationStore(db)
	certs := persistence.NewCertificateStore(db)
	at := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	first := approve(t, esgApplication("First"))
	second := approve(t, esgApplication("Second"))
	for _, a := range []application.Application{first, second} {
		_, err := apps.Create(ctx, a)
		require.NoError(t, err)
	}

	c1, err := certs.Issue(ctx, first, at)
	require.NoError(t, err)
	c2, err := certs.Issue(ctx, second, at)
	require.NoError(t, err)
	again, err := certs.Issue(ctx, first, at)
	require.NoError(t, err)

	assert.Equal(t, "ESG-2026-00001", c1.Number())
	assert.Equal(t, "ESG-2026-00002", c2.Number())
	assert.Equal(t, c1.Number(), again.Number())
	assert.Equal(t, at.AddDate(1, 0, 0), c1.ValidUntil())

	byNumber, err := certs.ByNumber(ctx, " esg-2026-00002 ")
	require.NoError(t, err)
	assert.Equal(t, second.ID(), byNumber.ApplicationID())

	count, err := certs.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestCertificateStore_SequencePastFiveDigits(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	apps := persistence.NewApplicationStore(db)
	certs := persistence.NewCertificateStore(db)
	at := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	var approved []application.Application
	for _, org := range []string{"Early", "Last Five Digit", "Six Digit", "Next"} {
		a := approve(t, esgApplication(org))
		_, err := apps.Create(ctx, a)
		require.NoError(t, err)
		approved = append(approved, a)
	}

	for i, seq := range []int{7, 99999} {
		cert, err := application.NewCertificate(approved[i], seq, at)
		require.NoError(t, err)
		_, err = certs.Create(ctx, cert)
		require.NoError(t, err)
	}

	c, err := certs.Issue(ctx, approved[2], at)
	require.NoError(t, err)
	assert.Equal(t, "ESG-2026-100000", c.Number())

	c, err = certs.Issue(ctx, approved[3], at)
	require.NoError(t, err)
	assert.Equal(t, "ESG-2026-100001", c.Number())
}

func TestCertificateStore_RejectsUnapproved(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	apps := persistence.NewApplicationStore(db)
	certs := persistence.NewCertificateStore(db)

	app := esgApplication("Pending")
	_, err := apps.Create(ctx, app)
	require.NoError(t, err)

	_, err = certs.Issue(ctx, app, time.Now())
	assert.ErrorIs(t, err, application.ErrNotApproved)

	_, err = certs.ForApplication(ctx, app.ID())
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestTransactionRollsBackApplicationAndNote(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	apps := persistence.NewApplicationStore(db)
	notes := persistence.NewNoteStore(db)

	app := esgApplication("Rollback")
	err := database.WithTransaction(ctx, db, func(ctx context.Context) error {
		if _, err := apps.Create(ctx, app); err != nil {
			return err
		}
		if _, err := notes.Append(ctx, application.NewSubmissionNote(app.ID(), app.ServiceType())); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	exists, err := apps.Exists(ctx, repository.WithID(app.ID()))
	require.NoError(t, err)
	assert.False(t, exists)
}
