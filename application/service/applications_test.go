package service

import (
	"context"
	"testing"

	"github.com/chamberhub/bizportal/domain/application"
	"github.com/chamberhub/bizportal/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplications_Submit(t *testing.T) {
	ctx := context.Background()
	env := newSeededEnv(t)

	d, err := env.applications.Submit(ctx, esgParams())
	require.NoError(t, err)

	app := d.Application
	assert.Equal(t, application.StatusSubmitted, app.Status())
	assert.Equal(t, "esg-label", app.ServiceID())
	assert.Equal(t, "huda@atlas.example", app.Applicant().Email)
	require.NotNil(t, app.ESG())
	assert.Equal(t, "TL-1001", app.ESG().TradeLicense)

	require.Len(t, d.Notes, 1)
	assert.Equal(t, application.AuthorSystem, d.Notes[0].AuthorType())
	assert.Nil(t, d.Certificate)
	assert.Equal(t, application.StageCurrent, d.Timeline[0].State)
}

func TestApplications_SubmitValidation(t *testing.T) {
	ctx := context.Background()
	env := newSeededEnv(t)

	tests := []struct {
		name   string
		mutate func(*ApplicationParams)
	}{
		{"missing name", func(p *ApplicationParams) { p.Applicant.Name = "" }},
		{"bad email", func(p *ApplicationParams) { p.Applicant.Email = "not-an-email" }},
		{"missing organization", func(p *ApplicationParams) { p.Organization = " " }},
		{"missing service type", func(p *ApplicationParams) { p.ServiceType = "" }},
		{"unknown service", func(p *ApplicationParams) { p.ServiceID = "no-such-service" }},
		{"missing ESG details", func(p *ApplicationParams) { p.ESG = nil }},
		{"missing trade license", func(p *ApplicationParams) { p.ESG.TradeLicense = "" }},
		{"session details on an ESG application", func(p *ApplicationParams) {
			p.KnowledgeSharing = &application.KnowledgeSharingDetails{ProgramType: "Workshop", Topic: "Export"}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := esgParams()
			tt.mutate(&params)
			_, err := env.applications.Submit(ctx, params)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	count, err := env.apps.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count, "failed submissions must not write rows")
}

func TestApplications_RequestChamberBoost(t *testing.T) {
	ctx := context.Background()
	env := newSeededEnv(t)

	params := esgParams()
	params.ServiceID = ""
	d, err := env.applications.RequestChamberBoost(ctx, params)
	require.NoError(t, err)

	assert.Equal(t, application.ServiceTypeChamberBoost, d.Application.ServiceType())
	assert.Equal(t, "chamber-boost", d.Application.ServiceID())
	assert.Nil(t, d.Application.ESG())
}

func TestApplications_GetRejectedSeedHasNoCertificate(t *testing.T) {
	ctx := context.Background()
	env := newSeededEnv(t)

	d, err := env.applications.MemberView(ctx, rejectedKSID)
	require.NoError(t, err)

	assert.Equal(t, application.StatusRejected, d.Application.Status())
	assert.Nil(t, d.Certificate)
	require.NotEmpty(t, d.Notes)
	assert.Contains(t, d.Notes[len(d.Notes)-1].Content(), rejectionReasonKS)
}

func TestApplications_MemberViewHidesInternalNotes(t *testing.T) {
	ctx := context.Background()
	env := newSeededEnv(t)

	full, err := env.applications.Get(ctx, approvedESGID)
	require.NoError(t, err)
	member, err := env.applications.MemberView(ctx, approvedESGID)
	require.NoError(t, err)

	assert.Len(t, member.Notes, len(full.Notes)-1)
	for _, n := range member.Notes {
		assert.False(t, n.Internal())
	}
	require.NotNil(t, member.Certificate)
	assert.Equal(t, "ESG-2026-00001", member.Certificate.Number())
}

func TestApplications_GetUnknown(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.applications.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestApplications_UpdateResubmits(t *testing.T) {
	ctx := context.Background()
	env := newSeededEnv(t)

	before, err := env.applications.Get(ctx, correctionsESGID)
	require.NoError(t, err)
	require.Equal(t, application.StatusCorrectionsRequested, before.Application.Status())

	params := ApplicationParams{
		Applicant:    before.Application.Applicant(),
		Organization: "BuildRight Contracting LLC",
		Sector:       before.Application.Sector(),
		Description:  "Signed health and safety policy attached.",
		ESG: &application.ESGDetails{
			TradeLicense:            "TL-553901",
			EmployeeCount:           320,
			HasSustainabilityPolicy: true,
		},
	}
	after, err := env.applications.Update(ctx, correctionsESGID, params)
	require.NoError(t, err)

	assert.Equal(t, application.StatusSubmitted, after.Application.Status())
	assert.Equal(t, "BuildRight Contracting LLC", after.Application.Organization())
	assert.True(t, after.Application.ESG().HasSustainabilityPolicy)

	full, err := env.applications.Get(ctx, correctionsESGID)
	require.NoError(t, err)
	require.Len(t, full.Notes, len(before.Notes)+1)
	last := full.Notes[len(full.Notes)-1]
	assert.Equal(t, application.StatusCorrectionsRequested, last.FromStatus())
	assert.Equal(t, application.StatusSubmitted, last.ToStatus())
}

func TestApplications_UpdateRejectedWhenNotEditable(t *testing.T) {
	ctx := context.Background()
	env := newSeededEnv(t)

	before, err := env.applications.Get(ctx, underReviewKSID)
	require.NoError(t, err)

	params := ApplicationParams{
		Applicant:    before.Application.Applicant(),
		Organization: "Changed",
	}
	_, err = env.applications.Update(ctx, underReviewKSID, params)
	assert.ErrorIs(t, err, application.ErrNotEditable)

	after, err := env.applications.Get(ctx, underReviewKSID)
	require.NoError(t, err)
	assert.Equal(t, "LogiXpert", after.Application.Organization())
	assert.Len(t, after.Notes, len(before.Notes))
}

func TestApplications_AddNote(t *testing.T) {
	ctx := context.Background()
	env := newSeededEnv(t)

	note, err := env.applications.AddNote(ctx, submittedBoostID, application.AuthorApplicant, "Sara", "  Added the retail plan.  ", true)
	require.NoError(t, err)
	assert.NotZero(t, note.ID())
	assert.Equal(t, "Added the retail plan.", note.Content())
	assert.False(t, note.Internal(), "applicant notes are never internal")

	_, err = env.applications.AddNote(ctx, submittedBoostID, application.AuthorSystem, "x", "y", false)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.applications.AddNote(ctx, submittedBoostID, application.AuthorStaff, "Noura", "   ", false)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.applications.AddNote(ctx, "missing", application.AuthorStaff, "Noura", "Hello", false)
	assert.ErrorIs(t, err, database.ErrNotFound)
}
