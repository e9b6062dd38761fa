package seed

import (
	"strings"
	"testing"

	"github.com/chamberhub/bizportal/domain/application"
	"github.com/chamberhub/bizportal/domain/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServices(t *testing.T) {
	services, err := Services()
	require.NoError(t, err)
	require.NotEmpty(t, services)

	ids := make(map[string]bool)
	for _, s := range services {
		ids[s.ID()] = true
		assert.NotEmpty(t, s.Name().En, s.ID())
		assert.NotEmpty(t, s.Name().Ar, s.ID())
	}
	assert.True(t, ids["esg-label"])
	assert.True(t, ids["knowledge-sharing-sessions"])
	assert.True(t, ids["chamber-boost"])
}

func TestApplications_FiveDemoApplications(t *testing.T) {
	fixtures, err := Applications()
	require.NoError(t, err)
	require.Len(t, fixtures, 5)

	byStatus := make(map[application.Status]Fixture)
	for _, f := range fixtures {
		byStatus[f.Application.Status()] = f
		require.NoError(t, f.Application.Validate())
		require.NotEmpty(t, f.Notes)
		assert.Equal(t, application.AuthorSystem, f.Notes[0].AuthorType(), "first note records the submission")
	}

	approved, ok := byStatus[application.StatusApproved]
	require.True(t, ok)
	require.NotNil(t, approved.CertifiedAt)
	assert.Equal(t, application.ServiceTypeESG, approved.Application.ServiceType())

	rejected, ok := byStatus[application.StatusRejected]
	require.True(t, ok)
	assert.Nil(t, rejected.CertifiedAt)
	last := rejected.Notes[len(rejected.Notes)-1]
	assert.True(t, last.IsStatusChange())
	assert.True(t, strings.Contains(last.Content(), "does not meet the knowledge-sharing programme guidelines"))

	for _, st := range []application.Status{application.StatusSubmitted, application.StatusUnderReview, application.StatusCorrectionsRequested} {
		f, ok := byStatus[st]
		require.True(t, ok, st)
		assert.Nil(t, f.CertifiedAt, st)
	}
}

func TestApplications_NotesAreChronological(t *testing.T) {
	fixtures, err := Applications()
	require.NoError(t, err)

	for _, f := range fixtures {
		for i := 1; i < len(f.Notes); i++ {
			assert.False(t, f.Notes[i].CreatedAt().Before(f.Notes[i-1].CreatedAt()), f.Application.ID())
		}
	}
}

func TestCatalog(t *testing.T) {
	c, err := Catalog()
	require.NoError(t, err)

	for kind, n := range c.Counts() {
		assert.Positive(t, n, kind)
	}

	open := catalog.Apply(c.Tenders, catalog.Query{OpenOnly: true})
	assert.Equal(t, 2, open.Total)

	golden := catalog.Apply(c.Suppliers, catalog.Query{GoldenVendor: true})
	assert.Equal(t, 2, golden.Total)

	ds, ok := catalog.Find(c.Datasets, "ds-non-oil-exports")
	require.True(t, ok)
	latest, ok := ds.Latest()
	require.True(t, ok)
	assert.Equal(t, "47.5", latest.Value.String())
}
