package bizportal_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/chamberhub/bizportal"
	"github.com/chamberhub/bizportal/application/service"
	"github.com/chamberhub/bizportal/domain/application"
	"github.com/chamberhub/bizportal/domain/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rejectedKSID = "e5f4a3b2-c1d0-4e9f-8a7b-6c5d4e3f2a55"

type countingCloser struct {
	calls int
	err   error
}

func (c *countingCloser) Close() error {
	c.calls++
	return c.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSeededClient(t *testing.T, opts ...bizportal.Option) *bizportal.Client {
	t.Helper()
	base := []bizportal.Option{
		bizportal.WithSQLite(filepath.Join(t.TempDir(), "data", "portal.db")),
		bizportal.WithSeed(true),
		bizportal.WithLogger(quietLogger()),
	}
	client, err := bizportal.New(append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestNew_RequiresDatabase(t *testing.T) {
	_, err := bizportal.New(bizportal.WithLogger(quietLogger()))
	assert.ErrorIs(t, err, bizportal.ErrNoDatabase)
}

func TestNew_SeedsDirectoryAndApplications(t *testing.T) {
	ctx := context.Background()
	client := newSeededClient(t)

	services, err := client.Directory.List(ctx, service.DirectoryFilter{Query: "membership"})
	require.NoError(t, err)
	assert.NotEmpty(t, services)

	detail, err := client.Applications.Get(ctx, rejectedKSID)
	require.NoError(t, err)
	assert.Equal(t, application.StatusRejected, detail.Application.Status())
	assert.Nil(t, detail.Certificate)
	require.NotEmpty(t, detail.Notes)
	assert.Contains(t, detail.Notes[len(detail.Notes)-1].Content(), "does not meet the knowledge-sharing programme guidelines")

	assert.Positive(t, client.Catalog.Deals.Len())
}

func TestNew_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "portal.db")

	first, err := bizportal.New(bizportal.WithSQLite(path), bizportal.WithSeed(true), bizportal.WithLogger(quietLogger()))
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := bizportal.New(bizportal.WithSQLite(path), bizportal.WithLogger(quietLogger()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	_, err = second.Applications.Get(ctx, rejectedKSID)
	require.NoError(t, err)
}

func TestNew_WithoutProviderAssistantIsUnavailable(t *testing.T) {
	client := newSeededClient(t, bizportal.WithCatalog(catalog.Catalog{}))

	_, err := client.Assistant.Precheck(context.Background(), service.PrecheckInput{
		ServiceType:  application.ServiceTypeESG,
		Organization: "Atlas Logistics",
	})
	assert.ErrorIs(t, err, service.ErrAIUnavailable)
	assert.Zero(t, client.Catalog.Deals.Len())
}

func TestClient_Close(t *testing.T) {
	closer := &countingCloser{err: errors.New("already gone")}
	client, err := bizportal.New(
		bizportal.WithSQLite(filepath.Join(t.TempDir(), "portal.db")),
		bizportal.WithLogger(quietLogger()),
		bizportal.WithCloser(closer),
	)
	require.NoError(t, err)

	require.NoError(t, client.Close())
	assert.Equal(t, 1, closer.calls)
	assert.ErrorIs(t, client.Close(), bizportal.ErrClientClosed)
	assert.Equal(t, 1, closer.calls)
}
