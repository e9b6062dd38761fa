package service

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/chamberhub/bizportal/domain/application"
	"github.com/chamberhub/bizportal/infrastructure/persistence"
	"github.com/chamberhub/bizportal/infrastructure/provider"
	"github.com/chamberhub/bizportal/internal/testdb"
	"github.com/stretchr/testify/require"
)

// Seeded application ids.
const (
	approvedESGID     = "3f6c1a52-8d0e-4b7a-9c21-5e4f7a9b0c11"
	underReviewKSID   = "7a2d9e04-1b3c-4f5e-8a6b-2c3d4e5f6a22"
	submittedBoostID  = "c41e7b93-5a6f-4d2c-b8e1-9f0a1b2c3d33"
	correctionsESGID  = "9d8c7b6a-5f4e-4d3c-a2b1-0e9f8d7c6b44"
	rejectedKSID      = "e5f4a3b2-c1d0-4e9f-8a7b-6c5d4e3f2a55"
	rejectionReasonKS = "does not meet the knowledge-sharing programme guidelines"
)

type testEnv struct {
	apps         persistence.ApplicationStore
	notes        persistence.NoteStore
	certificates persistence.CertificateStore
	applications *Applications
	review       *Review
	directory    *Directory
	maintenance  *Maintenance
	logger       *slog.Logger
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	db := testdb.New(t)
	logger := newTestEnvLogger()

	services := persistence.NewServiceStore(db)
	apps := persistence.NewApplicationStore(db)
	notes := persistence.NewNoteStore(db)
	certificates := persistence.NewCertificateStore(db)
	tx := persistence.NewTransactor(db)

	applications := NewApplications(apps, notes, certificates, services, tx, logger)
	return testEnv{
		apps:         apps,
		notes:        notes,
		certificates: certificates,
		applications: applications,
		review:       NewReview(applications, apps, notes, certificates, tx, logger),
		directory:    NewDirectory(services, logger),
		maintenance:  NewMaintenance(services, apps, notes, certificates, tx, logger),
		logger:       logger,
	}
}

func newTestEnvLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newSeededEnv returns an environment holding the demo data.
func newSeededEnv(t *testing.T) testEnv {
	t.Helper()
	env := newTestEnv(t)
	_, err := env.maintenance.Seed(context.Background())
	require.NoError(t, err)
	return env
}

func esgParams() ApplicationParams {
	return ApplicationParams{
		ServiceType:  application.ServiceTypeESG,
		ServiceID:    "esg-label",
		Applicant:    application.Applicant{Name: "Huda Salem", Email: "Huda@Atlas.example"},
		Organization: "Atlas Metals",
		Sector:       "Manufacturing",
		Description:  "Steel fabricator applying for the ESG label.",
		ESG: &application.ESGDetails{
			SubSector:     "Metals",
			TradeLicense:  "TL-1001",
			EmployeeCount: 90,
			Frameworks:    []string{"GRI"},
		},
	}
}

// fakeText implements provider.TextGenerator for testing.
type fakeText struct {
	mu       sync.Mutex
	content  string
	err      error
	requests []provider.ChatCompletionRequest
}

func (f *fakeText) ChatCompletion(_ context.Context, req provider.ChatCompletionRequest) (provider.ChatCompletionResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return provider.ChatCompletionResponse{}, f.err
	}
	return provider.NewChatCompletionResponse(f.content, "stop", provider.NewUsage(10, 5, 15)), nil
}

func (f *fakeText) lastPrompt() (system, user string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	msgs := f.requests[len(f.requests)-1].Messages()
	return msgs[0].Content(), msgs[1].Content()
}

// keywordEmbedder embeds text as a bag of the configured vocabulary.
type keywordEmbedder struct {
	vocabulary []string
	err        error
}

func (e keywordEmbedder) Embed(_ context.Context, req provider.EmbeddingRequest) (provider.EmbeddingResponse, error) {
	if e.err != nil {
		return provider.EmbeddingResponse{}, e.err
	}
	texts := req.Texts()
	vectors := make([][]float64, len(texts))
	for i, text := range texts {
		lower := strings.ToLower(text)
		vec := make([]float64, len(e.vocabulary))
		for j, word := range e.vocabulary {
			vec[j] = float64(strings.Count(lower, word))
		}
		vectors[i] = vec
	}
	return provider.NewEmbeddingResponse(vectors, provider.NewUsage(len(texts), 0, len(texts))), nil
}
