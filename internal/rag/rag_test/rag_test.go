package rag_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/communitydesk/helpdesk/internal/config"
	"github.com/communitydesk/helpdesk/internal/domain/catalog"
	"github.com/communitydesk/helpdesk/internal/domain/jobModel"
	"github.com/communitydesk/helpdesk/internal/rag"
	"github.com/communitydesk/helpdesk/internal/rag/vectorDB"
)

func testConfig() *config.Config {
	cfg := config.Default()
	return cfg
}

func TestProcessRequest_Scenarios(t *testing.T) {
	tests := []struct {
		name               string
		question           string
		setupMocks         func(e *MockEmbedder, v *MockVectorDB, l *MockLLM)
		expectedStep       jobModel.InternalStatus
		expectedStatus     jobModel.JobStatus
		expectedAnswer     string
		expectedConfidence jobModel.Confidence
		answerContains     string
		expectedErr        string
	}{
		{
			name:     "Success_Full_Flow",
			question: "Where is the nearest hospital in Adyar?",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				l.OnGenerate = func(ctx context.Context, sys string, user string) (string, error) {
					return "final answer", nil
				}
			},
			expectedStep:       jobModel.Complete,
			expectedStatus:     jobModel.JobStatusQueued,
			expectedAnswer:     "final answer",
			expectedConfidence: jobModel.ConfidenceHigh,
		},
		{
			name:     "Success_Cache_Hit",
			question: "Where is the nearest hospital?",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				v.OnGetCachedAnswer = func(ctx context.Context, emb []float32) (string, bool, error) {
					return "cached answer", true, nil
				}
			},
			expectedStep:       jobModel.Complete,
			expectedStatus:     jobModel.JobStatusQueued,
			expectedAnswer:     "cached answer",
			expectedConfidence: jobModel.ConfidenceHigh,
		},
		{
			name:       "OffTopic_Rejected_Without_Model_Call",
			question:   "Tell me a joke about penguins",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				e.OnGetEmbedding = func(ctx context.Context, text string) ([]float32, error) {
					t.Error("Embedding should not run for off-topic queries")
					return nil, nil
				}
			},
			expectedStep:       jobModel.Complete,
			expectedStatus:     jobModel.JobStatusQueued,
			answerContains:     "I can only help with community service queries",
			expectedConfidence: jobModel.ConfidenceLow,
		},
		{
			name:     "NoResults_Escalates",
			question: "water tanker booking office",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				v.OnSearchServices = func(ctx context.Context, vec []float32, f vectorDB.SearchFilter, topK int) ([]catalog.Retrieved, []string, error) {
					return nil, nil, nil
				}
				l.OnGenerate = func(ctx context.Context, sys string, user string) (string, error) {
					t.Error("LLM should not run when nothing was retrieved")
					return "", nil
				}
			},
			expectedStep:       jobModel.Complete,
			expectedStatus:     jobModel.JobStatusQueued,
			answerContains:     "customer care representative",
			expectedConfidence: jobModel.ConfidenceLow,
		},
		{
			name:     "TwoResults_MediumConfidence",
			question: "hospital near velachery",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				v.OnSearchServices = func(ctx context.Context, vec []float32, f vectorDB.SearchFilter, topK int) ([]catalog.Retrieved, []string, error) {
					return []catalog.Retrieved{
						{Service: catalog.Service{ID: "a", ServiceName: "A", Category: "Healthcare", Description: "d"}, Similarity: 0.95},
						{Service: catalog.Service{ID: "b", ServiceName: "B", Category: "Healthcare", Description: "d"}, Similarity: 0.6},
					}, nil, nil
				}
				l.OnGenerate = func(ctx context.Context, sys string, user string) (string, error) {
					return "two hits answer", nil
				}
			},
			expectedStep:       jobModel.Complete,
			expectedStatus:     jobModel.JobStatusQueued,
			expectedAnswer:     "two hits answer",
			expectedConfidence: jobModel.ConfidenceMedium,
		},
		{
			name:     "Failure_Embedding",
			question: "hospital timings",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				e.OnGetEmbedding = func(ctx context.Context, text string) ([]float32, error) {
					return nil, errors.New("api limit")
				}
			},
			expectedStatus: jobModel.JobStatusError,
			expectedErr:    "EMBEDDING_FAILURE",
		},
		{
			name:     "Failure_Vector_Search",
			question: "hospital timings",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				v.OnSearchServices = func(ctx context.Context, vec []float32, f vectorDB.SearchFilter, topK int) ([]catalog.Retrieved, []string, error) {
					return nil, nil, errors.New("db timeout")
				}
			},
			expectedStatus: jobModel.JobStatusError,
			expectedErr:    "VECTOR_DB_FAILURE",
		},
		{
			name:     "Failure_LLM_Generation",
			question: "hospital timings",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				l.OnGenerate = func(ctx context.Context, sys string, user string) (string, error) {
					return "", errors.New("provider down")
				}
			},
			expectedStatus: jobModel.JobStatusError,
			expectedErr:    "LLM_GENERATION_FAILURE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mEmbed := &MockEmbedder{}
			mVec := &MockVectorDB{}
			mLLM := &MockLLM{}

			tt.setupMocks(mEmbed, mVec, mLLM)

			s := rag.NewService(mVec, mLLM, mEmbed, testConfig())

			ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
			job := jobModel.Job{
				Id:     "test-job",
				Status: jobModel.JobStatusQueued,
				JobPayload: jobModel.JobPayload{
					Question: tt.question,
				},
			}

			result := s.ProcessRequest(ctx, job, []string{})

			if result.Status != tt.expectedStatus {
				t.Errorf("Status got %v, want %v", result.Status, tt.expectedStatus)
			}

			if tt.expectedAnswer != "" && result.JobPayload.Answer != tt.expectedAnswer {
				t.Errorf("Answer got %s, want %s", result.JobPayload.Answer, tt.expectedAnswer)
			}

			if tt.answerContains != "" && !strings.Contains(result.JobPayload.Answer, tt.answerContains) {
				t.Errorf("Answer %q does not contain %q", result.JobPayload.Answer, tt.answerContains)
			}

			if tt.expectedConfidence != "" && result.JobPayload.Confidence != tt.expectedConfidence {
				t.Errorf("Confidence got %v, want %v", result.JobPayload.Confidence, tt.expectedConfidence)
			}

			if tt.expectedErr != "" && result.Error.Code != http.StatusInternalServerError {
				t.Errorf("Error Code got %d, want %s", result.Error.Code, tt.expectedErr)
			}
		})
	}
}

func TestProcessRequest_StripsHTML(t *testing.T) {
	mLLM := &MockLLM{
		OnGenerate: func(ctx context.Context, sys string, user string) (string, error) {
			return "<div>Visit the <strong>clinic</strong></div>", nil
		},
	}

	s := rag.NewService(&MockVectorDB{}, mLLM, &MockEmbedder{}, testConfig())

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
	job := jobModel.Job{
		Id:         "strip-job",
		JobPayload: jobModel.JobPayload{Question: "nearest clinic"},
	}

	result := s.ProcessRequest(ctx, job, []string{})

	if result.JobPayload.Answer != "Visit the clinic" {
		t.Errorf("Expected HTML to be stripped, got %q", result.JobPayload.Answer)
	}
}

func TestProcessRequest_BelowThresholdEscalates(t *testing.T) {
	mVec := &MockVectorDB{
		OnSearchServices: func(ctx context.Context, vec []float32, f vectorDB.SearchFilter, topK int) ([]catalog.Retrieved, []string, error) {
			return []catalog.Retrieved{
				{Service: catalog.Service{ID: "a", ServiceName: "A", Category: "Healthcare", Description: "d"}, Similarity: 0.1},
			}, nil, nil
		},
	}
	mLLM := &MockLLM{
		OnGenerate: func(ctx context.Context, sys string, user string) (string, error) {
			t.Error("LLM should not run when every hit is below the similarity floor")
			return "", nil
		},
	}

	cfg := testConfig()
	cfg.Retrieval.SimilarityThreshold = 0.9
	s := rag.NewService(mVec, mLLM, &MockEmbedder{}, cfg)

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
	job := jobModel.Job{
		Id:         "threshold-job",
		Status:     jobModel.JobStatusQueued,
		JobPayload: jobModel.JobPayload{Question: "nearest clinic"},
	}

	result := s.ProcessRequest(ctx, job, []string{})

	if !strings.Contains(result.JobPayload.Answer, "customer care representative") {
		t.Errorf("Expected escalation answer, got %q", result.JobPayload.Answer)
	}
	if result.JobPayload.Confidence != jobModel.ConfidenceLow {
		t.Errorf("Confidence got %v, want %v", result.JobPayload.Confidence, jobModel.ConfidenceLow)
	}
	if len(result.JobPayload.Services) != 0 {
		t.Errorf("Sub-threshold hits should be dropped, got %d", len(result.JobPayload.Services))
	}
}

func TestProcessRequest_CacheSaveSurvivesJobCancellation(t *testing.T) {
	released := make(chan struct{})
	saved := make(chan error, 1)

	mVec := &MockVectorDB{
		OnSaveToCache: func(ctx context.Context, id string, vec []float32, answer string) error {
			<-released
			saved <- ctx.Err()
			return nil
		},
	}
	mLLM := &MockLLM{
		OnGenerate: func(ctx context.Context, sys string, user string) (string, error) {
			return "answer worth caching", nil
		},
	}

	s := rag.NewService(mVec, mLLM, &MockEmbedder{}, testConfig())

	jobContext, cancel := context.WithCancel(context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace"))
	job := jobModel.Job{
		Id:         "cache-job",
		Status:     jobModel.JobStatusQueued,
		JobPayload: jobModel.JobPayload{Question: "nearest clinic"},
	}

	s.ProcessRequest(jobContext, job, []string{})

	// The worker cancels the job context the moment the job completes;
	// the cache write must not be torn down with it.
	cancel()
	close(released)

	if err := <-saved; err != nil {
		t.Errorf("Cache save ran with a cancelled context: %v", err)
	}
}

func TestIngestRecords_Scenarios(t *testing.T) {
	tests := []struct {
		name           string
		records        []catalog.Service
		setupMocks     func(e *MockEmbedder, v *MockVectorDB)
		expectedStatus jobModel.JobStatus
	}{
		{
			name: "Ingestion_Success",
			records: []catalog.Service{
				{ID: "svc_001", ServiceName: "Apollo Hospital", Category: "Healthcare", Description: "Multi speciality"},
			},
			setupMocks:     func(e *MockEmbedder, v *MockVectorDB) {},
			expectedStatus: jobModel.JobStatusComplete,
		},
		{
			name: "Failure_Collection_Creation",
			records: []catalog.Service{
				{ID: "svc_001", ServiceName: "Apollo Hospital", Category: "Healthcare", Description: "Multi speciality"},
			},
			setupMocks: func(e *MockEmbedder, v *MockVectorDB) {
				v.OnEnsureCollections = func(ctx context.Context) error {
					return errors.New("connection refused")
				}
			},
			expectedStatus: jobModel.JobStatusError,
		},
		{
			name:           "Failure_All_Records_Invalid",
			records:        []catalog.Service{{ID: "", ServiceName: "Nameless"}},
			setupMocks:     func(e *MockEmbedder, v *MockVectorDB) {},
			expectedStatus: jobModel.JobStatusError,
		},
		{
			name: "Failure_Upsert",
			records: []catalog.Service{
				{ID: "svc_001", ServiceName: "Apollo Hospital", Category: "Healthcare", Description: "Multi speciality"},
			},
			setupMocks: func(e *MockEmbedder, v *MockVectorDB) {
				v.OnUpsertServices = func(ctx context.Context, s []catalog.Service, vec [][]float32) error {
					return errors.New("disk full")
				}
			},
			expectedStatus: jobModel.JobStatusError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mEmbed := &MockEmbedder{}
			mVec := &MockVectorDB{}

			tt.setupMocks(mEmbed, mVec)

			s := rag.NewService(mVec, &MockLLM{}, mEmbed, testConfig())

			ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "ingest-trace")
			job := jobModel.Job{
				Id: "ingest-job-1",
				JobPayload: jobModel.JobPayload{
					IngestRecords: tt.records,
				},
			}

			result := s.IngestRecords(ctx, job)

			if result.Status != tt.expectedStatus {
				t.Errorf("Status got %v, want %v", result.Status, tt.expectedStatus)
			}
		})
	}
}
