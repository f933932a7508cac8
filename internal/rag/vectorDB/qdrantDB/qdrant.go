package qdrantDB

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/communitydesk/helpdesk/internal/config"
	"github.com/communitydesk/helpdesk/internal/domain/catalog"
	"github.com/communitydesk/helpdesk/internal/rag/vectorDB"
	"github.com/communitydesk/helpdesk/pkg/logx"
	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

var logger *logx.Logger
var instance *ClientHolder
var once sync.Once

// ClientHolder wraps the qdrant client together with the collection
// layout from config.
type ClientHolder struct {
	client          *qdrant.Client
	collection      string
	cacheCollection string
	dimension       uint64
	cacheCutoff     float32
	scoreThreshold  float32
}

func GetClient(ctx context.Context, cfg *config.Config) vectorDB.DataProcessor {
	once.Do(func() {
		logger = logx.NewLogger("Qdrant")
		holder := newClient(ctx, cfg)
		if holder != nil {
			instance = holder
			go closeOnDone(ctx, holder.client)
		}
	})

	if instance == nil {
		return nil
	}
	return instance
}

func newClient(ctx context.Context, cfg *config.Config) *ClientHolder {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:     cfg.Qdrant.Host,
		Port:     cfg.Qdrant.GrpcPort,
		UseTLS:   cfg.Qdrant.UseTLS,
		PoolSize: cfg.Qdrant.PoolSize,
	})
	if err != nil {
		logger.Error("could not instantiate qdrant client", "error", err)
		return nil
	}

	holder := &ClientHolder{
		client:          client,
		collection:      cfg.Qdrant.Collection,
		cacheCollection: cfg.Qdrant.CacheCollection,
		dimension:       uint64(cfg.Embedding.Dimension),
		cacheCutoff:     float32(cfg.Retrieval.CacheCutoff),
		scoreThreshold:  float32(cfg.Retrieval.SimilarityThreshold),
	}

	if err := holder.EnsureCollections(ctx); err != nil {
		logger.Error("could not create collections", "error", err)
		return nil
	}
	return holder
}

func closeOnDone(ctx context.Context, client *qdrant.Client) {
	<-ctx.Done()
	logger.Info("Shutting down qdrant client")
	if err := client.Close(); err != nil {
		logger.Error("could not close qdrant client", "error", err)
	}
}

func (db *ClientHolder) EnsureCollections(ctx context.Context) error {
	for _, name := range []string{db.collection, db.cacheCollection} {
		if err := db.createCollection(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

func (db *ClientHolder) createCollection(ctx context.Context, name string) error {
	if name == "" {
		return errors.New("empty collection name")
	}

	exists, err := db.client.CollectionExists(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return db.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     db.dimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
}

// SearchServices runs a cosine query over the knowledge base. Service
// records come back as catalog.Retrieved; document chunks only
// contribute context snippets for the LLM.
func (db *ClientHolder) SearchServices(ctx context.Context, vector []float32, filter vectorDB.SearchFilter, topK int) ([]catalog.Retrieved, []string, error) {
	loggr := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	query := &qdrant.QueryPoints{
		CollectionName: db.collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(topK)),
		WithPayload:    qdrant.NewWithPayload(true),
	}
	if db.scoreThreshold > 0 {
		query.ScoreThreshold = qdrant.PtrOf(db.scoreThreshold)
	}
	if f := buildFilter(filter); f != nil {
		query.Filter = f
	}

	result, err := db.client.Query(ctx, query)
	if err != nil {
		loggr.Error("Error querying qdrant", "error", err)
		return nil, nil, err
	}

	var retrieved []catalog.Retrieved
	var snippets []string
	for _, hit := range result {
		switch hit.Payload["kind"].GetStringValue() {
		case kindChunk:
			snippets = append(snippets, fmt.Sprintf("From document %q (page %d): %s",
				hit.Payload["doc_name"].GetStringValue(),
				hit.Payload["page_num"].GetIntegerValue(),
				hit.Payload["content"].GetStringValue()))
		default:
			svc := serviceFromPayload(hit.Payload)
			retrieved = append(retrieved, catalog.Retrieved{
				Service:    svc,
				Similarity: float64(hit.Score),
			})
		}
	}

	loggr.Debug("vector search done", "services", len(retrieved), "snippets", len(snippets))
	return retrieved, snippets, nil
}

func buildFilter(filter vectorDB.SearchFilter) *qdrant.Filter {
	var must []*qdrant.Condition
	if filter.Locality != "" {
		must = append(must, qdrant.NewMatchKeyword("locality", filter.Locality))
	}
	if filter.Category != "" {
		must = append(must, qdrant.NewMatchKeyword("category", filter.Category))
	}
	if len(must) == 0 {
		return nil
	}
	return &qdrant.Filter{Must: must}
}

func (db *ClientHolder) UpsertServices(ctx context.Context, services []catalog.Service, vectors [][]float32) error {
	if len(services) != len(vectors) {
		return fmt.Errorf("mismatch: got %d services but %d vectors", len(services), len(vectors))
	}

	points := make([]*qdrant.PointStruct, len(services))
	for i, svc := range services {
		points[i] = &qdrant.PointStruct{
			// deterministic point id so re-ingesting a record updates it
			Id:      qdrant.NewID(uuid.NewSHA1(uuid.NameSpaceOID, []byte(svc.ID)).String()),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: qdrant.NewValueMap(servicePayload(svc)),
		}
	}

	_, err := db.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: db.collection,
		Points:         points,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("qdrant upsert failed: %w", err)
	}
	return nil
}

func (db *ClientHolder) UpsertChunks(ctx context.Context, chunks []catalog.DocChunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("mismatch: got %d chunks but %d vectors", len(chunks), len(vectors))
	}

	points := make([]*qdrant.PointStruct, len(chunks))
	for i, chunk := range chunks {
		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(chunk.ChunkID),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: qdrant.NewValueMap(map[string]any{
				"kind":          kindChunk,
				"content":       chunk.Content,
				"page_num":      chunk.PageNum,
				"source_doc_id": chunk.Doc.ID,
				"doc_name":      chunk.Doc.Name,
				"chunk_order":   chunk.ChunkPageOrder,
				"chunk_id":      chunk.ChunkID,
				"ingested_at":   chunk.Doc.IngestedAt.Unix(),
			}),
		}
	}

	_, err := db.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: db.collection,
		Points:         points,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("qdrant upsert failed: %w", err)
	}
	return nil
}

func (db *ClientHolder) Count(ctx context.Context) (uint64, error) {
	return db.client.Count(ctx, &qdrant.CountPoints{
		CollectionName: db.collection,
	})
}

func (db *ClientHolder) CountByCategory(ctx context.Context, category string) (uint64, error) {
	return db.client.Count(ctx, &qdrant.CountPoints{
		CollectionName: db.collection,
		Filter: &qdrant.Filter{
			Must: []*qdrant.Condition{qdrant.NewMatchKeyword("category", category)},
		},
	})
}

func (db *ClientHolder) ServicesByCategory(ctx context.Context, category string, limit int) ([]catalog.Service, error) {
	points, err := db.client.Scroll(ctx, &qdrant.ScrollPoints{
		CollectionName: db.collection,
		Filter: &qdrant.Filter{
			Must: []*qdrant.Condition{qdrant.NewMatchKeyword("category", category)},
		},
		Limit:       qdrant.PtrOf(uint32(limit)),
		WithPayload: qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, err
	}

	var services []catalog.Service
	for _, p := range points {
		if p.Payload["kind"].GetStringValue() == kindChunk {
			continue
		}
		services = append(services, serviceFromPayload(p.Payload))
	}
	return services, nil
}
