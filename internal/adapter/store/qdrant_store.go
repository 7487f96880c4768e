package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"sqlgate/internal/domain/entity"
	"sqlgate/internal/domain/repository"
)

// Payload keys inside the qdrant collections.
const (
	payloadQuestion = "question"
	payloadSQL      = "sql"
	payloadDDL      = "ddl"
	payloadDoc      = "documentation"
)

// Collections names the three logical knowledge collections.
type Collections struct {
	Examples string
	DDL      string
	Docs     string
}

// QdrantStore adapts the qdrant similarity service to the knowledge
// store capability. Every lookup embeds the query text and returns the
// top-K nearest points of the respective collection.
type QdrantStore struct {
	client      *qdrant.Client
	embedder    repository.Embedder
	collections Collections
	topK        uint64
}

func NewQdrantStore(client *qdrant.Client, embedder repository.Embedder, collections Collections, topK int) *QdrantStore {
	return &QdrantStore{
		client:      client,
		embedder:    embedder,
		collections: collections,
		topK:        uint64(topK),
	}
}

// InitCollections creates any missing collection with a cosine-distance
// vector index of the given dimension. Existing collections are left
// untouched.
func (s *QdrantStore) InitCollections(ctx context.Context, dim uint64) error {
	for _, name := range []string{s.collections.Examples, s.collections.DDL, s.collections.Docs} {
		_, err := s.client.GetCollectionInfo(ctx, name)
		if err == nil {
			continue
		}
		st, ok := status.FromError(err)
		if !ok || st.Code() != codes.NotFound {
			return err
		}
		err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: name,
			VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
				Size:     dim,
				Distance: qdrant.Distance_Cosine,
			}),
		})
		if err != nil {
			return fmt.Errorf("failed to create collection %s: %w", name, err)
		}
	}
	return nil
}

func (s *QdrantStore) FindSimilarExamples(ctx context.Context, query string) ([]entity.QuestionSQL, error) {
	hits, err := s.query(ctx, s.collections.Examples, query)
	if err != nil {
		return nil, err
	}
	out := make([]entity.QuestionSQL, 0, len(hits))
	for _, hit := range hits {
		out = append(out, entity.QuestionSQL{
			Question: hit.Payload[payloadQuestion].GetStringValue(),
			SQL:      hit.Payload[payloadSQL].GetStringValue(),
		})
	}
	return out, nil
}

func (s *QdrantStore) FindRelevantDDL(ctx context.Context, query string) ([]entity.DDLEntry, error) {
	hits, err := s.query(ctx, s.collections.DDL, query)
	if err != nil {
		return nil, err
	}
	out := make([]entity.DDLEntry, 0, len(hits))
	for _, hit := range hits {
		out = append(out, entity.DDLEntry{Statement: hit.Payload[payloadDDL].GetStringValue()})
	}
	return out, nil
}

func (s *QdrantStore) FindRelevantDocs(ctx context.Context, query string) ([]entity.DocEntry, error) {
	hits, err := s.query(ctx, s.collections.Docs, query)
	if err != nil {
		return nil, err
	}
	out := make([]entity.DocEntry, 0, len(hits))
	for _, hit := range hits {
		out = append(out, entity.DocEntry{Text: hit.Payload[payloadDoc].GetStringValue()})
	}
	return out, nil
}

// query embeds the text and returns the scored points of one
// collection, ordered by descending similarity.
func (s *QdrantStore) query(ctx context.Context, collection, text string) ([]*qdrant.ScoredPoint, error) {
	vector, err := s.embedder.CreateEmbedding(ctx, text)
	if err != nil {
		return nil, &entity.RetrievalError{Collection: collection, Err: err}
	}

	res, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(s.topK),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, &entity.RetrievalError{Collection: collection, Err: err}
	}
	return res, nil
}

func (s *QdrantStore) AddExample(ctx context.Context, pair entity.QuestionSQL) error {
	return s.upsert(ctx, s.collections.Examples, pair.Question, map[string]any{
		payloadQuestion: pair.Question,
		payloadSQL:      pair.SQL,
	})
}

func (s *QdrantStore) AddDDL(ctx context.Context, ddl entity.DDLEntry) error {
	return s.upsert(ctx, s.collections.DDL, ddl.Statement, map[string]any{
		payloadDDL: ddl.Statement,
	})
}

func (s *QdrantStore) AddDoc(ctx context.Context, doc entity.DocEntry) error {
	return s.upsert(ctx, s.collections.Docs, doc.Text, map[string]any{
		payloadDoc: doc.Text,
	})
}

func (s *QdrantStore) upsert(ctx context.Context, collection, text string, payload map[string]any) error {
	vector, err := s.embedder.CreateEmbedding(ctx, text)
	if err != nil {
		return fmt.Errorf("embedding for %s: %w", collection, err)
	}

	_, err = s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collection,
		Points: []*qdrant.PointStruct{
			{
				Id:      qdrant.NewIDUUID(uuid.NewString()),
				Vectors: qdrant.NewVectors(vector...),
				Payload: qdrant.NewValueMap(payload),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("upsert into %s: %w", collection, err)
	}
	return nil
}
