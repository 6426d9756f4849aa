// Package ideasearch maintains the Milvus index behind semantic idea search.
// Index updates arrive over MQ so a slow embedding call never blocks the
// CRUD request that triggered it.
package ideasearch

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/TomarJatin/Ai-Influencer-sub000/config"
	"github.com/TomarJatin/Ai-Influencer-sub000/dao"
	"github.com/TomarJatin/Ai-Influencer-sub000/response"
	"github.com/TomarJatin/Ai-Influencer-sub000/utils"

	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/milvus-io/milvus/client/v2/milvusclient"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/vectorstores"
	v2 "github.com/tmc/langchaingo/vectorstores/milvus/v2"
)

const (
	DefaultCollectionName = "idea_doc"

	defaultEmbeddingBatchSize = 10
	embeddingTimeout          = 60 * time.Second

	ActionIndex  = "index"
	ActionDelete = "delete"
)

type IndexMessage struct {
	Action    string `json:"action"`
	IdeaID    uint   `json:"idea_id"`
	UserEmail string `json:"user_email"`
}

var (
	storeOnce sync.Once
	storeErr  error
	store     vectorstores.VectorStore
)

func vectorStore(ctx context.Context) (vectorstores.VectorStore, error) {
	storeOnce.Do(func() {
		opts := []openai.Option{
			openai.WithEmbeddingModel(config.Cfg.Model.EmbeddingModel),
			openai.WithToken(config.Cfg.Providers.OpenAI.APIKey),
			openai.WithHTTPClient(utils.NewHTTPClient(utils.WithTimeout(embeddingTimeout))),
		}
		if config.Cfg.Providers.OpenAI.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(config.Cfg.Providers.OpenAI.BaseURL))
		}

		client, err := openai.New(opts...)
		if err != nil {
			storeErr = fmt.Errorf("failed to create embedder client: %v", err)
			return
		}

		embedder, err := embeddings.NewEmbedder(client,
			embeddings.WithBatchSize(defaultEmbeddingBatchSize),
			embeddings.WithStripNewLines(false),
		)
		if err != nil {
			storeErr = fmt.Errorf("failed to create embedder: %v", err)
			return
		}

		store, storeErr = v2.New(ctx, milvusclient.ClientConfig{
			Address: config.Cfg.Milvus.Endpoint,
			APIKey:  config.Cfg.Milvus.APIKey,
		},
			v2.WithEmbedder(embedder),
			v2.WithCollectionName(DefaultCollectionName),
		)
		if storeErr != nil {
			storeErr = fmt.Errorf("failed to create milvus store: %v", storeErr)
		}
	})
	return store, storeErr
}

// HandleIndexMessage applies one index or delete task from MQ.
func HandleIndexMessage(ctx context.Context, msg *primitive.MessageExt) error {
	var indexMsg IndexMessage
	if err := json.Unmarshal(msg.Body, &indexMsg); err != nil {
		return fmt.Errorf("failed to unmarshal message body: %v", err)
	}

	switch indexMsg.Action {
	case ActionIndex:
		return indexIdea(ctx, &indexMsg)
	case ActionDelete:
		return deleteIdea(ctx, indexMsg.IdeaID)
	default:
		return fmt.Errorf("unknown index action: %s", indexMsg.Action)
	}
}

// indexIdea re-embeds the idea. Any stale entry from a previous version is
// removed first so an update never leaves two vectors behind.
func indexIdea(ctx context.Context, msg *IndexMessage) error {
	idea, err := dao.GetIdea(msg.UserEmail, msg.IdeaID)
	if err != nil {
		// Deleted before the message was consumed.
		if err == dao.ErrIdeaNotFound {
			return nil
		}
		return fmt.Errorf("failed to load idea %d: %v", msg.IdeaID, err)
	}

	if err := deleteIdea(ctx, idea.ID); err != nil {
		return err
	}

	vs, err := vectorStore(ctx)
	if err != nil {
		return err
	}

	doc := schema.Document{
		PageContent: idea.Title + "\n" + idea.Content,
		Metadata: map[string]any{
			"idea_id":    int64(idea.ID),
			"user_email": idea.UserEmail,
		},
	}

	if _, err := vs.AddDocuments(ctx, []schema.Document{doc}); err != nil {
		return fmt.Errorf("failed to add idea %d to vector store: %v", idea.ID, err)
	}

	return nil
}

func deleteIdea(ctx context.Context, ideaID uint) error {
	client, err := milvusclient.New(ctx, &milvusclient.ClientConfig{
		Address: config.Cfg.Milvus.Endpoint,
		APIKey:  config.Cfg.Milvus.APIKey,
	})
	if err != nil {
		return fmt.Errorf("failed to create milvus client: %v", err)
	}
	defer client.Close(ctx)

	_, err = client.Delete(ctx, milvusclient.NewDeleteOption(DefaultCollectionName).
		WithExpr(fmt.Sprintf("idea_id == %d", ideaID)))
	if err != nil {
		return fmt.Errorf("failed to delete idea %d from vector store: %v", ideaID, err)
	}

	return nil
}

// Search runs a semantic query over the caller's own ideas.
func Search(ctx context.Context, email, query string, limit int) ([]response.IdeaSearchHit, error) {
	vs, err := vectorStore(ctx)
	if err != nil {
		return nil, err
	}

	docs, err := vs.SimilaritySearch(ctx, query, limit,
		vectorstores.WithFilters(fmt.Sprintf("user_email == %q", email)))
	if err != nil {
		return nil, fmt.Errorf("failed to search vector store: %v", err)
	}

	hits := make([]response.IdeaSearchHit, 0, len(docs))
	for _, doc := range docs {
		hit := response.IdeaSearchHit{
			Text:  doc.PageContent,
			Score: doc.Score,
		}
		if id, ok := doc.Metadata["idea_id"].(int64); ok {
			hit.IdeaID = uint(id)
		}
		hits = append(hits, hit)
	}

	return hits, nil
}
