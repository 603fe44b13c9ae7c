package chat

import (
	"context"

	"github.com/blevesearch/bleve/v2"
)

// SearchHit is one matching message from a full-text search.
type SearchHit struct {
	ConversationID string
	MessageID      string
	Role           string
	Content        string
	Score          float64
}

type messageDoc struct {
	ConversationID string `json:"conversation_id"`
	Title          string `json:"title"`
	Role           string `json:"role"`
	Content        string `json:"content"`
}

// SearchMessages runs a full-text query across every message in every
// conversation. The index is built in memory per query; for a personal
// data set this stays well under the cost of a model round trip.
func (s *Service) SearchMessages(ctx context.Context, query string, limit int) ([]SearchHit, error) {
	if limit <= 0 {
		limit = 10
	}

	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	index, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, err
	}
	defer index.Close()

	batch := index.NewBatch()
	for _, conv := range doc.Conversations {
		for _, msg := range conv.Messages {
			err := batch.Index(msg.ID, messageDoc{
				ConversationID: conv.ID,
				Title:          conv.Title,
				Role:           string(msg.Role),
				Content:        msg.Content,
			})
			if err != nil {
				return nil, err
			}
		}
	}
	if err := index.Batch(batch); err != nil {
		return nil, err
	}

	req := bleve.NewSearchRequestOptions(bleve.NewMatchQuery(query), limit, 0, false)
	req.Fields = []string{"conversation_id", "role", "content"}

	res, err := index.SearchInContext(ctx, req)
	if err != nil {
		return nil, err
	}

	hits := make([]SearchHit, 0, len(res.Hits))
	for _, hit := range res.Hits {
		h := SearchHit{MessageID: hit.ID, Score: hit.Score}
		if v, ok := hit.Fields["conversation_id"].(string); ok {
			h.ConversationID = v
		}
		if v, ok := hit.Fields["role"].(string); ok {
			h.Role = v
		}
		if v, ok := hit.Fields["content"].(string); ok {
			h.Content = v
		}
		hits = append(hits, h)
	}
	return hits, nil
}
