package service

import (
	"encoding/json"
	"fmt"
	"html"
	"strconv"
	"strings"

	"anoa.com/magangportal/internal/entity"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

const PostingsIndex = "postings"

// PostingIndex is the full-text index over postings. Documents only carry
// what is needed to match a query; results are resolved against the store.
type PostingIndex interface {
	IndexPostings(postings ...*entity.Posting) error
	DeletePostings(ids ...uint) error
	SearchPostings(query string, limit int) ([]uint, error)
}

type meiliSearchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
	logger    *zap.Logger
}

// NewMeiliSearchService returns nil when host is empty so callers fall back
// to database search.
func NewMeiliSearchService(host, apiKey string, logger *zap.Logger) PostingIndex {
	if host == "" {
		logger.Warn("MEILISEARCH_HOST is not set, posting search uses the database")
		return nil
	}
	if !strings.HasPrefix(host, "http") {
		host = "http://" + host + ":7700"
	}

	client := meilisearch.New(host, meilisearch.WithAPIKey(apiKey))
	return newMeiliSearchService(client, logger)
}

func newMeiliSearchService(client meilisearch.ServiceManager, logger *zap.Logger) *meiliSearchService {
	s := &meiliSearchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger,
	}
	s.initIndexes()
	return s
}

func (s *meiliSearchService) initIndexes() {
	index := s.client.Index(PostingsIndex)

	searchable := []string{"title", "department_name", "description"}
	if _, err := index.UpdateSearchableAttributes(&searchable); err != nil {
		s.logger.Warn("failed to update postings searchable attributes", zap.Error(err))
	}

	filterable := []any{"department_id"}
	if _, err := index.UpdateFilterableAttributes(&filterable); err != nil {
		s.logger.Warn("failed to update postings filterable attributes", zap.Error(err))
	}

	sortable := []string{"open_date"}
	if _, err := index.UpdateSortableAttributes(&sortable); err != nil {
		s.logger.Warn("failed to update postings sortable attributes", zap.Error(err))
	}

	s.logger.Info("meilisearch indexes initialized", zap.String("index", PostingsIndex))
}

type postingDoc struct {
	ID             uint   `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	DepartmentID   uint   `json:"department_id"`
	DepartmentName string `json:"department_name"`
	OpenDate       int64  `json:"open_date"`
	CloseDate      int64  `json:"close_date"`
}

func (s *meiliSearchService) toDoc(p *entity.Posting) postingDoc {
	return postingDoc{
		ID:             p.ID,
		Title:          p.Title,
		Description:    s.plainText(p.Description),
		DepartmentID:   p.DepartmentID,
		DepartmentName: p.Department.Name,
		OpenDate:       p.OpenDate.Unix(),
		CloseDate:      p.CloseDate.Unix(),
	}
}

// plainText strips markup so only words reach the index.
func (s *meiliSearchService) plainText(content string) string {
	content = strings.ReplaceAll(content, "</p>", " ")
	content = strings.ReplaceAll(content, "<br>", " ")
	content = strings.ReplaceAll(content, "</li>", " ")

	cleanText := html.UnescapeString(s.sanitizer.Sanitize(content))
	return strings.Join(strings.Fields(cleanText), " ")
}

func (s *meiliSearchService) IndexPostings(postings ...*entity.Posting) error {
	if len(postings) == 0 {
		return nil
	}

	docs := make([]postingDoc, 0, len(postings))
	for _, p := range postings {
		docs = append(docs, s.toDoc(p))
	}

	task, err := s.client.Index(PostingsIndex).AddDocuments(docs, strPtr("id"))
	if err != nil {
		return fmt.Errorf("failed to index postings: %w", err)
	}
	s.logger.Debug("indexed postings", zap.Int("count", len(docs)), zap.Int64("task_uid", task.TaskUID))
	return nil
}

func (s *meiliSearchService) DeletePostings(ids ...uint) error {
	for _, id := range ids {
		if _, err := s.client.Index(PostingsIndex).DeleteDocument(strconv.FormatUint(uint64(id), 10)); err != nil {
			return fmt.Errorf("failed to delete posting %d from index: %w", id, err)
		}
	}
	return nil
}

// SearchPostings returns the ids of matching postings, best match first.
func (s *meiliSearchService) SearchPostings(query string, limit int) ([]uint, error) {
	raw, err := s.client.Index(PostingsIndex).SearchRaw(query, &meilisearch.SearchRequest{
		Limit:                int64(limit),
		AttributesToRetrieve: []string{"id"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search postings: %w", err)
	}
	return decodeHitIDs(*raw)
}

func decodeHitIDs(raw []byte) ([]uint, error) {
	var resp struct {
		Hits []struct {
			ID uint `json:"id"`
		} `json:"hits"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	ids := make([]uint, 0, len(resp.Hits))
	for _, h := range resp.Hits {
		ids = append(ids, h.ID)
	}
	return ids, nil
}

func strPtr(s string) *string {
	return &s
}
