package service

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"anoa.com/charityhub/internal/modules/campaign/dto"
	"github.com/google/uuid"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

const (
	campaignIndex = "campaigns"
	searchLimit   = 50
)

type meiliCampaignDoc struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Description        string `json:"description"`
	Status             string `json:"status"`
	GoalAmount         string `json:"goal_amount"`
	TotalDonations     string `json:"total_donations"`
	ProgressPercentage int    `json:"progress_percentage"`
	CreatedAt          int64  `json:"created_at"`
}

// CampaignSearch mirrors campaigns into a Meilisearch index.
type CampaignSearch struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

func NewCampaignSearch(client meilisearch.ServiceManager) *CampaignSearch {
	s := &CampaignSearch{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndex()
	return s
}

func (s *CampaignSearch) initIndex() {
	index := s.client.Index(campaignIndex)

	searchable := []string{"name", "description"}
	if _, err := index.UpdateSearchableAttributes(&searchable); err != nil {
		zap.L().Warn("failed to update campaign searchable attributes", zap.Error(err))
	}

	filterable := []any{"status"}
	if _, err := index.UpdateFilterableAttributes(&filterable); err != nil {
		zap.L().Warn("failed to update campaign filterable attributes", zap.Error(err))
	}

	sortable := []string{"created_at", "progress_percentage"}
	if _, err := index.UpdateSortableAttributes(&sortable); err != nil {
		zap.L().Warn("failed to update campaign sortable attributes", zap.Error(err))
	}

	zap.L().Info("meilisearch campaign index initialized")
}

// cleanText strips markup from free text and collapses whitespace.
func (s *CampaignSearch) cleanText(content string) string {
	content = strings.ReplaceAll(content, "</p>", " ")
	content = strings.ReplaceAll(content, "<br>", " ")
	content = strings.ReplaceAll(content, "</div>", " ")

	cleaned := html.UnescapeString(s.sanitizer.Sanitize(content))
	return strings.Join(strings.Fields(cleaned), " ")
}

func (s *CampaignSearch) toDoc(c dto.CampaignWithStats) meiliCampaignDoc {
	return meiliCampaignDoc{
		ID:                 c.ID.String(),
		Name:               s.cleanText(c.Name),
		Description:        s.cleanText(c.Description),
		Status:             c.Status,
		GoalAmount:         c.GoalAmount.String(),
		TotalDonations:     c.TotalDonations.String(),
		ProgressPercentage: c.ProgressPercentage,
		CreatedAt:          c.CreatedAt.Unix(),
	}
}

func (s *CampaignSearch) IndexCampaigns(ctx context.Context, campaigns []dto.CampaignWithStats) error {
	if len(campaigns) == 0 {
		return nil
	}

	docs := make([]meiliCampaignDoc, 0, len(campaigns))
	for _, c := range campaigns {
		docs = append(docs, s.toDoc(c))
	}

	task, err := s.client.Index(campaignIndex).AddDocuments(docs, strPtr("id"))
	if err != nil {
		return fmt.Errorf("index campaigns: %w", err)
	}

	zap.L().Debug("campaigns queued for indexing", zap.Int("count", len(docs)), zap.Int64("task_uid", task.TaskUID))
	return nil
}

func (s *CampaignSearch) DeleteCampaign(ctx context.Context, id uuid.UUID) error {
	_, err := s.client.Index(campaignIndex).DeleteDocument(id.String())
	return err
}

// SearchCampaignIDs returns matching campaign ids in relevance order.
func (s *CampaignSearch) SearchCampaignIDs(ctx context.Context, query string) ([]uuid.UUID, error) {
	raw, err := s.client.Index(campaignIndex).SearchRaw(query, &meilisearch.SearchRequest{
		AttributesToRetrieve: []string{"id"},
		Limit:                searchLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("search campaigns: %w", err)
	}

	return decodeHitIDs(*raw)
}

func decodeHitIDs(raw []byte) ([]uuid.UUID, error) {
	var resp struct {
		Hits []struct {
			ID string `json:"id"`
		} `json:"hits"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		id, err := uuid.Parse(hit.ID)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func strPtr(s string) *string {
	return &s
}
