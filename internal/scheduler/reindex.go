package scheduler

import (
	"context"

	"go.uber.org/zap"
)

const CampaignReindexJobName = "campaign-reindex"

type CampaignReindexer interface {
	Reindex(ctx context.Context) (int, error)
}

type campaignReindexJob struct {
	campaigns CampaignReindexer
	schedule  string
}

// NewCampaignReindexJob pushes every campaign with fresh stats into the search index.
func NewCampaignReindexJob(campaigns CampaignReindexer, schedule string) Job {
	return &campaignReindexJob{campaigns: campaigns, schedule: schedule}
}

func (j *campaignReindexJob) Name() string { return CampaignReindexJobName }
func (j *campaignReindexJob) Schedule() string { return j.schedule }

func (j *campaignReindexJob) Run(ctx context.Context) error {
	n, err := j.campaigns.Reindex(ctx)
	if err != nil {
		return err
	}
	zap.L().Debug("campaigns reindexed", zap.Int("count", n))
	return nil
}
