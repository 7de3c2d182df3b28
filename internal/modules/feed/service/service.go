package service

import (
	"context"
	"encoding/json"
	"fmt"

	"anoa.com/charityhub/internal/modules/donation/dto"
	"github.com/redis/go-redis/v9"
)

// DonationChannel is the redis pub/sub channel carrying donation events.
const DonationChannel = "charity:donations"

// FeedService fans donation events out over redis pub/sub.
type FeedService interface {
	PublishDonation(ctx context.Context, event dto.DonationEvent) error
	Subscribe(ctx context.Context) (*redis.PubSub, error)
}

type feedService struct {
	redisClient *redis.Client
}

func NewFeedService(redisClient *redis.Client) FeedService {
	return &feedService{redisClient: redisClient}
}

func (s *feedService) PublishDonation(ctx context.Context, event dto.DonationEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode donation event: %w", err)
	}
	return s.redisClient.Publish(ctx, DonationChannel, payload).Err()
}

// Subscribe returns a confirmed subscription; the caller closes it.
func (s *feedService) Subscribe(ctx context.Context) (*redis.PubSub, error) {
	pubsub := s.redisClient.Subscribe(ctx, DonationChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("subscribe to %s: %w", DonationChannel, err)
	}
	return pubsub, nil
}
