package aws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"go.uber.org/zap"
)

// SNSPublisher publishes an encoded event to a topic.
type SNSPublisher interface {
	Publish(ctx context.Context, topicArn string, message []byte) error
}

type snsAPI interface {
	Publish(ctx context.Context, in *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSClient publishes JSON events. A top-level "event_type" field is
// copied into a message attribute so subscriptions can filter on it.
type SNSClient struct {
	api    snsAPI
	logger *zap.Logger
}

func NewSNSClient(cfg sdkaws.Config, logger *zap.Logger) *SNSClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SNSClient{api: sns.NewFromConfig(cfg), logger: logger}
}

func (s *SNSClient) Publish(ctx context.Context, topicArn string, message []byte) error {
	if topicArn == "" {
		return errors.New("sns topic arn is empty")
	}

	in := &sns.PublishInput{
		TopicArn: sdkaws.String(topicArn),
		Message:  sdkaws.String(string(message)),
	}
	var head struct {
		EventType string `json:"event_type"`
	}
	if json.Unmarshal(message, &head) == nil && head.EventType != "" {
		in.MessageAttributes = map[string]types.MessageAttributeValue{
			"event_type": {DataType: sdkaws.String("String"), StringValue: sdkaws.String(head.EventType)},
		}
	}

	s.logger.Debug("sns publish", zap.String("topic_arn", topicArn), zap.String("event_type", head.EventType))
	if _, err := s.api.Publish(ctx, in); err != nil {
		return fmt.Errorf("publish to %s: %w", topicArn, err)
	}
	return nil
}
