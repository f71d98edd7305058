package publishers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

type fakeSNS struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNS) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("sns-1")}, nil
}

func TestSNSPublisherPublishes(t *testing.T) {
	api := &fakeSNS{}
	pub := &snsPublisher{id: "topic", topicARN: "arn:aws:sns:eu-west-1:1:vouchers", api: api, log: ensureLogger(nil)}

	if err := pub.Publish(context.Background(), NewEvent("shops", "https://erp", nil, []any{}, nil)); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if aws.ToString(api.input.TopicArn) != "arn:aws:sns:eu-west-1:1:vouchers" {
		t.Fatalf("TopicArn = %s", aws.ToString(api.input.TopicArn))
	}
	if aws.ToString(api.input.Subject) != "rahkaran shops ok" {
		t.Fatalf("Subject = %s", aws.ToString(api.input.Subject))
	}
	if !strings.Contains(aws.ToString(api.input.Message), `"operation":"shops"`) {
		t.Fatalf("message missing operation: %s", aws.ToString(api.input.Message))
	}
	if attr := api.input.MessageAttributes["base_url"]; aws.ToString(attr.StringValue) != "https://erp" {
		t.Fatalf("base_url attribute = %#v", attr)
	}
}

func TestSNSPublisherMarksFailedOperations(t *testing.T) {
	api := &fakeSNS{}
	pub := &snsPublisher{id: "topic", topicARN: "arn", api: api, log: ensureLogger(nil)}

	evt := NewEvent("register-voucher", "https://erp", nil, nil, errors.New("status 500"))
	if err := pub.Publish(context.Background(), evt); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if attr := api.input.MessageAttributes["status"]; aws.ToString(attr.StringValue) != "failed" {
		t.Fatalf("status attribute = %#v", attr)
	}
}

func TestSNSPublisherError(t *testing.T) {
	pub := &snsPublisher{id: "topic", api: &fakeSNS{err: errors.New("denied")}, log: ensureLogger(nil)}
	if err := pub.Publish(context.Background(), Event{Operation: "shops"}); err == nil {
		t.Fatalf("expected error")
	}
}
