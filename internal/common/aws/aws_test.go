package aws

import (
	"context"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSES struct{ mock.Mock }

func (m *mockSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*ses.SendEmailOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockSNS struct{ mock.Mock }

func (m *mockSNS) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*sns.PublishOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestSESClient_SendText(t *testing.T) {
	m := &mockSES{}
	m.On("SendEmail", mock.Anything, mock.MatchedBy(func(in *ses.SendEmailInput) bool {
		return aws.ToString(in.Source) == "noreply@lunoa.com" &&
			in.Destination.ToAddresses[0] == "partner@example.com" &&
			aws.ToString(in.Message.Subject.Data) == "Join me on Lunoa"
	})).Return(&ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil)

	client := &SESClient{client: m, from: "noreply@lunoa.com"}
	id, err := client.SendText(context.Background(), "partner@example.com", "Join me on Lunoa", "body")

	require.NoError(t, err)
	assert.Equal(t, "msg-1", id)
	m.AssertExpectations(t)
}

func TestSNSClient_SendSMS(t *testing.T) {
	m := &mockSNS{}
	m.On("Publish", mock.Anything, mock.MatchedBy(func(in *sns.PublishInput) bool {
		_, hasSender := in.MessageAttributes["AWS.SNS.SMS.SenderID"]
		return aws.ToString(in.PhoneNumber) == "+15550100" && hasSender
	})).Return(nil, fmt.Errorf("throttled"))

	client := &SNSClient{client: m, senderID: "LUNOA"}
	_, err := client.SendSMS(context.Background(), "+15550100", "hi")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
	m.AssertExpectations(t)
}
