package referral

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"trustgrade-workers/internal/common/logger"
)

func TestGenerate_FixedCode(t *testing.T) {
	g := NewGenerator("https://lunoa.com/", "Join Lunoa - Business Verification Platform", map[string]string{"akhtar-industries": "AKHTAR50"})
	ref := g.Generate("akhtar-industries")

	assert.Equal(t, "AKHTAR50", ref.Code)
	assert.Equal(t, "https://lunoa.com/signup?ref=AKHTAR50", ref.Link)
	assert.Contains(t, ref.EmailBody, "With your referral code AKHTAR50")
	assert.Contains(t, ref.SMSBody, "Use my link: https://lunoa.com/signup?ref=AKHTAR50 with code AKHTAR50")

	require.True(t, strings.HasPrefix(ref.MailtoURL, "mailto:?subject=Join%20Lunoa%20-%20Business%20Verification%20Platform&body="))
	body, err := url.QueryUnescape(strings.SplitN(ref.MailtoURL, "&body=", 2)[1])
	require.NoError(t, err)
	assert.Equal(t, ref.EmailBody, body)

	require.True(t, strings.HasPrefix(ref.SMSURL, "sms:?body="))
	sms, err := url.QueryUnescape(strings.TrimPrefix(ref.SMSURL, "sms:?body="))
	require.NoError(t, err)
	assert.Equal(t, ref.SMSBody, sms)
}

func TestGenerate_RandomCode(t *testing.T) {
	g := NewGenerator("https://lunoa.com", "Join", nil)
	g.newID = func() string { return "3f2a9c1e-77b0-4d2e-9a41-0c6f5e1b2d3a" }

	ref := g.Generate("kalaw-food-products")
	assert.Equal(t, "3F2A9C1E", ref.Code)
	assert.Equal(t, "https://lunoa.com/signup?ref=3F2A9C1E", ref.Link)
}

func TestRandomCode(t *testing.T) {
	assert.Equal(t, "ABCDEF12", RandomCode("ab-cd-ef-12-34"))
	assert.Equal(t, "AB", RandomCode("a-b"))
	assert.Len(t, RandomCode("6ba7b810-9dad-11d1-80b4-00c04fd430c8"), 8)
}

type mockEmail struct{ mock.Mock }

func (m *mockEmail) SendText(ctx context.Context, to, subject, body string) (string, error) {
	args := m.Called(ctx, to, subject, body)
	return args.String(0), args.Error(1)
}

type mockSMS struct{ mock.Mock }

func (m *mockSMS) SendSMS(ctx context.Context, phone, message string) (string, error) {
	args := m.Called(ctx, phone, message)
	return args.String(0), args.Error(1)
}

func TestSharer(t *testing.T) {
	ref := NewGenerator("https://lunoa.com", "Join", nil).Build("AKHTAR50")

	email := &mockEmail{}
	email.On("SendText", mock.Anything, "partner@example.com", "Join", ref.EmailBody).Return("ses-1", nil)
	sms := &mockSMS{}
	sms.On("SendSMS", mock.Anything, "+15550100", ref.SMSBody).Return("", fmt.Errorf("throttled"))

	s := NewSharer(email, sms, logger.NewTestLogger(t))

	d := s.Share(context.Background(), ref, ChannelEmail, "partner@example.com")
	assert.True(t, d.Delivered)
	assert.Equal(t, "ses-1", d.MessageID)

	d = s.Share(context.Background(), ref, ChannelSMS, "+15550100")
	assert.False(t, d.Delivered)
	assert.Contains(t, d.Error, "throttled")

	email.AssertExpectations(t)
	sms.AssertExpectations(t)
}

func TestSharer_DisabledChannel(t *testing.T) {
	s := NewSharer(nil, nil, logger.NewNoOpLogger())
	d := s.Share(context.Background(), Referral{}, ChannelEmail, "x@y.z")
	assert.False(t, d.Delivered)
	assert.Contains(t, d.Error, "not enabled")
}
