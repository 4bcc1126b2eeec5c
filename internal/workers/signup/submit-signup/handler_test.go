package submitsignup

import (
	"context"
	"testing"
	"time"

	apperrors "trustgrade-workers/internal/common/errors"
	"trustgrade-workers/internal/common/logger"
	"trustgrade-workers/internal/signup"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestHandler(t *testing.T) (*Handler, *signup.RedisSessionStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := signup.NewRedisSessionStore(client, 30*time.Minute)
	return NewHandler(&Config{}, store, logger.NewTestLogger(t)), store, mr
}

// sessionOnFinalStep stores a wizard that has completed steps 1 to 3.
func sessionOnFinalStep(t *testing.T, store *signup.RedisSessionStore) *signup.Session {
	t.Helper()
	ctx := context.Background()
	s, err := store.Create(ctx)
	require.NoError(t, err)

	w := &s.Wizard
	require.NoError(t, w.State.ApplyFields(map[string]interface{}{
		"firstName": "Ayesha", "lastName": "Akhtar", "email": "ayesha@akhtarindustries.com",
		"password": "s3cret", "confirmPassword": "s3cret", "phone": "+92 300 1234567",
		"companyName": "Akhtar Industries", "jobTitle": "CEO", "companySize": "201-1000",
		"industry": "manufacturing", "businessType": "corporation",
	}))
	for _, item := range signup.Checklist {
		if item.Required {
			w.State.AddDocument(item.Name)
		}
	}
	for i := 0; i < 3; i++ {
		require.NoError(t, w.Advance())
	}
	require.Equal(t, signup.LastStep, w.Current)
	require.NoError(t, store.Save(ctx, s))
	return s
}

func TestHandler_Execute_Submits(t *testing.T) {
	h, store, mr := createTestHandler(t)
	s := sessionOnFinalStep(t, store)

	out, err := h.Execute(context.Background(), &Input{
		SessionID: s.ID,
		Fields:    map[string]interface{}{"agreeToTerms": true},
	})
	require.NoError(t, err)

	assert.True(t, out.Submitted)
	assert.Equal(t, signup.SubmittedMessage, out.Message)
	assert.Equal(t, "ayesha@akhtarindustries.com", out.Email)
	assert.Equal(t, "Akhtar Industries", out.Company)
	assert.False(t, mr.Exists("signup:session:"+s.ID))
}

func TestHandler_Execute_TermsNotAccepted(t *testing.T) {
	h, store, mr := createTestHandler(t)
	s := sessionOnFinalStep(t, store)

	_, err := h.Execute(context.Background(), &Input{SessionID: s.ID})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeStepIncomplete))
	assert.True(t, mr.Exists("signup:session:"+s.ID))
}

func TestHandler_Execute_NotOnFinalStep(t *testing.T) {
	h, store, _ := createTestHandler(t)
	s, err := store.Create(context.Background())
	require.NoError(t, err)

	_, err = h.Execute(context.Background(), &Input{
		SessionID: s.ID,
		Fields:    map[string]interface{}{"agreeToTerms": true},
	})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeNavigationBlocked))
}

func TestHandler_Execute_UnknownSession(t *testing.T) {
	h, _, _ := createTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{SessionID: "nope"})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeSessionNotFound))
}
