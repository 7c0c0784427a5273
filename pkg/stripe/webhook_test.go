package stripe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v81/webhook"
)

const testSecret = "whsec_test"

var completedPayload = []byte(`{"id":"evt_1","object":"event","type":"checkout.session.completed","created":1714550400,` +
	`"data":{"object":{"id":"cs_1","object":"checkout.session","payment_status":"paid","customer_email":"Alice@X.com","metadata":{"ref":"bob@y.com"}}}}`)

func sign(payload []byte, secret string, at time.Time) string {
	return webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    secret,
		Timestamp: at,
	}).Header
}

func TestConstructEvent(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		payload   []byte
		header    string
		secret    string
		expectErr error
	}{
		{
			name:    "Valid signature",
			payload: completedPayload,
			header:  sign(completedPayload, testSecret, now),
			secret:  testSecret,
		},
		{
			name:      "Wrong secret",
			payload:   completedPayload,
			header:    sign(completedPayload, "whsec_other", now),
			secret:    testSecret,
			expectErr: ErrInvalidSignature,
		},
		{
			name:      "Missing header",
			payload:   completedPayload,
			secret:    testSecret,
			expectErr: ErrInvalidSignature,
		},
		{
			name:      "Malformed header",
			payload:   completedPayload,
			header:    "t=abc,v1=deadbeef",
			secret:    testSecret,
			expectErr: ErrInvalidSignature,
		},
		{
			name:      "Empty secret rejects everything",
			payload:   completedPayload,
			header:    sign(completedPayload, "", now),
			secret:    "",
			expectErr: ErrInvalidSignature,
		},
		{
			name:      "Stale timestamp",
			payload:   completedPayload,
			header:    sign(completedPayload, testSecret, now.Add(-time.Hour)),
			secret:    testSecret,
			expectErr: ErrInvalidSignature,
		},
		{
			name:      "Signed garbage",
			payload:   []byte(`not json`),
			header:    sign([]byte(`not json`), testSecret, now),
			secret:    testSecret,
			expectErr: ErrInvalidPayload,
		},
		{
			name:      "Event without id",
			payload:   []byte(`{"object":"event","type":"checkout.session.completed"}`),
			header:    sign([]byte(`{"object":"event","type":"checkout.session.completed"}`), testSecret, now),
			secret:    testSecret,
			expectErr: ErrInvalidPayload,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := ConstructEvent(tt.payload, tt.header, tt.secret, DefaultTolerance)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				assert.Nil(t, event)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "evt_1", event.ID)
			assert.Equal(t, EventCheckoutSessionCompleted, string(event.Type))
		})
	}
}

func TestConstructEvent_TamperedPayload(t *testing.T) {
	header := sign(completedPayload, testSecret, time.Now())
	tampered := append([]byte{}, completedPayload...)
	tampered[len(tampered)-3] = ' '

	_, err := ConstructEvent(tampered, header, testSecret, DefaultTolerance)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestSessionFromEvent(t *testing.T) {
	event, err := ConstructEvent(completedPayload, sign(completedPayload, testSecret, time.Now()), testSecret, DefaultTolerance)
	require.NoError(t, err)

	session, err := SessionFromEvent(event)
	require.NoError(t, err)
	assert.Equal(t, "cs_1", session.ID)
	assert.True(t, Paid(session))
	assert.Equal(t, "Alice@X.com", PayerEmail(session))
	assert.Equal(t, "bob@y.com", MetadataValue(session, MetadataReferral))
}

func TestSessionFromEvent_WithoutID(t *testing.T) {
	event := &Event{Data: &EventData{Raw: []byte(`{"payment_status":"paid"}`)}}

	_, err := SessionFromEvent(event)
	assert.ErrorIs(t, err, ErrInvalidPayload)

	_, err = SessionFromEvent(&Event{})
	assert.ErrorIs(t, err, ErrInvalidPayload)
}
