package storage

import (
	"context"
	"testing"

	"github.com/sashko-guz/bucketlist/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCredentials(t *testing.T) {
	tests := []struct {
		name       string
		cfg        config.Config
		wantErr    error
		wantMode   CredentialMode
		wantKey    string
		wantSecret string
	}{
		{
			name:    "missing bucket",
			cfg:     config.Config{AccessKeyID: "key", SecretAccessKey: "secret"},
			wantErr: config.ErrMissingBucket,
		},
		{
			name:     "lambda role wins over explicit keys",
			cfg:      config.Config{BucketName: "b", LambdaFunctionName: "fn", AccessKeyID: "key", SecretAccessKey: "secret"},
			wantMode: ModeAmbient,
		},
		{
			name:       "explicit keys",
			cfg:        config.Config{BucketName: "b", AccessKeyID: "key", SecretAccessKey: "secret"},
			wantMode:   ModeStatic,
			wantKey:    "key",
			wantSecret: "secret",
		},
		{
			name:     "key without secret falls back to default chain",
			cfg:      config.Config{BucketName: "b", AccessKeyID: "key"},
			wantMode: ModeDefault,
		},
		{
			name:     "nothing set",
			cfg:      config.Config{BucketName: "b"},
			wantMode: ModeDefault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds, err := ResolveCredentials(&tt.cfg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMode, creds.Mode)

			if tt.wantMode != ModeStatic {
				assert.Nil(t, creds.Provider)
				return
			}

			require.NotNil(t, creds.Provider)
			value, err := creds.Provider.Retrieve(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.wantKey, value.AccessKeyID)
			assert.Equal(t, tt.wantSecret, value.SecretAccessKey)
		})
	}
}

func TestResolveCredentials_SessionToken(t *testing.T) {
	creds, err := ResolveCredentials(&config.Config{
		BucketName:      "b",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		SessionToken:    "token",
	})
	require.NoError(t, err)

	value, err := creds.Provider.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token", value.SessionToken)
}
