package storage

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/sashko-guz/bucketlist/internal/config"
	"github.com/sashko-guz/bucketlist/internal/logger"
)

type CredentialMode string

const (
	// ModeAmbient uses the Lambda execution role
	ModeAmbient CredentialMode = "ambient"
	// ModeStatic uses AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY
	ModeStatic CredentialMode = "static"
	// ModeDefault falls through to the SDK default credential chain
	ModeDefault CredentialMode = "default"
)

// Credentials is the outcome of credential resolution.
// Provider is nil unless Mode is ModeStatic.
type Credentials struct {
	Mode     CredentialMode
	Provider aws.CredentialsProvider
}

// ResolveCredentials decides how the S3 client authenticates.
// Order: missing bucket fails, then Lambda role, then explicit keys, then the SDK default chain.
func ResolveCredentials(cfg *config.Config) (Credentials, error) {
	if err := cfg.Validate(); err != nil {
		return Credentials{}, err
	}

	if cfg.InLambda() {
		logger.Infof("[Credentials] Running in Lambda environment (%s) - using IAM role for S3 access", cfg.LambdaFunctionName)
		return Credentials{Mode: ModeAmbient}, nil
	}

	if cfg.HasStaticCredentials() {
		logger.Infof("[Credentials] Running in local environment - using API credentials for S3 access")
		return Credentials{
			Mode:     ModeStatic,
			Provider: credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken),
		}, nil
	}

	logger.Warnf("[Credentials] Local environment detected but no API credentials found - trying default credentials")
	return Credentials{Mode: ModeDefault}, nil
}
