package drivers

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sashko-guz/bucketlist/internal/logger"
	"golang.org/x/net/http2"
)

// S3HTTPConfig contains HTTP client configuration for S3 connections
type S3HTTPConfig struct {
	MaxIdleConns   int           // Max idle connections across all hosts (default: 100)
	ConnectTimeout time.Duration // Dial timeout (default: 10s)
	RequestTimeout time.Duration // Full request timeout, per page (default: 30s)
}

// S3Options describes how to build an S3Client.
// A nil Credentials provider leaves resolution to the SDK default chain
// (environment, shared config, container/instance role).
type S3Options struct {
	Region      string
	Bucket      string
	Endpoint    string // Custom endpoint for S3-compatible storage
	Credentials aws.CredentialsProvider
	PageSize    int32
	HTTP        *S3HTTPConfig
}

type S3Client struct {
	client   s3.ListObjectsV2APIClient
	bucket   string
	pageSize int32
}

// createOptimizedHTTPClient creates an HTTP client with connection pooling and timeouts
func createOptimizedHTTPClient(httpConfig *S3HTTPConfig) *http.Client {
	maxIdleConns := 100
	connectTimeout := 10 * time.Second
	requestTimeout := 30 * time.Second

	if httpConfig != nil {
		if httpConfig.MaxIdleConns > 0 {
			maxIdleConns = httpConfig.MaxIdleConns
		}
		if httpConfig.ConnectTimeout > 0 {
			connectTimeout = httpConfig.ConnectTimeout
		}
		if httpConfig.RequestTimeout > 0 {
			requestTimeout = httpConfig.RequestTimeout
		}
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   connectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          maxIdleConns,
		MaxIdleConnsPerHost:   maxIdleConns,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}

	if err := http2.ConfigureTransport(transport); err != nil {
		logger.Warnf("[S3 Storage] Failed to configure HTTP/2: %v", err)
	}

	logger.Debugf("[S3 Storage] HTTP client configured: MaxIdleConns=%d, ConnectTimeout=%s, RequestTimeout=%s",
		maxIdleConns, connectTimeout, requestTimeout)

	return &http.Client{
		Transport: transport,
		Timeout:   requestTimeout,
	}
}

func NewS3Client(ctx context.Context, opts S3Options) (*S3Client, error) {
	configOpts := []func(*config.LoadOptions) error{
		config.WithRegion(opts.Region),
		config.WithHTTPClient(createOptimizedHTTPClient(opts.HTTP)),
	}
	if opts.Credentials != nil {
		configOpts = append(configOpts, config.WithCredentialsProvider(opts.Credentials))
	}

	cfg, err := config.LoadDefaultConfig(ctx, configOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			// MinIO, LocalStack and friends only speak path-style addressing
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	if opts.Endpoint != "" {
		logger.Infof("[S3 Storage] Client initialized: endpoint=%s, bucket=%s, region=%s", opts.Endpoint, opts.Bucket, opts.Region)
	} else {
		logger.Infof("[S3 Storage] Client initialized: bucket=%s, region=%s", opts.Bucket, opts.Region)
	}

	return NewS3ClientWithAPI(client, opts.Bucket, opts.PageSize), nil
}

// NewS3ClientWithAPI wraps an existing ListObjectsV2 implementation,
// e.g. a preconfigured *s3.Client or a test double
func NewS3ClientWithAPI(api s3.ListObjectsV2APIClient, bucket string, pageSize int32) *S3Client {
	if pageSize <= 0 || pageSize > 1000 {
		pageSize = 1000
	}
	return &S3Client{
		client:   api,
		bucket:   bucket,
		pageSize: pageSize,
	}
}

// ListObjectKeys returns every key in the bucket in the order S3 returns them.
// An empty bucket yields an empty, non-nil slice.
func (s *S3Client) ListObjectKeys(ctx context.Context) ([]string, error) {
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
	}, func(o *s3.ListObjectsV2PaginatorOptions) {
		o.Limit = s.pageSize
	})

	keys := []string{}
	pages := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list objects in bucket %s: %w", s.bucket, err)
		}
		pages++

		for _, obj := range page.Contents {
			if obj.Key == nil {
				continue
			}
			keys = append(keys, aws.ToString(obj.Key))
		}
		logger.Debugf("[S3 Storage] Page %d: %d object(s), bucket=%s", pages, len(page.Contents), s.bucket)
	}

	logger.Infof("[S3 Storage] Listed %d object(s) in %d page(s): bucket=%s", len(keys), pages, s.bucket)
	return keys, nil
}
