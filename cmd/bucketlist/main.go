package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/joho/godotenv"
	"github.com/sashko-guz/bucketlist/internal/config"
	"github.com/sashko-guz/bucketlist/internal/handler"
	"github.com/sashko-guz/bucketlist/internal/logger"
)

func main() {
	// Load .env file if it exists (optional)
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.LogLevel)

	objectsHandler := handler.NewObjectsHandler(cfg, nil)

	if cfg.InLambda() {
		logger.Infof("[Main] Starting Lambda handler for bucket %q", cfg.BucketName)
		lambda.Start(objectsHandler.Handle)
		return
	}

	// Local smoke test: one invocation with an empty event
	logger.Infof("[Main] Not running in Lambda, invoking handler once")
	resp, err := objectsHandler.Handle(context.Background(), json.RawMessage(`{}`))
	if err != nil {
		logger.Fatalf("[Main] Handler failed: %v", err)
	}

	out, err := json.Marshal(resp)
	if err != nil {
		logger.Fatalf("[Main] Failed to encode response: %v", err)
	}
	fmt.Fprintln(os.Stdout, string(out))
}
