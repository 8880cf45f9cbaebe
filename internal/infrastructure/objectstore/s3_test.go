package objectstore

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appConfig "github.com/fastygo/planner/internal/config"
)

func TestNewPresignerRequiresBucket(t *testing.T) {
	_, err := NewPresigner(context.Background(), appConfig.S3Config{Region: "us-east-1"}, nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestPresignPutAgainstCustomEndpoint(t *testing.T) {
	ctx := context.Background()
	p, err := NewPresigner(ctx, appConfig.S3Config{
		Endpoint:  "http://localhost:9000/",
		Region:    "us-east-1",
		Bucket:    "planner",
		AccessKey: "minio",
		SecretKey: "minio-secret",
	}, nil)
	require.NoError(t, err)

	key := "attachments/2024/1/15/abc/report.pdf"
	putURL, err := p.PresignPut(ctx, key, "application/pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(putURL, "http://localhost:9000/planner/"+key), putURL)
	assert.Contains(t, putURL, "X-Amz-Signature=")

	getURL, err := p.PresignGet(ctx, key)
	require.NoError(t, err)
	assert.Contains(t, getURL, "X-Amz-Expires=900")

	assert.Equal(t, "http://localhost:9000/planner/"+key, p.ObjectURL(key))
	assert.Equal(t, "http://localhost:9000/planner/attachments/a%20b.txt", p.ObjectURL("attachments/a b.txt"))
}
