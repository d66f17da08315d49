package app

import (
	"path/filepath"
	"testing"

	"swarmpost/internal/repo/memory"
	"swarmpost/internal/storage"
	"swarmpost/pkg/config"
	"swarmpost/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRepository_DefaultsToMemory(t *testing.T) {
	cfg := &config.Config{}

	postRepo, cleanup, err := buildRepository(cfg, logger.New())
	require.NoError(t, err)
	defer cleanup()

	assert.IsType(t, &memory.PostRepository{}, postRepo)
}

func TestBuildStorage_DefaultsToLocal(t *testing.T) {
	cfg := &config.Config{
		UploadsDir: filepath.Join(t.TempDir(), "uploads"),
	}

	imageStorage, err := buildStorage(cfg, logger.New())
	require.NoError(t, err)

	assert.IsType(t, &storage.LocalImageStorage{}, imageStorage)
}

func TestBuildStorage_S3(t *testing.T) {
	cfg := &config.Config{
		S3Enabled:    true,
		AWSRegion:    "us-east-1",
		S3BucketName: "demo",
	}

	imageStorage, err := buildStorage(cfg, logger.New())
	require.NoError(t, err)

	assert.IsType(t, &storage.S3ImageStorage{}, imageStorage)
}
