package local

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, maxMB int64) *Client {
	t.Helper()
	client, err := NewClient(config.UploadsConfig{
		BaseDir:     t.TempDir(),
		MaxUploadMB: maxMB,
	})
	require.NoError(t, err)
	return client
}

func TestSaveAndDelete(t *testing.T) {
	client := newTestClient(t, 1)
	ctx := context.Background()

	rel, err := client.Save(ctx, "screenshots", "proof.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, "screenshots/"))
	assert.True(t, strings.HasSuffix(rel, "-proof.png"))

	data, err := os.ReadFile(filepath.Join(client.BaseDir(), filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, client.Delete(ctx, rel))
	_, err = os.Stat(filepath.Join(client.BaseDir(), filepath.FromSlash(rel)))
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteMissingFileIsNoop(t *testing.T) {
	client := newTestClient(t, 1)
	require.NoError(t, client.Delete(context.Background(), "screenshots/nope.png"))
}

func TestSaveSanitizesFilename(t *testing.T) {
	client := newTestClient(t, 1)

	rel, err := client.Save(context.Background(), "", "../..//etc passwd?.png", strings.NewReader("x"))
	require.NoError(t, err)
	assert.NotContains(t, rel, "..")
	assert.NotContains(t, rel, " ")
}

func TestSaveRejectsOversizedFile(t *testing.T) {
	client := newTestClient(t, 0)
	client.maxBytes = 4

	_, err := client.Save(context.Background(), "", "big.bin", strings.NewReader("too large"))
	require.Error(t, err)
}

func TestDeleteRejectsEscapingPath(t *testing.T) {
	client := newTestClient(t, 1)
	err := client.Delete(context.Background(), "../../etc/passwd")
	require.Error(t, err)
}
