package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/de-tools/health-atlas/pkg/services/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_LocalOnly(t *testing.T) {
	dir := t.TempDir()
	canonical := filepath.Join(dir, "metricas_completas.json")
	require.NoError(t, os.WriteFile(canonical, []byte(`{"analisis_servicios":{"URGENCIAS":{"total_facturado":10}}}`), 0o644))

	settings, err := config.Load("")
	require.NoError(t, err)
	settings.Documents.CanonicalPath = canonical
	settings.AWS.Enabled = false

	ctx := zerolog.Nop().WithContext(context.Background())
	services, err := Build(ctx, settings)
	require.NoError(t, err)

	loaded, err := services.Loader.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SourceCanonical, loaded.Source)

	result, err := services.Queries.Run(ctx, "SELECT 1", "")
	require.NoError(t, err)
	assert.True(t, result.Fallback)

	_, err = services.Storage.Archive(ctx, "r.json", "application/json", []byte("{}"))
	assert.Error(t, err)
}
