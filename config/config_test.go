package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dyang37/go-sysmat/model"
)

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geom.json")
	body := `{
		"image": {"nx": 4, "ny": 4, "deltaxy": 1.0},
		"sino": {"n_views": 2, "n_channels": 5, "delta_channel": 1.0, "center_offset": 0, "view_angles": [0, 1.5707963267948966]},
		"sv": {"sv_length": 1, "overlap": 1, "piece_length": 1, "nsv": 4}
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	g, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 4, g.Image.Nx)
	require.Equal(t, 2, g.Sino.NViews)
	require.Equal(t, 1, g.SV.SVLength)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geom.yaml")
	body := "image:\n  nx: 3\n  ny: 3\n  deltaxy: 1.0\nsino:\n  n_views: 2\n  n_channels: 5\n  delta_channel: 1.0\n  center_offset: 0\n  view_angles: [0, 1.5707963267948966]\nsv:\n  sv_length: 1\n  overlap: 1\n  piece_length: 1\n  nsv: 9\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	g, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 3, g.Image.Nx)
	require.Equal(t, 9, g.SV.Nsv)
}

func TestLoadMissingFileIsIOError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
