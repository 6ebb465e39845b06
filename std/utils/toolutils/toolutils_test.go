package toolutils_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/dwc-revival/nasd/std/utils/toolutils"
	"github.com/stretchr/testify/require"
)

func TestStatusPrinter(t *testing.T) {
	buf := &bytes.Buffer{}
	p := toolutils.StatusPrinter{File: buf, Padding: 8}
	p.Print("userid", 42)
	p.Print("averyverylongkey", "x")
	require.Equal(t, "  userid=42\naveryverylongkey=x\n", buf.String())
}

func TestReadYaml(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "cfg.yml")
	require.NoError(t, os.WriteFile(file, []byte("name: nas\nport: 80\n"), 0644))

	cfg := struct {
		Name string `json:"name"`
		Port int    `json:"port"`
	}{}
	require.NoError(t, toolutils.ReadYaml(&cfg, file))
	require.Equal(t, "nas", cfg.Name)
	require.Equal(t, 80, cfg.Port)

	require.NoError(t, os.WriteFile(file, []byte("bogus: 1\n"), 0644))
	require.Error(t, toolutils.ReadYaml(&cfg, file))

	require.Error(t, toolutils.ReadYaml(&cfg, filepath.Join(dir, "missing.yml")))
}
