package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ArnaudCalmettes/fsiv/imp"
	"github.com/ArnaudCalmettes/fsiv/models"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestImage(t *testing.T, dir, name string, rows, cols, channels int, data ...uint8) string {
	t.Helper()
	m, err := imp.NewMatFromBytes(rows, cols, channels, data)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, imp.SaveMat(path, m))
	return path
}

func TestShowExtremes(t *testing.T) {
	dir := t.TempDir()
	path := writeTestImage(t, dir, "img.png", 2, 2, 1, 10, 250, 5, 80)

	for _, o := range []extremesOptions{{}, {concurrent: true}} {
		var out bytes.Buffer
		require.NoError(t, showExtremes(&out, nil, []string{path}, o))
		assert.Equal(t,
			"=== "+path+" (2x2, 1 channel(s)) ===\nchannel 0: min 5 at (0,1), max 250 at (1,0)\n",
			out.String(),
		)
	}

	var out bytes.Buffer
	assert.Error(t, showExtremes(&out, nil, []string{filepath.Join(dir, "missing.png")}, extremesOptions{}))
}

func TestShowExtremesRecords(t *testing.T) {
	dir := t.TempDir()
	path := writeTestImage(t, dir, "img.png", 1, 2, 3, 1, 2, 3, 4, 5, 6)

	db, err := models.Open(filepath.Join(dir, "history.sqlite"))
	require.NoError(t, err)
	defer db.Close()

	var out bytes.Buffer
	require.NoError(t, showExtremes(&out, db, []string{path, path}, extremesOptions{}))

	scans, err := models.ListScans(db, "", 0)
	require.NoError(t, err)
	require.Len(t, scans, 2)
	assert.Equal(t, path, scans[0].Source)
	assert.Equal(t, 3, scans[0].Channels)

	out.Reset()
	require.NoError(t, printHistory(&out, db, "", 0))
	assert.Contains(t, out.String(), "IMAGE")
	assert.Contains(t, out.String(), "2x1")
}

func TestAdjustImage(t *testing.T) {
	dir := t.TempDir()
	src := writeTestImage(t, dir, "in.png", 1, 3, 1, 0, 128, 255)
	dst := filepath.Join(dir, "out.png")

	require.NoError(t, adjustImage(src, dst, imp.CBGParams{Contrast: 1, Gamma: 2}))
	m, err := imp.ReadMat(dst, imp.AnyColor)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 64, 255}, m.Bytes())

	err = adjustImage(src, dst, imp.CBGParams{Contrast: 3, Gamma: 1})
	assert.ErrorIs(t, err, imp.ErrInvalidInput)
}

func TestReplaceBackground(t *testing.T) {
	dir := t.TempDir()
	fg := writeTestImage(t, dir, "fg.png", 1, 2, 3, 0, 255, 0, 255, 0, 0)
	bg := writeTestImage(t, dir, "bg.png", 1, 2, 3, 9, 9, 9, 9, 9, 9)
	out := filepath.Join(dir, "out.png")
	mask := filepath.Join(dir, "mask.png")

	require.NoError(t, replaceBackground(fg, bg, out, mask, imp.DefaultChromaKeyParams))

	m, err := imp.ReadMat(out, imp.AnyColor)
	require.NoError(t, err)
	assert.Equal(t, []uint8{9, 9, 9, 255, 0, 0}, m.Bytes())

	mm, err := imp.ReadMat(mask, imp.AnyColor)
	require.NoError(t, err)
	assert.Equal(t, []uint8{imp.MaskOff, imp.MaskOn}, mm.Bytes())

	err = replaceBackground(fg, bg, out, "", imp.ChromaKeyParams{Hue: 200})
	assert.ErrorIs(t, err, imp.ErrInvalidInput)
}

func TestConfigFileLoggedAtDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fsiv.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o600))

	hook := test.NewGlobal()
	cfgFile = path
	t.Cleanup(func() {
		cfgFile = ""
		configUsed = ""
		logrus.SetLevel(logrus.InfoLevel)
	})

	initConfig()
	initLogging()

	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	var found bool
	for _, e := range hook.AllEntries() {
		if e.Message == "Using config file" {
			found = true
			assert.Equal(t, path, e.Data["file"])
		}
	}
	assert.True(t, found)
}
