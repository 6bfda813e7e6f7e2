package engine

import (
	"os"
	"testing"

	"github.com/nvkalinin/widget-calendar/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleClock = store.Vars{
	"format":   "24h",
	"locale":   "de-DE",
	"timezone": "Europe/Berlin",
}

func TestBolt(t *testing.T) {
	b, _ := makeBolt(t)
	defer b.Close()

	// Пустая база.
	_, ok := b.GetVar("clock", "format")
	assert.False(t, ok)
	_, ok = b.FindSection("clock")
	assert.False(t, ok)

	err := b.PutSection("clock", sampleClock)
	require.NoError(t, err)
	err = b.PutVar("calendar", "locale", "ru-RU")
	require.NoError(t, err)

	vars, ok := b.FindSection("clock")
	assert.True(t, ok)
	assert.Equal(t, sampleClock, vars)

	val, ok := b.GetVar("calendar", "locale")
	assert.True(t, ok)
	assert.Equal(t, "ru-RU", val)

	// Секция с общим префиксом не должна попасть в выборку.
	err = b.PutVar("clock2", "format", "12h")
	require.NoError(t, err)
	vars, ok = b.FindSection("clock")
	assert.True(t, ok)
	assert.Equal(t, sampleClock, vars)
}

func TestBolt_backup(t *testing.T) {
	b, dir := makeBolt(t)

	err := b.PutSection("clock", sampleClock)
	require.NoError(t, err)

	f, err := os.Create(dir + "/backup.bolt")
	require.NoError(t, err)

	err = b.Backup(f)
	require.NoError(t, err)

	err = f.Close()
	require.NoError(t, err)
	err = b.Close()
	require.NoError(t, err)

	// Создать Bolt из бекапа и проверить, что все данные там.
	b, err = NewBolt(dir + "/backup.bolt")
	require.NoError(t, err)
	defer b.Close()

	vars, ok := b.FindSection("clock")
	assert.True(t, ok)
	assert.Equal(t, sampleClock, vars)
}

func makeBolt(t *testing.T) (b *Bolt, dir string) {
	dir = t.TempDir()
	b, err := NewBolt(dir + "/db.bolt")
	require.NoError(t, err)
	return b, dir
}
