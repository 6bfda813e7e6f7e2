package engine

import (
	"sync"
	"testing"

	"github.com/nvkalinin/widget-calendar/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_GetVar(t *testing.T) {
	mem := &Memory{store: store.Sections{
		"clock": {"format": "24h"},
	}}

	// Нормальный сценарий.
	val, ok := mem.GetVar("clock", "format")
	assert.Equal(t, "24h", val)
	assert.True(t, ok)

	// Когда нет переменной или секции.
	val, ok = mem.GetVar("clock", "locale")
	assert.Empty(t, val)
	assert.False(t, ok)

	val, ok = mem.GetVar("calendar", "locale")
	assert.Empty(t, val)
	assert.False(t, ok)
}

func TestMemory_FindSection(t *testing.T) {
	mem := &Memory{store: store.Sections{
		"clock": {"format": "24h"},
	}}

	vars, ok := mem.FindSection("clock")
	assert.Equal(t, store.Vars{"format": "24h"}, vars)
	assert.True(t, ok)

	// Изменение vars не должно влиять на mem.store.
	vars["format"] = "12h"
	assert.Equal(t, "24h", mem.store["clock"]["format"])

	vars, ok = mem.FindSection("calendar")
	assert.Nil(t, vars)
	assert.False(t, ok)
}

func TestMemory_PutSection(t *testing.T) {
	mem := NewMemory()

	toSave := store.Vars{"format": "12h", "locale": "de-DE"}
	err := mem.PutSection("clock", toSave)
	require.NoError(t, err)

	err = mem.PutVar("clock", "format", "24h")
	require.NoError(t, err)

	expStore := store.Sections{
		"clock": {"format": "24h", "locale": "de-DE"},
	}
	assert.Equal(t, expStore, mem.store)

	// Изменение аргумента для PutSection не должно влиять на mem.store.
	toSave["locale"] = "en-US"
	assert.Equal(t, "de-DE", mem.store["clock"]["locale"])
}

func TestMemory_concurrent(t *testing.T) {
	mem := NewMemory()

	wg := sync.WaitGroup{}
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = mem.PutVar("calendar", "locale", "en-US")
				mem.GetVar("calendar", "locale")
			}
		}()
	}
	wg.Wait()

	val, ok := mem.GetVar("calendar", "locale")
	assert.True(t, ok)
	assert.Equal(t, "en-US", val)
}
