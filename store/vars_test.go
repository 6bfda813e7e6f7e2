package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSections_Copy(t *testing.T) {
	sOrig := Sections{
		"clock": Vars{"format": "12h"},
	}

	sCopy := sOrig.Copy()
	sCopy["clock"]["format"] = "24h"

	assert.NotEqual(t, sCopy, sOrig)
	assert.Equal(t, "12h", sOrig["clock"]["format"])
}
