package translit

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"
)

func TestTablesAreOrdered(t *testing.T) {
	for _, script := range allScripts {
		table := TableFor(script)
		require.NotNil(t, table)

		entries := table.Entries()
		require.Equal(t, table.Len(), len(entries))
		assert.Equal(t, script.String(), table.Name())

		seen := map[string]bool{}
		for i, e := range entries {
			assert.False(t, seen[e.Source], "%s: duplicate key %q", table.Name(), e.Source)
			seen[e.Source] = true

			assert.True(t, norm.NFC.IsNormalString(e.Source), "%s: key %q is not NFC", table.Name(), e.Source)
			assert.LessOrEqual(t, utf8.RuneCountInString(e.Source), table.MaxKeyLen())

			if i > 0 {
				assert.Negative(t, compareMappings(entries[i-1], e), "%s: %q before %q", table.Name(), entries[i-1].Source, e.Source)
			}
		}
	}
}

func TestTableLookup(t *testing.T) {
	got, ok := LatinTable().Lookup("bh")
	assert.True(t, ok)
	assert.Equal(t, "бг", got)

	_, ok = LatinTable().Lookup("w")
	assert.False(t, ok)

	got, ok = DevanagariTable().Lookup("्")
	assert.True(t, ok)
	assert.Equal(t, "", got)

	got, ok = BengaliTable().Lookup("ভ")
	assert.True(t, ok)
	assert.Equal(t, "бг", got)

	assert.Nil(t, TableFor(SourceScript(42)))
	assert.Equal(t, 3, LatinTable().MaxKeyLen())
}

func TestTableEntriesCopy(t *testing.T) {
	entries := LatinTable().Entries()
	entries[0].Target = "x"

	assert.NotEqual(t, "x", LatinTable().Entries()[0].Target)
}

func TestTablesAvoidForbiddenLetters(t *testing.T) {
	for _, script := range allScripts {
		for _, e := range TableFor(script).Entries() {
			assert.True(t, Validate(e.Target).Valid, "%s: %q -> %q", script, e.Source, e.Target)
		}
	}
}

func TestNewTableRejectsConflicts(t *testing.T) {
	assert.Panics(t, func() {
		newTable("conflict", map[string]string{
			"\u0101":  "а",
			"a\u0304": "б",
		})
	})

	assert.NotPanics(t, func() {
		newTable("same", map[string]string{
			"\u0101":  "а",
			"a\u0304": "а",
		})
	})
}

func TestLatinTargetsContainNoKeys(t *testing.T) {
	for _, e := range LatinTable().Entries() {
		for _, key := range LatinTable().Keys() {
			if e.Target == key {
				// ī and Ī map to themselves
				continue
			}

			assert.NotContains(t, e.Target, key, "target of %q", e.Source)
		}
	}
}
