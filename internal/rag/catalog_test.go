package rag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCatalog(t *testing.T) {
	t.Run("parses rows and fills empty cells", func(t *testing.T) {
		input := "derived_ecn_no,ecn_number,parent_ecn,is_leaf,description_en,notes\n" +
			"3A001.a,3A001,3A,True,\"Electronic components, as follows\",See 3A101\n" +
			"EAR99,EAR99,,True,,\n"

		defs, err := ReadCatalog(strings.NewReader(input))

		require.NoError(t, err)
		require.Len(t, defs, 2)
		assert.Equal(t, "3A001.a", defs[0].ID)
		assert.Equal(t, "3A001", defs[0].EcnNumber)
		assert.Equal(t, "3A", defs[0].ParentEcn)
		assert.Equal(t, "ECCN: 3A001\nDescription: Electronic components, as follows\nNotes: See 3A101", defs[0].Text)
		assert.Equal(t, "", defs[1].ParentEcn)
		assert.Equal(t, "ECCN: EAR99\nDescription: \nNotes: ", defs[1].Text)
	})

	t.Run("optional columns may be absent", func(t *testing.T) {
		input := "ecn_number,derived_ecn_no\n5A002,5A002.a\n"

		defs, err := ReadCatalog(strings.NewReader(input))

		require.NoError(t, err)
		require.Len(t, defs, 1)
		assert.Equal(t, "5A002.a", defs[0].ID)
		assert.Equal(t, "", defs[0].Description)
	})

	t.Run("skips rows without id", func(t *testing.T) {
		input := "derived_ecn_no,ecn_number\n,3A001\n3A002,3A002\n"

		defs, err := ReadCatalog(strings.NewReader(input))

		require.NoError(t, err)
		require.Len(t, defs, 1)
		assert.Equal(t, "3A002", defs[0].ID)
	})

	t.Run("strips byte order mark from header", func(t *testing.T) {
		input := "\uFEFFderived_ecn_no,ecn_number,description_en\n4A003.b,4A003,Digital computers\n"

		defs, err := ReadCatalog(strings.NewReader(input))

		require.NoError(t, err)
		require.Len(t, defs, 1)
		assert.Equal(t, "4A003.b", defs[0].ID)
		assert.Equal(t, "4A003", defs[0].EcnNumber)
		assert.Equal(t, "Digital computers", defs[0].Description)
	})

	t.Run("missing required column", func(t *testing.T) {
		_, err := ReadCatalog(strings.NewReader("ecn_number,notes\n3A001,x\n"))

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "derived_ecn_no")
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := ReadCatalog(strings.NewReader(""))

		assert.Error(t, err)
	})
}
