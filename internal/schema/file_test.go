package schema

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeYAML(t *testing.T) {
	src := `
entities:
  - name: Author
    fields:
      - {name: id, type: int}
  - name: Book
    fields:
      - name: author_id
        type: int
        relation:
          target_entity: Author
`
	doc, err := Decode([]byte(src), FormatYAML)
	require.NoError(t, err)
	require.Len(t, doc.Entities, 2)
	assert.Equal(t, &Relation{TargetEntity: "Author"}, doc.Entities[1].Fields[0].Relation)
}

func TestDecodeBroken(t *testing.T) {
	_, err := Decode([]byte(`{"entities": [`), FormatJSON)
	assert.Error(t, err)
}

func TestWriteReadFile(t *testing.T) {
	dir := t.TempDir()
	doc := ToWire(sample())

	for _, name := range []string{"schema.yaml", "schema.json"} {
		path := filepath.Join(dir, name)
		require.NoError(t, WriteFile(path, doc))
		back, err := ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, doc, back, name)
	}
}

func TestEncodeEmptyJSON(t *testing.T) {
	data, err := Encode(Document{}, FormatJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `{"entities": []}`, string(data))
}
