package xmljson

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLunaticDataConverter_Convert(t *testing.T) {
	dir := t.TempDir()
	converter := NewLunaticDataConverter(dir)

	data := `<Data>
		<EXTERNAL>
			<CITY type="string">Paris</CITY>
			<AGE type="number">42</AGE>
			<MISSING type="null"/>
		</EXTERNAL>
		<COLLECTED>
			<READY>
				<COLLECTED type="boolean">true</COLLECTED>
				<EDITED type="null"/>
			</READY>
			<NAMES type="array">
				<COLLECTED type="string">Ann</COLLECTED>
				<COLLECTED type="string">Bob</COLLECTED>
			</NAMES>
		</COLLECTED>
	</Data>`

	got, err := converter.Convert([]byte(data))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"EXTERNAL": {"CITY": "Paris", "AGE": 42, "MISSING": null},
		"COLLECTED": {
			"READY": {"COLLECTED": true, "EDITED": null},
			"NAMES": ["Ann", "Bob"]
		}
	}`, string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temporary data file must be removed")
}

func TestLunaticDataConverter_InvalidXMLCleansUp(t *testing.T) {
	dir := t.TempDir()
	converter := NewLunaticDataConverter(dir)

	_, err := converter.Convert([]byte(`<Data><COLLECTED></Data>`))
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLunaticDataConverter_InvalidNumber(t *testing.T) {
	converter := NewLunaticDataConverter(t.TempDir())

	_, err := converter.Convert([]byte(`<Data><AGE type="number">old</AGE></Data>`))
	assert.Error(t, err)
}

func TestLunaticDataConverter_SingleArrayItem(t *testing.T) {
	converter := NewLunaticDataConverter(t.TempDir())

	got, err := converter.Convert([]byte(`<Data><NAMES type="array"><COLLECTED type="string">Ann</COLLECTED></NAMES></Data>`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"NAMES":["Ann"]}`, string(got))
}

func TestLunaticDataConverter_ArrayKeepsDocumentOrder(t *testing.T) {
	converter := NewLunaticDataConverter(t.TempDir())
	data := `<Data><L type="array"><A type="number">1</A><B type="number">2</B><C type="number">3</C><A type="number">4</A></L></Data>`

	for i := 0; i < 50; i++ {
		got, err := converter.Convert([]byte(data))
		require.NoError(t, err)
		assert.JSONEq(t, `{"L":[1,2,3,4]}`, string(got))
	}
}

func TestLunaticDataConverter_RepeatedUntypedChildren(t *testing.T) {
	converter := NewLunaticDataConverter(t.TempDir())

	got, err := converter.Convert([]byte(`<Data><PERSON><NAME>Ann</NAME></PERSON><PERSON><NAME>Bob</NAME></PERSON></Data>`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"PERSON":[{"NAME":"Ann"},{"NAME":"Bob"}]}`, string(got))
}
