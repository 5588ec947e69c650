package integration

import (
	"archive/zip"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

const (
	campaignX1 = `<Campaign><Id>x1</Id><Label>Test</Label></Campaign>`

	nomenclaturesN1 = `<Nomenclatures>
	<Nomenclature><Id>N1</Id><Label>first list</Label><FileName>n1.json</FileName></Nomenclature>
</Nomenclatures>`

	questionnairesQ1 = `<QuestionnaireModels>
	<QuestionnaireModel>
		<Id>Q1</Id>
		<Label>first questionnaire</Label>
		<FileName>q1.json</FileName>
		<CampaignId>X1</CampaignId>
		<RequiredNomenclatures><Nomenclature>N1</Nomenclature></RequiredNomenclatures>
	</QuestionnaireModel>
</QuestionnaireModels>`
)

func fullArchive() map[string]string {
	return map[string]string{
		CampaignManifest:              campaignX1,
		NomenclaturesManifest:         nomenclaturesN1,
		QuestionnaireModelsManifest:   questionnairesQ1,
		"nomenclatures/n1.json":       `["a","b"]`,
		"questionnaireModels/q1.json": `{"foo":1}`,
	}
}

// writeArchive zips files into a temp archive and returns its path
func writeArchive(t *testing.T, files map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "context.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create archive: %v", err)
	}
	defer f.Close()

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	zw := zip.NewWriter(f)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(files[name])); err != nil {
			t.Fatalf("write entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close archive: %v", err)
	}
	return path
}

func message(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// truncate keeps only the first bytes of a file so that it is no longer a readable zip
func truncate(path string) error {
	return os.WriteFile(path, []byte("not a zip archive"), 0600)
}
