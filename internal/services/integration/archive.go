package integration

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"regexp"

	"github.com/gabriel-vasile/mimetype"
)

const (
	CampaignManifest            = "campaign.xml"
	NomenclaturesManifest       = "nomenclatures.xml"
	QuestionnaireModelsManifest = "questionnaireModels.xml"

	nomenclaturePayloadDir  = "nomenclatures/"
	questionnairePayloadDir = "questionnaireModels/"
)

// ErrArchiveRead is returned when the uploaded archive cannot be opened or read.
// No integration result is produced in that case.
var ErrArchiveRead = errors.New("could not read integration archive")

var (
	nomenclaturePayloadPattern  = regexp.MustCompile(`^nomenclatures/.*json$`)
	questionnairePayloadPattern = regexp.MustCompile(`^questionnaireModels/.*json$`)
)

// Archive is an opened context archive with its entries classified
type Archive struct {
	reader    *zip.ReadCloser
	manifests map[string]*zip.File

	// payload entries keyed by their full path inside the archive
	nomenclaturePayloads  map[string]*zip.File
	questionnairePayloads map[string]*zip.File
}

// OpenArchive checks that path holds a zip archive and classifies its entries.
// Entries other than the three manifests and the two payload directories are ignored.
func OpenArchive(path string) (*Archive, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArchiveRead, err)
	}
	if !isZip(mtype) {
		return nil, fmt.Errorf("%w: unsupported content type %s", ErrArchiveRead, mtype.String())
	}

	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArchiveRead, err)
	}

	a := &Archive{
		reader:                reader,
		manifests:             make(map[string]*zip.File),
		nomenclaturePayloads:  make(map[string]*zip.File),
		questionnairePayloads: make(map[string]*zip.File),
	}
	for _, f := range reader.File {
		switch f.Name {
		case CampaignManifest, NomenclaturesManifest, QuestionnaireModelsManifest:
			a.manifests[f.Name] = f
		default:
			if nomenclaturePayloadPattern.MatchString(f.Name) {
				a.nomenclaturePayloads[f.Name] = f
			}
			if questionnairePayloadPattern.MatchString(f.Name) {
				a.questionnairePayloads[f.Name] = f
			}
		}
	}
	return a, nil
}

func isZip(mtype *mimetype.MIME) bool {
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is("application/zip") {
			return true
		}
	}
	return false
}

// Close releases the underlying file
func (a *Archive) Close() error {
	return a.reader.Close()
}

// Manifest returns the content of a manifest, found reports whether the archive holds it
func (a *Archive) Manifest(name string) (content []byte, found bool, err error) {
	f, ok := a.manifests[name]
	if !ok {
		return nil, false, nil
	}
	content, err = readEntry(f)
	return content, true, err
}

// NomenclaturePayload returns the JSON payload referenced by a nomenclature descriptor
func (a *Archive) NomenclaturePayload(fileName string) ([]byte, bool, error) {
	return lookupPayload(a.nomenclaturePayloads, nomenclaturePayloadDir+fileName)
}

// QuestionnairePayload returns the JSON payload referenced by a questionnaire model descriptor
func (a *Archive) QuestionnairePayload(fileName string) ([]byte, bool, error) {
	return lookupPayload(a.questionnairePayloads, questionnairePayloadDir+fileName)
}

func lookupPayload(entries map[string]*zip.File, path string) ([]byte, bool, error) {
	f, ok := entries[path]
	if !ok {
		return nil, false, nil
	}
	content, err := readEntry(f)
	return content, true, err
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrArchiveRead, f.Name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrArchiveRead, f.Name, err)
	}
	return content, nil
}
