package tagrelease

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"
)

// DefaultMetadataPath is the app metadata file, relative to the project directory.
const DefaultMetadataPath = "appinfo/info.xml"

const versionElement = "version"

// Files reads and writes the files the release touches.
type Files interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte) error
}

// OSFiles is the Files implementation backed by the local filesystem.
// WriteFile keeps the mode of an existing file.
type OSFiles struct{}

func (OSFiles) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (OSFiles) WriteFile(name string, data []byte) error {
	mode := fs.FileMode(0644)
	if fi, err := os.Stat(name); err == nil {
		mode = fi.Mode().Perm()
	}
	return os.WriteFile(name, data, mode)
}

// versionField is the location of the version text inside a metadata document.
type versionField struct {
	start, end int64 // byte range of the element content
	text       string
}

// locateVersionField decodes the whole document and returns the first
// <version> element directly under the root. Only comments, processing
// instructions and whitespace may follow the root element.
func locateVersionField(doc []byte) (*versionField, error) {
	const op = "parse metadata"

	dec := xml.NewDecoder(bytes.NewReader(doc))
	var (
		field   *versionField
		depth   int
		sawRoot bool
		inField bool
		start   int64
		text    strings.Builder
	)
	for {
		offset := dec.InputOffset()
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, newError(KindMalformed, op, "", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if sawRoot && depth == 0 {
				return nil, errorf(KindMalformed, op, "unexpected element <%s> after the root element", t.Name.Local)
			}
			depth++
			sawRoot = true
			if inField {
				return nil, errorf(KindMalformed, op, "<%s> must contain only text, found <%s>", versionElement, t.Name.Local)
			}
			if field == nil && depth == 2 && t.Name.Local == versionElement {
				inField = true
				start = dec.InputOffset()
			}
		case xml.CharData:
			if depth == 0 && len(bytes.Trim(t, "\ufeff \t\r\n")) > 0 {
				return nil, errorf(KindMalformed, op, "text outside the root element")
			}
			if inField {
				text.Write(t)
			}
		case xml.EndElement:
			if inField && depth == 2 {
				field = &versionField{start: start, end: offset, text: text.String()}
				inField = false
			}
			depth--
		}
	}

	if !sawRoot {
		return nil, errorf(KindMalformed, op, "document has no root element")
	}
	if field == nil {
		return nil, errorf(KindNotFound, op, "no <%s> element", versionElement)
	}
	if strings.TrimSpace(field.text) == "" {
		return nil, errorf(KindNotFound, op, "<%s> element is empty", versionElement)
	}
	return field, nil
}

// ReadMetadataVersion extracts the version from a metadata document.
func ReadMetadataVersion(doc []byte) (Version, error) {
	field, err := locateVersionField(doc)
	if err != nil {
		return Version{}, err
	}
	v, err := ParseVersion(field.text)
	if err != nil {
		return Version{}, newError(KindMalformed, "parse metadata version", "", err)
	}
	return v, nil
}

// ReplaceMetadataVersion returns a copy of doc with only the version text
// replaced. Whitespace around the old version inside the element is kept.
func ReplaceMetadataVersion(doc []byte, v Version) ([]byte, error) {
	field, err := locateVersionField(doc)
	if err != nil {
		var re *Error
		if errors.As(err, &re) {
			err = re.Err
		}
		return nil, newError(KindWrite, "replace metadata version", "", err)
	}

	raw := doc[field.start:field.end]
	lead := len(raw) - len(bytes.TrimLeft(raw, " \t\r\n"))
	trail := len(raw) - len(bytes.TrimRight(raw, " \t\r\n"))

	out := make([]byte, 0, len(doc)+8)
	out = append(out, doc[:field.start+int64(lead)]...)
	out = append(out, v.String()...)
	out = append(out, doc[field.end-int64(trail):]...)
	return out, nil
}

// ReadMetadataFile reads the version from the metadata file at path.
func ReadMetadataFile(files Files, path string) (Version, error) {
	doc, err := files.ReadFile(path)
	if err != nil {
		return Version{}, newError(KindNotFound, "read metadata", path, err)
	}
	v, err := ReadMetadataVersion(doc)
	if err != nil {
		var re *Error
		if errors.As(err, &re) {
			re.Path = path
		}
		return Version{}, err
	}
	return v, nil
}

// WriteMetadataFile rewrites the version field of the metadata file at path.
func WriteMetadataFile(files Files, path string, v Version) error {
	const op = "write metadata"
	doc, err := files.ReadFile(path)
	if err != nil {
		return newError(KindWrite, op, path, err)
	}
	out, err := ReplaceMetadataVersion(doc, v)
	if err != nil {
		var re *Error
		if errors.As(err, &re) {
			err = re.Err
		}
		return newError(KindWrite, op, path, err)
	}
	if err := files.WriteFile(path, out); err != nil {
		return newError(KindWrite, op, path, err)
	}
	return nil
}
