package plugin

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/beevik/etree"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html/charset"
)

var (
	// ErrFileNotFound is the kind of a ReportError raised for a missing report file.
	ErrFileNotFound = errors.New("file not found")
	// ErrMalformedReport is the kind of a ReportError raised for content that is not well-formed XML.
	ErrMalformedReport = errors.New("malformed xml report")
)

// ReportError describes why a report file could not be loaded.
type ReportError struct {
	File string
	Kind error
	Err  error
}

func (e *ReportError) Error() string {
	return e.Kind.Error() + ": " + e.File + ": " + e.Err.Error()
}

// Unwrap exposes both the kind and the underlying cause to errors.Is and
// errors.As.
func (e *ReportError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// LoadReport reads and parses the JUnit report at path.
func LoadReport(path string) (*etree.Document, error) {
	logrus.WithField("File", path).Info("Processing file")

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ReportError{File: path, Kind: ErrFileNotFound, Err: err}
		}
		logrus.WithError(err).WithField("File", path).Debug("Failed to read file")
		return nil, errors.Wrapf(err, "failed to read file %s", path)
	}

	if err := checkWellFormed(data); err != nil {
		logrus.WithError(err).WithField("File", path).Debug("Failed to parse JUnit XML")
		return nil, &ReportError{File: path, Kind: ErrMalformedReport, Err: err}
	}

	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	if err := doc.ReadFromBytes(data); err != nil {
		logrus.WithError(err).WithField("File", path).Debug("Failed to parse JUnit XML")
		return nil, &ReportError{File: path, Kind: ErrMalformedReport, Err: err}
	}
	if doc.Root() == nil {
		return nil, &ReportError{File: path, Kind: ErrMalformedReport, Err: errNoRoot}
	}
	return doc, nil
}

var errNoRoot = errors.New("no root element found")

// checkWellFormed runs the strict decoder over data. etree reads raw tokens
// and does not match end tags; the decoder does, but it allows any number of
// top-level elements, so the single root is enforced here.
func checkWellFormed(data []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charset.NewReaderLabel

	depth := 0
	seenRoot := false
	for {
		token, err := dec.Token()
		if err == io.EOF {
			if !seenRoot {
				return errNoRoot
			}
			return nil
		}
		if err != nil {
			return err
		}

		switch t := token.(type) {
		case xml.StartElement:
			if depth == 0 && seenRoot {
				line, _ := dec.InputPos()
				return fmt.Errorf("junk after document element: line %d", line)
			}
			seenRoot = true
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			if depth == 0 && len(bytes.TrimSpace(t)) > 0 {
				line, _ := dec.InputPos()
				if seenRoot {
					return fmt.Errorf("junk after document element: line %d", line)
				}
				return fmt.Errorf("text before document element: line %d", line)
			}
		}
	}
}
