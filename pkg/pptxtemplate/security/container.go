package security

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/richardlehane/mscfb"
	"github.com/richardlehane/msoleps"
)

// ErrEncrypted indicates a password-protected presentation. Office stores
// those as an OLE compound file wrapping the encrypted package.
var ErrEncrypted = errors.New("presentation is password protected")

// ErrLegacyFormat indicates a binary (pre-2007) PowerPoint file.
var ErrLegacyFormat = errors.New("legacy binary presentation format is not supported")

var cfbSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// CompoundFile summarizes an OLE compound file.
type CompoundFile struct {
	// Streams lists the stream and storage names.
	Streams []string
	// Encrypted is set when the file holds an encrypted OOXML package.
	Encrypted bool
	// Title is the summary information title, if any.
	Title string
}

// IsCompoundFile reports whether header starts with the OLE signature.
func IsCompoundFile(header []byte) bool {
	return bytes.HasPrefix(header, cfbSignature)
}

// CheckContainer rejects presentations that are OLE compound files with
// ErrEncrypted or ErrLegacyFormat. Any other file passes; zip validity is
// checked when the package is opened.
func CheckContainer(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	header := make([]byte, len(cfbSignature))
	if _, err := io.ReadFull(f, header); err != nil || !IsCompoundFile(header) {
		return nil
	}

	cf, err := InspectCompoundFile(f)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLegacyFormat, err)
	}
	if cf.Encrypted {
		return ErrEncrypted
	}
	if cf.Title != "" {
		return fmt.Errorf("%w (title %q); save it as .pptx first", ErrLegacyFormat, cf.Title)
	}
	return fmt.Errorf("%w; save it as .pptx first", ErrLegacyFormat)
}

// InspectCompoundFile lists the streams of an OLE compound file and reads
// the title from its summary information.
func InspectCompoundFile(r io.ReaderAt) (*CompoundFile, error) {
	doc, err := mscfb.New(r)
	if err != nil {
		return nil, err
	}
	cf := &CompoundFile{}
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		cf.Streams = append(cf.Streams, entry.Name)
		switch entry.Name {
		case "EncryptedPackage", "EncryptionInfo":
			cf.Encrypted = true
		case "\x05SummaryInformation":
			cf.Title = summaryTitle(entry)
		}
	}
	return cf, nil
}

func summaryTitle(r io.Reader) string {
	props, err := msoleps.NewFrom(r)
	if err != nil {
		return ""
	}
	for _, p := range props.Property {
		if p.Name == "Title" {
			return p.String()
		}
	}
	return ""
}
