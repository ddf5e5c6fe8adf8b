// Package assetfs loads branding assets for certificate rendering from a
// directory on disk.
package assetfs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/CBSweeney/ElectNanoCOA/coa"
)

// Default asset filenames inside the root directory.
const (
	HeaderFile     = "header.png"
	FooterFile     = "footer.png"
	DisclaimerFile = "disclaimer.txt"
	VersionFile    = "version.txt"
)

// DefaultDisclaimer is used when the root carries no disclaimer file.
const DefaultDisclaimer = "DISCLAIMER: Materials, products, and services are provided under our standard terms and conditions."

// DefaultVersion is used when the root carries no version file.
const DefaultVersion = "1.0"

// Store loads branding assets from a filesystem root. The loaded Assets are
// immutable and safe for reuse across concurrent renders.
type Store struct {
	Root string
}

// NewStore creates a filesystem-backed asset store.
func NewStore(root string) *Store {
	return &Store{Root: root}
}

// Load reads the branding assets once. Missing images degrade to absent
// (the renderer skips their band); missing disclaimer or version text falls
// back to the documented defaults. Any other I/O failure is an error.
func (s *Store) Load() (coa.Assets, error) {
	if s == nil || s.Root == "" {
		return coa.Assets{}, coa.NewError(coa.KindValidation, "asset root is required", nil)
	}

	header, err := readOptionalFile(filepath.Join(s.Root, HeaderFile))
	if err != nil {
		return coa.Assets{}, err
	}
	footer, err := readOptionalFile(filepath.Join(s.Root, FooterFile))
	if err != nil {
		return coa.Assets{}, err
	}
	disclaimer, err := readOptionalText(filepath.Join(s.Root, DisclaimerFile), DefaultDisclaimer)
	if err != nil {
		return coa.Assets{}, err
	}
	version, err := readOptionalText(filepath.Join(s.Root, VersionFile), DefaultVersion)
	if err != nil {
		return coa.Assets{}, err
	}

	return coa.Assets{
		HeaderImage: header,
		FooterImage: footer,
		Disclaimer:  disclaimer,
		Version:     version,
	}, nil
}

func readOptionalFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, coa.NewError(coa.KindInternal, "failed to read asset "+filepath.Base(path), err)
	}
	return data, nil
}

func readOptionalText(path, fallback string) (string, error) {
	data, err := readOptionalFile(path)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return fallback, nil
	}
	return text, nil
}
