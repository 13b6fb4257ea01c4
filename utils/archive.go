package utils

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// ArchiveEntry is the first file record extracted from a zip payload.
type ArchiveEntry struct {
	Name    string
	Content []byte
}

func IsZipName(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".zip")
}

// ExtractFirstEntry opens the archive in memory and returns its first entry
// in the archive's own enumeration order. Remaining entries are ignored. An
// empty archive returns (nil, nil): the caller keeps the original payload.
// Encrypted entries are not supported and fail with the zip reader's error.
func ExtractFirstEntry(data []byte) (*ArchiveEntry, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	if len(reader.File) == 0 {
		return nil, nil
	}

	first := reader.File[0]
	rc, err := first.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open archive entry %s: %w", first.Name, err)
	}
	defer rc.Close()

	var buffer bytes.Buffer
	if _, err := io.Copy(&buffer, rc); err != nil {
		return nil, fmt.Errorf("failed to extract archive entry %s: %w", first.Name, err)
	}

	return &ArchiveEntry{
		Name:    first.Name,
		Content: buffer.Bytes(),
	}, nil
}
