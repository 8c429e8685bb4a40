// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package record reads and writes the on-disk text formats of vault
// records: the CLAUDIA-ENCRYPTED-v1 container and the legacy plaintext
// frontmatter files it replaced.
package record

import (
	"fmt"
	"strings"
)

const (
	// FormatHeader is the first line of every encrypted record.
	FormatHeader = "CLAUDIA-ENCRYPTED-v1"
	// MetadataMarker opens the metadata blob section.
	MetadataMarker = "[METADATA]"
	// ContentMarker opens the content blob section.
	ContentMarker = "[CONTENT]"
)

// EncryptedFile holds the two CipherBlobs of an encrypted record.
type EncryptedFile struct {
	Metadata string
	Content  string
}

// IsEncryptedFormat reports whether the first non-blank line of raw is the
// format header.
func IsEncryptedFormat(raw string) bool {
	for line := range strings.Lines(raw) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		return trimmed == FormatHeader
	}
	return false
}

// Parse splits an encrypted record into its metadata and content blobs.
// Blob lines are trimmed and concatenated, so wrapped base64 is accepted.
func Parse(raw string) (EncryptedFile, error) {
	lines := strings.Split(raw, "\n")
	if strings.TrimSpace(lines[0]) != FormatHeader {
		return EncryptedFile{}, fmt.Errorf("%w: missing header", ErrMalformedRecord)
	}

	metadataIdx, contentIdx := -1, -1
	for i, line := range lines {
		switch strings.TrimSpace(line) {
		case MetadataMarker:
			if metadataIdx < 0 {
				metadataIdx = i
			}
		case ContentMarker:
			if contentIdx < 0 {
				contentIdx = i
			}
		}
	}

	switch {
	case metadataIdx < 0:
		return EncryptedFile{}, fmt.Errorf("%w: missing %s section", ErrMalformedRecord, MetadataMarker)
	case contentIdx < 0:
		return EncryptedFile{}, fmt.Errorf("%w: missing %s section", ErrMalformedRecord, ContentMarker)
	case metadataIdx > contentIdx:
		return EncryptedFile{}, fmt.Errorf("%w: %s must come before %s", ErrMalformedRecord, MetadataMarker, ContentMarker)
	}

	file := EncryptedFile{
		Metadata: joinTrimmed(lines[metadataIdx+1 : contentIdx]),
		Content:  joinTrimmed(lines[contentIdx+1:]),
	}
	if file.Metadata == "" {
		return EncryptedFile{}, fmt.Errorf("%w: empty %s section", ErrMalformedRecord, MetadataMarker)
	}
	if file.Content == "" {
		return EncryptedFile{}, fmt.Errorf("%w: empty %s section", ErrMalformedRecord, ContentMarker)
	}
	return file, nil
}

// Serialize renders the record container. Each line, including the last,
// ends with a newline.
func Serialize(metadataBlob, contentBlob string) string {
	var sb strings.Builder
	sb.Grow(len(FormatHeader) + len(MetadataMarker) + len(ContentMarker) + len(metadataBlob) + len(contentBlob) + 5)

	for _, line := range []string{FormatHeader, MetadataMarker, metadataBlob, ContentMarker, contentBlob} {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// String renders f with Serialize.
func (f EncryptedFile) String() string {
	return Serialize(f.Metadata, f.Content)
}

func joinTrimmed(lines []string) string {
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(strings.TrimSpace(line))
	}
	return sb.String()
}
