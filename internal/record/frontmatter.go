package record

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontmatterDelimiter = "---"

// SplitFrontmatter separates a legacy "---\n<yaml>\n---\n<body>" file into
// its YAML block and body. Both parts are returned trimmed. ok is false
// when raw has no frontmatter block.
func SplitFrontmatter(raw string) (yamlText, body string, ok bool) {
	trimmed := strings.TrimSpace(raw)
	rest, found := strings.CutPrefix(trimmed, frontmatterDelimiter)
	if !found {
		return "", "", false
	}

	end := strings.Index(rest, "\n"+frontmatterDelimiter)
	if end < 0 {
		return "", "", false
	}

	yamlText = strings.TrimSpace(rest[:end])
	body = strings.TrimSpace(rest[end+len(frontmatterDelimiter)+1:])
	return yamlText, body, true
}

// JoinFrontmatter renders a frontmatter file from a YAML block and a body.
func JoinFrontmatter(yamlText, body string) string {
	return frontmatterDelimiter + "\n" + strings.TrimSpace(yamlText) + "\n" + frontmatterDelimiter + "\n" + body + "\n"
}

// EncodeMetadata renders v as YAML.
func EncodeMetadata(v any) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidMetadata, err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidMetadata, err)
	}
	return buf.String(), nil
}

// DecodeMetadata parses YAML metadata into v.
func DecodeMetadata(yamlText string, v any) error {
	if err := yaml.Unmarshal([]byte(yamlText), v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMetadata, err)
	}
	return nil
}
