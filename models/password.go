package models

// PasswordMetadata is the YAML metadata of a password record. It is
// stored encrypted, or as plaintext frontmatter in legacy files.
type PasswordMetadata struct {
	ID      string   `yaml:"id" json:"id"`
	Title   string   `yaml:"title" json:"title"`
	Color   string   `yaml:"color,omitempty" json:"color,omitempty"`
	Pinned  bool     `yaml:"pinned,omitempty" json:"pinned,omitempty"`
	Tags    []string `yaml:"tags,omitempty" json:"tags,omitempty"`
	Created string   `yaml:"created,omitempty" json:"created,omitempty"`
	Updated string   `yaml:"updated,omitempty" json:"updated,omitempty"`
}

// PasswordContent is the secret body of a password record, serialized as
// JSON before encryption.
type PasswordContent struct {
	URL      string `json:"url,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// PasswordRecord is a fully decrypted password record.
type PasswordRecord struct {
	Metadata PasswordMetadata `json:"metadata"`
	Content  PasswordContent  `json:"content"`
	// Legacy is true for frontmatter files with an encrypted body.
	Legacy bool `json:"legacy,omitempty"`
}
