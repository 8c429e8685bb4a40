package models

import (
	"bytes"
	"encoding/json"
)

// SecretBytes is a password carried in a JSON string. It decodes into a
// byte slice the receiver can wipe once the request has been served.
type SecretBytes []byte

// UnmarshalJSON copies the string contents without building an
// intermediate Go string when the value has no escape sequences.
func (s *SecretBytes) UnmarshalJSON(b []byte) error {
	if len(b) >= 2 && b[0] == '"' && b[len(b)-1] == '"' && !bytes.ContainsRune(b[1:len(b)-1], '\\') {
		*s = append((*s)[:0], b[1:len(b)-1]...)
		return nil
	}

	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*s = SecretBytes(v)
	return nil
}

// MarshalJSON encodes the secret as a JSON string.
func (s SecretBytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

// PasswordRequest carries a master password.
type PasswordRequest struct {
	Password SecretBytes `json:"password"`
}

// ChangePasswordRequest carries the current and the new master password.
type ChangePasswordRequest struct {
	OldPassword SecretBytes `json:"old_password"`
	NewPassword SecretBytes `json:"new_password"`
}

// UnlockResponse reports the outcome of an unlock attempt. A wrong
// password is not an error.
type UnlockResponse struct {
	Unlocked bool `json:"unlocked"`
}

// PasswordsStatus reports the passwords sub-session.
type PasswordsStatus struct {
	Unlocked         bool  `json:"unlocked"`
	RemainingSeconds int64 `json:"remaining_seconds"`
}

// EncryptRecordRequest asks to seal a record under the session password.
type EncryptRecordRequest struct {
	Metadata string `json:"metadata"`
	Body     string `json:"body"`
}

// RawRecord carries the on-disk text of a record.
type RawRecord struct {
	Raw string `json:"raw"`
}

// DetectResponse reports whether text is in the encrypted format.
type DetectResponse struct {
	Encrypted bool `json:"encrypted"`
}

// EncryptPasswordRequest asks to seal a password record.
type EncryptPasswordRequest struct {
	Metadata PasswordMetadata `json:"metadata"`
	Content  PasswordContent  `json:"content"`
}

// DecryptPasswordsRequest maps record IDs to their on-disk text.
type DecryptPasswordsRequest struct {
	Records map[string]string `json:"records"`
}

// DecryptPasswordsResponse carries the decrypted contents keyed by record
// ID. Records that failed are listed in Errors and absent from Contents.
type DecryptPasswordsResponse struct {
	Contents map[string]PasswordRecord `json:"contents"`
	Errors   map[string]string         `json:"errors,omitempty"`
}

// ErrorResponse is the JSON body of every non-2xx API response.
type ErrorResponse struct {
	Error string `json:"error"`
}
