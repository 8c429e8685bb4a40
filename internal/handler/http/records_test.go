package http

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/claudia-app/claudia-vault/internal/crypto"
	"github.com/claudia-app/claudia-vault/internal/record"
	"github.com/claudia-app/claudia-vault/internal/vault"
	"github.com/claudia-app/claudia-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptRecord(t *testing.T) {
	t.Run("sealed", func(t *testing.T) {
		var gotMeta, gotBody string
		h := newTestHandler(&fakeVaultService{
			encryptRecord: func(_ context.Context, metadata, body string) (string, error) {
				gotMeta, gotBody = metadata, body
				return "CLAUDIA-ENCRYPTED-v1\n...", nil
			},
		})

		rec := serve(t, h, http.MethodPost, "/api/records/encrypt", models.EncryptRecordRequest{Metadata: "title: a", Body: "hello"})

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "title: a", gotMeta)
		assert.Equal(t, "hello", gotBody)
		assert.Equal(t, "CLAUDIA-ENCRYPTED-v1\n...", decodeBody[models.RawRecord](t, rec).Raw)
	})

	t.Run("locked", func(t *testing.T) {
		h := newTestHandler(&fakeVaultService{
			encryptRecord: func(context.Context, string, string) (string, error) { return "", vault.ErrVaultLocked },
		})

		rec := serve(t, h, http.MethodPost, "/api/records/encrypt", models.EncryptRecordRequest{})

		assert.Equal(t, http.StatusLocked, rec.Code)
	})
}

func TestDecryptRecord(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "opened", wantStatus: http.StatusOK},
		{name: "locked", err: vault.ErrVaultLocked, wantStatus: http.StatusLocked},
		{name: "malformed", err: fmt.Errorf("%w: missing [CONTENT]", record.ErrMalformedRecord), wantStatus: http.StatusUnprocessableEntity},
		{name: "tampered", err: fmt.Errorf("decrypt content: %w", crypto.ErrDecryptionFailed), wantStatus: http.StatusUnprocessableEntity},
		{name: "neither format", err: record.ErrNotLegacyRecord, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&fakeVaultService{
				decryptRecord: func(_ context.Context, raw string) (models.Record, error) {
					return models.Record{Metadata: "m", Body: raw, Encrypted: true}, tt.err
				},
			})

			rec := serve(t, h, http.MethodPost, "/api/records/decrypt", models.RawRecord{Raw: "payload"})

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.err == nil {
				got := decodeBody[models.Record](t, rec)
				assert.Equal(t, "payload", got.Body)
				assert.True(t, got.Encrypted)
			}
		})
	}
}

func TestDetectRecord(t *testing.T) {
	h := newTestHandler(&fakeVaultService{
		isEncrypted: func(raw string) bool { return raw == "encrypted" },
	})

	rec := serve(t, h, http.MethodPost, "/api/records/detect", models.RawRecord{Raw: "encrypted"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeBody[models.DetectResponse](t, rec).Encrypted)

	rec = serve(t, h, http.MethodPost, "/api/records/detect", models.RawRecord{Raw: "---\ntitle: a\n---\n"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decodeBody[models.DetectResponse](t, rec).Encrypted)
}

func TestMigrateRecord(t *testing.T) {
	h := newTestHandler(&fakeVaultService{
		migrateLegacy: func(_ context.Context, raw string) (string, error) {
			return "upgraded:" + raw, nil
		},
	})

	rec := serve(t, h, http.MethodPost, "/api/records/migrate", models.RawRecord{Raw: "legacy"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "upgraded:legacy", decodeBody[models.RawRecord](t, rec).Raw)
}
