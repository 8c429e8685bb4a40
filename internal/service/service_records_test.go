package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claudia-app/claudia-vault/internal/crypto"
	"github.com/claudia-app/claudia-vault/internal/record"
	"github.com/claudia-app/claudia-vault/internal/vault"
	"github.com/claudia-app/claudia-vault/models"
)

func TestEncryptDecryptRecord(t *testing.T) {
	v := newTestVault(t, true)
	ctx := context.Background()

	raw, err := v.svc.EncryptRecord(ctx, "title: Plan", "# Plan\n\n- [ ] ship")
	require.NoError(t, err)
	assert.True(t, v.svc.IsEncryptedFormat(raw))
	assert.NotContains(t, raw, "ship")

	rec, err := v.svc.DecryptRecord(ctx, raw)
	require.NoError(t, err)
	assert.Equal(t, models.Record{Metadata: "title: Plan", Body: "# Plan\n\n- [ ] ship", Encrypted: true}, rec)
}

func TestRecordOperations_Locked(t *testing.T) {
	v := newTestVault(t, true)
	ctx := context.Background()
	raw, err := v.svc.EncryptRecord(ctx, "title: x", "y")
	require.NoError(t, err)

	v.svc.Lock(ctx)

	_, err = v.svc.EncryptRecord(ctx, "title: x", "y")
	assert.ErrorIs(t, err, vault.ErrVaultLocked)
	_, err = v.svc.DecryptRecord(ctx, raw)
	assert.ErrorIs(t, err, vault.ErrVaultLocked)
	_, err = v.svc.MigrateLegacy(ctx, "---\ntitle: x\n---\ny")
	assert.ErrorIs(t, err, vault.ErrVaultLocked)
}

func TestDecryptRecord_Errors(t *testing.T) {
	v := newTestVault(t, true)
	ctx := context.Background()

	foreign, err := v.codec.CreateEncryptedFile(ctx, "title: x", "y", []byte("someone else"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{name: "other password", raw: foreign, wantErr: crypto.ErrDecryptionFailed},
		{name: "truncated", raw: record.FormatHeader + "\n[METADATA]\n", wantErr: record.ErrMalformedRecord},
		{name: "neither format", raw: "just text", wantErr: record.ErrNotLegacyRecord},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.svc.DecryptRecord(ctx, tt.raw)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDecryptRecord_Legacy(t *testing.T) {
	v := newTestVault(t, true)

	rec, err := v.svc.DecryptRecord(context.Background(), "---\ntitle: Old\n---\nplain body\n")
	require.NoError(t, err)
	assert.Equal(t, models.Record{Metadata: "title: Old", Body: "plain body"}, rec)
}

func TestMigrateLegacy(t *testing.T) {
	v := newTestVault(t, true)
	ctx := context.Background()

	t.Run("plaintext note", func(t *testing.T) {
		raw, err := v.svc.MigrateLegacy(ctx, "---\ntitle: Old\n---\nplain body\n")
		require.NoError(t, err)
		require.True(t, record.IsEncryptedFormat(raw))

		rec, err := v.svc.DecryptRecord(ctx, raw)
		require.NoError(t, err)
		assert.Equal(t, "plain body", rec.Body)
	})

	t.Run("sealed password record", func(t *testing.T) {
		raw, err := v.svc.MigrateLegacy(ctx, v.sealedPassword(t, masterPW))
		require.NoError(t, err)
		require.True(t, record.IsEncryptedFormat(raw))

		rec, err := v.svc.DecryptRecord(ctx, raw)
		require.NoError(t, err)
		assert.JSONEq(t, `{"username":"me","password":"hunter2"}`, rec.Body)
	})

	t.Run("already encrypted", func(t *testing.T) {
		raw, err := v.svc.EncryptRecord(ctx, "title: x", "y")
		require.NoError(t, err)

		again, err := v.svc.MigrateLegacy(ctx, raw)
		require.NoError(t, err)
		assert.Equal(t, raw, again)
	})
}
