package service

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/claudia-app/claudia-vault/internal/config"
	"github.com/claudia-app/claudia-vault/internal/crypto"
	"github.com/claudia-app/claudia-vault/internal/logger"
	"github.com/claudia-app/claudia-vault/internal/mock"
	"github.com/claudia-app/claudia-vault/internal/record"
	"github.com/claudia-app/claudia-vault/internal/rotation"
	"github.com/claudia-app/claudia-vault/internal/vault"
	"github.com/claudia-app/claudia-vault/models"
)

var (
	masterPW = []byte("correct horse")
	cheap    = crypto.Params{Time: 1, Memory: 64, Threads: 1}
)

type testVault struct {
	svc       VaultService
	workspace string
	codec     *record.Codec
	cipher    crypto.Cipher
	journal   *mock.MockRotationJournal
}

// testVaultOptions swaps collaborators of a test vault.
type testVaultOptions struct {
	hasher crypto.CredentialHasher
	// onMarkEntry runs inside the rotation each time an entry is journaled.
	onMarkEntry func()
}

// newTestVault builds a service over a fresh workspace. With setUp the
// vault is initialized with masterPW and left unlocked.
func newTestVault(t *testing.T, setUp bool) *testVault {
	t.Helper()
	return newTestVaultWith(t, setUp, testVaultOptions{})
}

func newTestVaultWith(t *testing.T, setUp bool, opts testVaultOptions) *testVault {
	t.Helper()

	workspace := t.TempDir()
	cipher := crypto.NewCipher(cheap)
	hasher := opts.hasher
	if hasher == nil {
		hasher = crypto.NewCredentialHasher(cheap)
	}
	codec := record.NewCodec(cipher)
	session := vault.NewSession(vault.NewFileCredentialStore(workspace), hasher, vault.SessionConfig{IdleTimeout: time.Hour}, logger.Nop())

	ctrl := gomock.NewController(t)
	journal := mock.NewMockRotationJournal(ctrl)
	journal.EXPECT().Unfinished(gomock.Any()).Return(nil, nil, nil).AnyTimes()
	journal.EXPECT().Begin(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	journal.EXPECT().MarkEntry(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string, string, models.EntryStatus) error {
			if opts.onMarkEntry != nil {
				opts.onMarkEntry()
			}
			return nil
		}).AnyTimes()
	journal.EXPECT().Finish(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	deps := Dependencies{
		Session:   session,
		Passwords: vault.NewPasswordsGate(session, 10*time.Minute),
		Codec:     codec,
		Rotator:   rotation.NewRotator(codec, hasher, session, journal, workspace, logger.Nop()),
	}
	appInfo, err := NewAppInfoService(models.NewAppBuildInfo("1.2.3", "", ""), logger.Nop())
	require.NoError(t, err)

	svc, err := NewVaultService(deps, config.Vault{MaxConcurrentDerivations: 2}, appInfo, logger.Nop())
	require.NoError(t, err)

	if setUp {
		require.NoError(t, svc.Setup(context.Background(), masterPW))
	}
	return &testVault{svc: svc, workspace: workspace, codec: codec, cipher: cipher, journal: journal}
}

func (v *testVault) writeFile(t *testing.T, rel, content string) string {
	t.Helper()
	path := filepath.Join(v.workspace, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// sealedPassword builds a legacy password record sealed with password.
func (v *testVault) sealedPassword(t *testing.T, password []byte) string {
	t.Helper()
	blob, err := v.cipher.Encrypt(context.Background(), []byte(`{"username":"me","password":"hunter2"}`), password)
	require.NoError(t, err)
	return record.JoinFrontmatter("id: p-legacy\ntitle: Old bank", blob)
}

// pausingHasher holds the first successful Verify, after its result is
// known, until release is closed.
type pausingHasher struct {
	crypto.CredentialHasher

	paused  atomic.Bool
	checked chan struct{}
	release chan struct{}
}

func newPausingHasher() *pausingHasher {
	return &pausingHasher{
		CredentialHasher: crypto.NewCredentialHasher(cheap),
		checked:          make(chan struct{}),
		release:          make(chan struct{}),
	}
}

func (h *pausingHasher) Verify(password []byte, encoded string) bool {
	ok := h.CredentialHasher.Verify(password, encoded)
	if ok && h.paused.CompareAndSwap(false, true) {
		close(h.checked)
		<-h.release
	}
	return ok
}
