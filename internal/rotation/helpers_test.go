package rotation

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/claudia-app/claudia-vault/internal/crypto"
	"github.com/claudia-app/claudia-vault/internal/logger"
	"github.com/claudia-app/claudia-vault/internal/record"
	"github.com/claudia-app/claudia-vault/internal/store"
	"github.com/claudia-app/claudia-vault/internal/vault"
	"github.com/claudia-app/claudia-vault/models"
)

var (
	oldPW = []byte("old-master")
	newPW = []byte("new-master")

	cheapParams = crypto.Params{Time: 1, Memory: 64, Threads: 1}
)

const (
	notePath     = "folders/work/notes/a.md"
	taskPath     = "folders/work/tasks/b.md"
	passwordPath = "folders/passwords/bank.md"
	legacyPath   = "folders/notes/legacy.md"
	hiddenPath   = "folders/.trash/gone.md"
	legacyNote   = "---\ntitle: Old note\n---\nplain text\n"
)

type fixture struct {
	root    string
	codec   *record.Codec
	cipher  crypto.Cipher
	hasher  crypto.CredentialHasher
	session *vault.Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		root:   t.TempDir(),
		cipher: crypto.NewCipher(cheapParams),
		hasher: crypto.NewCredentialHasher(cheapParams),
	}
	f.codec = record.NewCodec(f.cipher)
	f.session = vault.NewSession(vault.NewFileCredentialStore(f.root), f.hasher, vault.SessionConfig{IdleTimeout: time.Hour}, logger.Nop())
	require.NoError(t, f.session.Setup(oldPW))

	ctx := context.Background()
	note, err := f.codec.CreateEncryptedFile(ctx, "title: A", "note body", oldPW)
	require.NoError(t, err)
	task, err := f.codec.CreateEncryptedFile(ctx, "title: B\nstatus: todo", "task body", oldPW)
	require.NoError(t, err)
	blob, err := f.cipher.Encrypt(ctx, []byte(`{"password":"hunter2"}`), oldPW)
	require.NoError(t, err)
	hidden, err := f.codec.CreateEncryptedFile(ctx, "title: trashed", "x", oldPW)
	require.NoError(t, err)

	f.write(t, notePath, note)
	f.write(t, taskPath, task)
	f.write(t, passwordPath, record.JoinFrontmatter("title: Bank", blob))
	f.write(t, legacyPath, legacyNote)
	f.write(t, hiddenPath, hidden)
	return f
}

func (f *fixture) write(t *testing.T, rel, content string) {
	t.Helper()
	path := filepath.Join(f.root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func (f *fixture) read(t *testing.T, rel string) string {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join(f.root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(raw)
}

// opens reports whether the record at rel decrypts with password.
func (f *fixture) opens(t *testing.T, rel string, password []byte) bool {
	t.Helper()
	raw := f.read(t, rel)
	var err error
	if record.IsEncryptedFormat(raw) {
		_, err = f.codec.Decrypt(context.Background(), raw, password)
	} else {
		_, err = f.codec.OpenSealedBody(context.Background(), raw, password)
	}
	return err == nil
}

func (f *fixture) rotator(journal store.RotationJournal) *Rotator {
	return NewRotator(f.codec, f.hasher, f.session, journal, f.root, logger.Nop())
}

var rotatedPaths = []string{passwordPath, notePath, taskPath}

// memJournal is an in-memory store.RotationJournal.
type memJournal struct {
	mu      sync.Mutex
	runs    []*models.RotationRun
	entries map[string][]models.RotationEntry
}

func newMemJournal() *memJournal {
	return &memJournal{entries: make(map[string][]models.RotationEntry)}
}

func (j *memJournal) Begin(_ context.Context, run models.RotationRun, paths []string) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.runs = append(j.runs, &run)
	for _, p := range paths {
		j.entries[run.ID] = append(j.entries[run.ID], models.RotationEntry{RunID: run.ID, Path: p, Status: models.EntryPending})
	}
	return nil
}

func (j *memJournal) MarkEntry(_ context.Context, runID, path string, status models.EntryStatus) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	entries := j.entries[runID]
	i := slices.IndexFunc(entries, func(e models.RotationEntry) bool { return e.Path == path })
	if i < 0 {
		return store.ErrEntryNotFound
	}
	entries[i].Status = status
	return nil
}

func (j *memJournal) Unfinished(_ context.Context) (*models.RotationRun, []models.RotationEntry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	for i := len(j.runs) - 1; i >= 0; i-- {
		if j.runs[i].Status == models.RotationInProgress {
			run := *j.runs[i]
			return &run, slices.Clone(j.entries[run.ID]), nil
		}
	}
	return nil, nil, nil
}

func (j *memJournal) Finish(_ context.Context, runID string, status models.RotationStatus) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, run := range j.runs {
		if run.ID == runID {
			run.Status = status
			return nil
		}
	}
	return store.ErrRunNotFound
}

func (j *memJournal) last() models.RotationRun {
	j.mu.Lock()
	defer j.mu.Unlock()
	return *j.runs[len(j.runs)-1]
}

func (j *memJournal) statuses(runID string) map[string]models.EntryStatus {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make(map[string]models.EntryStatus)
	for _, e := range j.entries[runID] {
		out[e.Path] = e.Status
	}
	return out
}
