package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/claudia-app/claudia-vault/internal/adapter"
	"github.com/claudia-app/claudia-vault/internal/config"
	"github.com/claudia-app/claudia-vault/internal/logger"
	"github.com/claudia-app/claudia-vault/models"
)

// fakeVault implements adapter.VaultAdapter and records what it received.
type fakeVault struct {
	status   models.VaultStatus
	unlockOK bool
	version  string

	setupPw   string
	unlockPw  string
	locked    bool
	oldPw     string
	newPw     string
	resumed   bool
	rotation  models.RotationResult
	progress  models.RotationProgress
	decrypted models.Record
	migrated  string
	err       error
}

func (f *fakeVault) Version(context.Context) (string, error) { return f.version, f.err }
func (f *fakeVault) Status(context.Context) (models.VaultStatus, error) {
	return f.status, f.err
}
func (f *fakeVault) Setup(_ context.Context, pw []byte) error {
	f.setupPw = string(pw)
	return f.err
}
func (f *fakeVault) Unlock(_ context.Context, pw []byte) (bool, error) {
	f.unlockPw = string(pw)
	return f.unlockOK, f.err
}
func (f *fakeVault) Lock(context.Context) error {
	f.locked = true
	return f.err
}
func (f *fakeVault) ChangePassword(_ context.Context, oldPw, newPw []byte) (models.RotationResult, error) {
	f.oldPw, f.newPw = string(oldPw), string(newPw)
	return f.rotation, f.err
}
func (f *fakeVault) ResumeRotation(_ context.Context, oldPw, newPw []byte) (models.RotationResult, error) {
	f.resumed = true
	f.oldPw, f.newPw = string(oldPw), string(newPw)
	return f.rotation, f.err
}
func (f *fakeVault) RotationProgress(context.Context) (models.RotationProgress, error) {
	return f.progress, f.err
}
func (f *fakeVault) DecryptRecord(context.Context, string) (models.Record, error) {
	return f.decrypted, f.err
}
func (f *fakeVault) MigrateRecord(context.Context, string) (string, error) {
	return f.migrated, f.err
}

// scriptedPrompter returns the given answers in order.
type scriptedPrompter struct {
	answers []string
	prompts []string
}

func (p *scriptedPrompter) ReadPassword(prompt string) ([]byte, error) {
	p.prompts = append(p.prompts, prompt)
	if len(p.answers) == 0 {
		return nil, errors.New("no more answers")
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return []byte(a), nil
}

// run executes vaultctl with args against fake and returns stdout.
func run(t *testing.T, fake *fakeVault, prompter Prompter, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CONFIG", "")

	root := NewRootCommand(Options{
		NewAdapter: func(config.Adapter, *logger.Logger) (adapter.VaultAdapter, error) { return fake, nil },
		Prompter:   prompter,
		BuildInfo:  models.NewAppBuildInfo("v0.1.0", "2026-10-01", "abc123"),
	})

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}
