// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/claudia-app/claudia-vault/internal/config"
	"github.com/claudia-app/claudia-vault/internal/logger"
	"github.com/claudia-app/claudia-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, serverURL string) VaultAdapter {
	t.Helper()
	a, err := NewHTTPVaultAdapter(config.Adapter{HTTPAddress: serverURL, RequestTimeout: 5 * time.Second}, logger.Nop())
	require.NoError(t, err)
	return a
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// ── Constructor ─────────────────────────────────────────────────────────────

func TestNewHTTPVaultAdapter_InvalidAddress(t *testing.T) {
	_, err := NewHTTPVaultAdapter(config.Adapter{HTTPAddress: "  "}, logger.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid adapter http address")
}

// ── Vault ───────────────────────────────────────────────────────────────────

func TestStatus_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/vault/status", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.VaultStatus{State: "locked", SetUp: true})
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).Status(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "locked", got.State)
	assert.True(t, got.SetUp)
	assert.False(t, got.Unlocked)
}

func TestSetup_SendsPassword(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/vault/setup", r.URL.Path)

		var req models.PasswordRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "hunter2", string(req.Password))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	err := newTestAdapter(t, srv.URL).Setup(context.Background(), []byte("hunter2"))
	require.NoError(t, err)
}

func TestSetup_AlreadySetUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusConflict, models.ErrorResponse{Error: "vault is already set up"})
	}))
	defer srv.Close()

	err := newTestAdapter(t, srv.URL).Setup(context.Background(), []byte("pw"))

	require.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "vault is already set up")
}

func TestUnlock(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    any
		want    bool
		wantErr error
	}{
		{name: "unlocked", status: http.StatusOK, body: models.UnlockResponse{Unlocked: true}, want: true},
		{name: "wrong password", status: http.StatusOK, body: models.UnlockResponse{Unlocked: false}},
		{name: "not set up", status: http.StatusConflict, body: models.ErrorResponse{Error: "vault is not set up"}, wantErr: ErrConflict},
		{name: "rate limited", status: http.StatusTooManyRequests, body: models.ErrorResponse{Error: "too many attempts"}, wantErr: ErrTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/vault/unlock", r.URL.Path)
				writeJSON(t, w, tt.status, tt.body)
			}))
			defer srv.Close()

			got, err := newTestAdapter(t, srv.URL).Unlock(context.Background(), []byte("pw"))

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.False(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLock_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/vault/lock", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, newTestAdapter(t, srv.URL).Lock(context.Background()))
}

func TestVersion_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/version/", r.URL.Path)
		_, _ = w.Write([]byte("v1.2.3\n"))
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).Version(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "v1.2.3", got)
}

// ── Rotation ────────────────────────────────────────────────────────────────

func TestChangePassword_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/vault/password", r.URL.Path)

		var req models.ChangePasswordRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "old", string(req.OldPassword))
		assert.Equal(t, "new", string(req.NewPassword))

		writeJSON(t, w, http.StatusOK, models.RotationResult{RunID: "run-1", Rotated: 3, Skipped: 1})
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).ChangePassword(context.Background(), []byte("old"), []byte("new"))

	require.NoError(t, err)
	assert.Equal(t, "run-1", got.RunID)
	assert.Equal(t, 3, got.Rotated)
	assert.Equal(t, 1, got.Skipped)
}

func TestChangePassword_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "wrong old password", status: http.StatusUnauthorized, wantErr: ErrUnauthorized},
		{name: "rotation running", status: http.StatusConflict, wantErr: ErrConflict},
		{name: "cancelled", status: http.StatusServiceUnavailable, wantErr: ErrUnavailable},
		{name: "incomplete", status: http.StatusInternalServerError, wantErr: ErrInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, tt.status, models.ErrorResponse{Error: http.StatusText(tt.status)})
			}))
			defer srv.Close()

			_, err := newTestAdapter(t, srv.URL).ChangePassword(context.Background(), []byte("a"), []byte("b"))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRotation_NotBoundByRequestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		switch r.URL.Path {
		case "/api/vault/password", "/api/vault/rotation/resume":
			writeJSON(t, w, http.StatusOK, models.RotationResult{RunID: "run-slow", Rotated: 5000})
		default:
			writeJSON(t, w, http.StatusOK, models.VaultStatus{State: "unlocked"})
		}
	}))
	defer srv.Close()

	a, err := NewHTTPVaultAdapter(config.Adapter{HTTPAddress: srv.URL, RequestTimeout: 50 * time.Millisecond}, logger.Nop())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = a.Status(ctx)
	require.Error(t, err, "ordinary calls keep the request timeout")

	got, err := a.ChangePassword(ctx, []byte("old"), []byte("new"))
	require.NoError(t, err)
	assert.Equal(t, 5000, got.Rotated)

	got, err = a.ResumeRotation(ctx, []byte("old"), []byte("new"))
	require.NoError(t, err)
	assert.Equal(t, "run-slow", got.RunID)
}

func TestRotation_StopsWithContext(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newTestAdapter(t, srv.URL).ChangePassword(ctx, []byte("old"), []byte("new"))
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestResumeRotation_Path(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/vault/rotation/resume", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.RotationResult{RunID: "run-2", Rotated: 2})
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).ResumeRotation(context.Background(), []byte("a"), []byte("b"))

	require.NoError(t, err)
	assert.Equal(t, "run-2", got.RunID)
}

func TestResumeRotation_NothingPending(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, models.ErrorResponse{Error: "no pending rotation"})
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).ResumeRotation(context.Background(), []byte("a"), []byte("b"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRotationProgress_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/vault/rotation", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.RotationProgress{RunID: "run-3", Running: true, Total: 10, Done: 4})
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).RotationProgress(context.Background())

	require.NoError(t, err)
	assert.True(t, got.Running)
	assert.Equal(t, 10, got.Total)
	assert.Equal(t, 4, got.Done)
}

// ── Records ─────────────────────────────────────────────────────────────────

func TestDecryptRecord_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/records/decrypt", r.URL.Path)

		var req models.RawRecord
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "CLAUDIA-ENCRYPTED-v1\n", req.Raw)

		writeJSON(t, w, http.StatusOK, models.Record{Metadata: "title: x", Body: "hello", Encrypted: true})
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).DecryptRecord(context.Background(), "CLAUDIA-ENCRYPTED-v1\n")

	require.NoError(t, err)
	assert.Equal(t, "hello", got.Body)
	assert.True(t, got.Encrypted)
}

func TestDecryptRecord_Locked(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusLocked, models.ErrorResponse{Error: "vault is locked"})
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).DecryptRecord(context.Background(), "x")
	require.ErrorIs(t, err, ErrLocked)
}

func TestMigrateRecord_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/records/migrate", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.RawRecord{Raw: "CLAUDIA-ENCRYPTED-v1\n..."})
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).MigrateRecord(context.Background(), "---\ntitle: x\n---\nbody")

	require.NoError(t, err)
	assert.Equal(t, "CLAUDIA-ENCRYPTED-v1\n...", got)
}

func TestMigrateRecord_Unprocessable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnprocessableEntity, models.ErrorResponse{Error: "malformed record"})
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).MigrateRecord(context.Background(), "garbage")
	require.ErrorIs(t, err, ErrUnprocessable)
}

// ── Transport ───────────────────────────────────────────────────────────────

func TestRequest_ServerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestAdapter(t, url).Status(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status request")
}

func TestRequest_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newTestAdapter(t, srv.URL).Lock(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid http", "http://localhost:8080", "http://localhost:8080", false},
		{"no scheme", "127.0.0.1:7420", "http://127.0.0.1:7420", false},
		{"trailing slash", "http://localhost:8080/", "http://localhost:8080", false},
		{"surrounding spaces", "  localhost:1  ", "http://localhost:1", false},
		{"empty", "", "", true},
		{"no host", "http://", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
