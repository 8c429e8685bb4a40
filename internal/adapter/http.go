package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/claudia-app/claudia-vault/internal/config"
	"github.com/claudia-app/claudia-vault/internal/logger"
	"github.com/claudia-app/claudia-vault/internal/utils"
	"github.com/claudia-app/claudia-vault/models"
	"github.com/go-resty/resty/v2"
)

type httpVaultAdapter struct {
	client *utils.HTTPClient
	// rotationClient has no timeout: a rotation call lasts as long as the
	// daemon needs to rewrite every record and is bounded by ctx only.
	rotationClient *utils.HTTPClient

	logger *logger.Logger
}

// NewHTTPVaultAdapter constructs an HTTP/REST implementation of
// [VaultAdapter]. The base URL is normalised from cfg.HTTPAddress; an
// address without a scheme is treated as plain http.
func NewHTTPVaultAdapter(cfg config.Adapter, logger *logger.Logger) (VaultAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := newDaemonClient(baseURL, logger)
	client.SetTimeout(cfg.RequestTimeout)

	return &httpVaultAdapter{
		client:         client,
		rotationClient: newDaemonClient(baseURL, logger),
		logger:         logger,
	}, nil
}

func newDaemonClient(baseURL string, logger *logger.Logger) *utils.HTTPClient {
	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
			logger.Debug().
				Str("method", resp.Request.Method).
				Str("path", resp.Request.URL).
				Int("status", resp.StatusCode()).
				Dur("duration", resp.Time()).
				Msg("daemon call")
			return nil
		})
	return client
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Version implements [VaultAdapter] via GET /api/version/.
func (h *httpVaultAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/api/version/")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.String()), nil
}

// Status implements [VaultAdapter] via GET /api/vault/status.
func (h *httpVaultAdapter) Status(ctx context.Context) (models.VaultStatus, error) {
	var status models.VaultStatus

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&status).
		Get("/api/vault/status")
	if err != nil {
		return status, fmt.Errorf("status request: %w", err)
	}
	return status, mapHTTPError(resp)
}

// Setup implements [VaultAdapter] via POST /api/vault/setup.
func (h *httpVaultAdapter) Setup(ctx context.Context, password []byte) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(models.PasswordRequest{Password: password}).
		Post("/api/vault/setup")
	if err != nil {
		return fmt.Errorf("setup request: %w", err)
	}
	return mapHTTPError(resp)
}

// Unlock implements [VaultAdapter] via POST /api/vault/unlock.
func (h *httpVaultAdapter) Unlock(ctx context.Context, password []byte) (bool, error) {
	var result models.UnlockResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(models.PasswordRequest{Password: password}).
		SetResult(&result).
		Post("/api/vault/unlock")
	if err != nil {
		return false, fmt.Errorf("unlock request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return false, err
	}
	return result.Unlocked, nil
}

// Lock implements [VaultAdapter] via POST /api/vault/lock.
func (h *httpVaultAdapter) Lock(ctx context.Context) error {
	resp, err := h.client.R().SetContext(ctx).Post("/api/vault/lock")
	if err != nil {
		return fmt.Errorf("lock request: %w", err)
	}
	return mapHTTPError(resp)
}

// ChangePassword implements [VaultAdapter] via POST /api/vault/password.
// The call blocks until every record has been rotated.
func (h *httpVaultAdapter) ChangePassword(ctx context.Context, oldPassword, newPassword []byte) (models.RotationResult, error) {
	return h.rotate(ctx, "/api/vault/password", oldPassword, newPassword)
}

// ResumeRotation implements [VaultAdapter] via POST /api/vault/rotation/resume.
func (h *httpVaultAdapter) ResumeRotation(ctx context.Context, oldPassword, newPassword []byte) (models.RotationResult, error) {
	return h.rotate(ctx, "/api/vault/rotation/resume", oldPassword, newPassword)
}

func (h *httpVaultAdapter) rotate(ctx context.Context, path string, oldPassword, newPassword []byte) (models.RotationResult, error) {
	var result models.RotationResult

	resp, err := h.rotationClient.R().
		SetContext(ctx).
		SetBody(models.ChangePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword}).
		SetResult(&result).
		Post(path)
	if err != nil {
		return result, fmt.Errorf("rotation request: %w", err)
	}
	return result, mapHTTPError(resp)
}

// RotationProgress implements [VaultAdapter] via GET /api/vault/rotation.
func (h *httpVaultAdapter) RotationProgress(ctx context.Context) (models.RotationProgress, error) {
	var progress models.RotationProgress

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&progress).
		Get("/api/vault/rotation")
	if err != nil {
		return progress, fmt.Errorf("rotation progress request: %w", err)
	}
	return progress, mapHTTPError(resp)
}

// DecryptRecord implements [VaultAdapter] via POST /api/records/decrypt.
func (h *httpVaultAdapter) DecryptRecord(ctx context.Context, raw string) (models.Record, error) {
	var rec models.Record

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(models.RawRecord{Raw: raw}).
		SetResult(&rec).
		Post("/api/records/decrypt")
	if err != nil {
		return rec, fmt.Errorf("decrypt request: %w", err)
	}
	return rec, mapHTTPError(resp)
}

// MigrateRecord implements [VaultAdapter] via POST /api/records/migrate.
func (h *httpVaultAdapter) MigrateRecord(ctx context.Context, raw string) (string, error) {
	var out models.RawRecord

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(models.RawRecord{Raw: raw}).
		SetResult(&out).
		Post("/api/records/migrate")
	if err != nil {
		return "", fmt.Errorf("migrate request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	return out.Raw, nil
}
