package usecase

import (
	"bytes"
	"context"
	"log/slog"
	"strings"

	"github.com/tradewire/ibdesk/internal/auth/entity"
	"github.com/tradewire/ibdesk/internal/pkg/goerror"
	"github.com/tradewire/ibdesk/internal/pkg/mfa"
	"github.com/tradewire/ibdesk/internal/pkg/storage"
)

const qrImageSize = 256

type TOTPSetupInput struct {
	Username string `validate:"required,min=1,max=100"`
}

type TOTPSetupOutput struct {
	Username string
	// Secret is the base32 seed the user adds to their authenticator.
	Secret string
	// URI is the otpauth provisioning URI.
	URI string
	// QRCodeURL is a presigned link to the rendered QR image, when storage
	// succeeded.
	QRCodeURL string
	// Warnings lists degraded-success conditions (QR upload or credential
	// persistence failures). The secret and URI are always usable.
	Warnings []string
}

// TOTPSetup begins authenticator enrollment: a fresh secret and provisioning
// URI are always returned, and a disabled credential is persisted so a later
// verify-setup can flip it on. Running setup again replaces any previous
// enrollment, verified or not.
func (s *Usecase) TOTPSetup(ctx context.Context, in TOTPSetupInput) (*TOTPSetupOutput, error) {
	ctx, span := s.startSpan(ctx, "TOTPSetup")
	defer span.End()

	in.Username = strings.TrimSpace(in.Username)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	secret, uri, err := s.totp.Generate(in.Username)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate totp secret", "username", in.Username, "error", err)
		return nil, goerror.NewServer(err)
	}

	out := &TOTPSetupOutput{Username: in.Username, Secret: secret, URI: uri}
	out.QRCodeURL = s.uploadQRCode(ctx, in.Username, secret, out)

	encryptedSecret, err := s.mfaEncryptor.Encrypt([]byte(secret), mfa.Scope{
		Username: in.Username,
		Purpose:  mfa.PurposeTOTPSecret,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to encrypt totp secret", "username", in.Username, "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	cred := entity.TotpCredential{
		Username:  in.Username,
		Secret:    encryptedSecret,
		Enabled:   false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repoDB.UpsertTotpCredential(ctx, cred); err != nil {
		// The user can still enroll; verify-setup re-persists the credential.
		slog.ErrorContext(ctx, "failed to persist totp credential", "username", in.Username, "error", err)
		out.Warnings = append(out.Warnings, "enrollment could not be saved, verification will retry")
	}

	return out, nil
}

// uploadQRCode renders and stores the provisioning QR and returns a presigned
// URL. Failures downgrade to warnings since the URI covers manual entry.
func (s *Usecase) uploadQRCode(ctx context.Context, username, secret string, out *TOTPSetupOutput) string {
	qr, err := s.totp.QRCode(username, secret, qrImageSize)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render totp qr image", "username", username, "error", err)
		out.Warnings = append(out.Warnings, "QR image unavailable, use the provisioning URI")
		return ""
	}

	bucket := s.cfg.GetString("storage.bucket")
	key := "2fa/qr/" + username + ".png"
	if _, err := s.storage.PutObject(ctx, bucket, key, bytes.NewReader(qr), storage.PutOptions{
		Size:        int64(len(qr)),
		ContentType: "image/png",
	}); err != nil {
		slog.ErrorContext(ctx, "failed to upload totp qr image", "username", username, "error", err)
		out.Warnings = append(out.Warnings, "QR image unavailable, use the provisioning URI")
		return ""
	}

	expiry := s.cfg.GetMinute("storage.presign_ttl_minutes")
	url, err := s.storage.PresignGet(ctx, bucket, key, expiry)
	if err != nil {
		slog.ErrorContext(ctx, "failed to presign totp qr image", "username", username, "error", err)
		out.Warnings = append(out.Warnings, "QR image unavailable, use the provisioning URI")
		return ""
	}

	return url
}
