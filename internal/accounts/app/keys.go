package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/university/pkg/cryptox"
	"github.com/aussiebroadwan/university/pkg/jwtx"
)

// InitSigner builds the JWT signer for the configured algorithm.
//
// Key sources:
//   - HS256: JWT_SIGNING_KEY, shared with any service that verifies tokens.
//   - EdDSA with JWT_PRIVATE_KEY_FILE: loaded from the file, generated there
//     on first start. Tokens survive restarts.
//   - EdDSA without a file: generated in memory. Every restart signs out
//     every user.
func InitSigner(cfg Config, logger *slog.Logger) (jwtx.Signer, error) {
	const kid = "accounts-1"

	switch cfg.Algorithm {
	case "HS256":
		signer, err := jwtx.NewSignerHS256(kid, []byte(cfg.SigningKey))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize HS256 signer: %w", err)
		}
		logger.Info("using shared secret signing key", "algorithm", signer.Alg())
		return signer, nil

	default:
		var (
			pemKey []byte
			err    error
		)
		if cfg.PrivateKeyFile != "" {
			pemKey, err = cryptox.LoadOrGenerateEd25519Key(cfg.PrivateKeyFile)
		} else {
			pemKey, err = cryptox.GenerateEd25519Key()
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load Ed25519 key: %w", err)
		}

		signer, err := jwtx.NewSignerEdDSA(kid, pemKey)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize EdDSA signer: %w", err)
		}

		if cfg.PrivateKeyFile == "" {
			logger.Warn("generated ephemeral signing key, all existing tokens are now invalid")
		} else {
			logger.Info("signing key loaded", "algorithm", signer.Alg(), "path", cfg.PrivateKeyFile)
		}
		return signer, nil
	}
}
