package credentials

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/config"
	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/auth/domain"
)

// AdminUsername is the single admin account.
const AdminUsername = "alierwai"

// HashPassword is the one-way hash stored for every account.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// StaticAccounts builds the fixed three-account table from configured secrets.
func StaticAccounts(cfg config.AccountsConfig) []domain.Account {
	return []domain.Account{
		{
			Username:     AdminUsername,
			PasswordHash: HashPassword(cfg.AdminPassword),
			Role:         domain.RoleAdmin,
			DisplayName:  "Alier Kergany",
		},
		{
			Username:     "client1",
			PasswordHash: HashPassword(cfg.Client1Password),
			Role:         domain.RoleClient,
			DisplayName:  "Client One",
		},
		{
			Username:     "client2",
			PasswordHash: HashPassword(cfg.Client2Password),
			Role:         domain.RoleClient,
			DisplayName:  "Client Two",
		},
	}
}
