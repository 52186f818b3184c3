package auth

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/medrounds/sccprompts/internal/identity"
	"github.com/medrounds/sccprompts/internal/models"
)

type APIKeyMiddleware struct {
	db         *pgxpool.Pool
	headerName string
	users      UserSource
}

func NewAPIKeyMiddleware(db *pgxpool.Pool, headerName string, users UserSource) *APIKeyMiddleware {
	return &APIKeyMiddleware{
		db:         db,
		headerName: headerName,
		users:      users,
	}
}

// Authenticate resolves the API key header when present. Requests without the
// header fall through to the JWT middleware.
func (m *APIKeyMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(m.headerName)
		if key == "" {
			next.ServeHTTP(w, r)
			return
		}

		hash := HashAPIKey(key)

		var ak models.APIKey
		var scopesJSON json.RawMessage
		err := m.db.QueryRow(r.Context(),
			`SELECT id, user_id, key_hash, name, scopes, expires_at, created_at
			 FROM api_keys WHERE key_hash = $1`, hash,
		).Scan(&ak.ID, &ak.UserID, &ak.KeyHash, &ak.Name, &scopesJSON, &ak.ExpiresAt, &ak.CreatedAt)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid API key")
			return
		}

		if err := json.Unmarshal(scopesJSON, &ak.Scopes); err != nil {
			writeError(w, http.StatusInternalServerError, "invalid scopes")
			return
		}

		if ak.ExpiresAt != nil && ak.ExpiresAt.Before(time.Now()) {
			writeError(w, http.StatusUnauthorized, "API key expired")
			return
		}

		if subtle.ConstantTimeCompare([]byte(ak.KeyHash), []byte(hash)) != 1 {
			writeError(w, http.StatusUnauthorized, "invalid API key")
			return
		}

		user, err := m.users.GetUserByID(r.Context(), ak.UserID)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "user not found")
			return
		}

		// Update last used; detached from the request lifetime
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			m.db.Exec(ctx, "UPDATE api_keys SET last_used_at = $1 WHERE id = $2", time.Now(), ak.ID)
		}()

		next.ServeHTTP(w, r.WithContext(identity.WithUser(r.Context(), user)))
	})
}

func HashAPIKey(key string) string {
	h := sha256.Sum256([]byte(key))
	return hex.EncodeToString(h[:])
}

func GenerateAPIKeyPrefix() string {
	return fmt.Sprintf("scc_%d", time.Now().UnixNano())
}
