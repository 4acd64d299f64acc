package auth

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"
)

type ctxKey string

const ContextUserKey ctxKey = "user"

var ErrForbidden = errors.New("forbidden")

func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(ContextUserKey).(*User)
	return u, ok
}

func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ContextUserKey, u)
}

// RequireEntryAccess is a generic middleware wrapper that runs an
// entry-level access check before the handler.
func RequireEntryAccess(check func(u *User, r *http.Request) error) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := UserFromContext(r.Context())
			if !ok || u == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if err := check(u, r); err != nil {
				switch {
				case errors.Is(err, ErrForbidden):
					http.Error(w, "forbidden", http.StatusForbidden)
				case errors.Is(err, sql.ErrNoRows):
					http.Error(w, "entry not found", http.StatusNotFound)
				default:
					http.Error(w, "internal server error", http.StatusInternalServerError)
				}
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireCanPatchEntry guards the inline field-patch route: only
// admins/managers or the entry's own lead may pass. The owner lookup is a
// single raw query so the guard stays independent of the entry service.
func RequireCanPatchEntry(db *sqlx.DB) func(next http.Handler) http.Handler {
	return RequireEntryAccess(func(u *User, r *http.Request) error {
		idStr := chi.URLParam(r, "id")
		if idStr == "" {
			return ErrForbidden
		}
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			return ErrForbidden
		}

		if u.IsManagerial() {
			// still surface 404 for missing entries
			var one int
			return db.GetContext(r.Context(), &one, db.Rebind("SELECT 1 FROM productivity_entries WHERE id = ?"), id)
		}

		var leadID int64
		if err := db.GetContext(r.Context(), &leadID, db.Rebind("SELECT lead_id FROM productivity_entries WHERE id = ?"), id); err != nil {
			return err
		}
		if leadID != u.ID {
			return ErrForbidden
		}
		return nil
	})
}
