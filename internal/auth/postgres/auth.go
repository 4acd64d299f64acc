package postgres

import (
	"database/sql"
	"errors"

	"github.com/frahmantamala/warehouse-productivity/internal/auth"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetPasswordForUsername(username string) (string, int64, error) {
	var passwordHash string
	var userID int64
	query := `SELECT id, password_hash FROM users WHERE username = ? AND is_active = true`

	row := r.db.Raw(query, username).Row()
	if err := row.Scan(&userID, &passwordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", 0, auth.ErrInvalidCredentials
		}
		return "", 0, err
	}
	return passwordHash, userID, nil
}

// GetActor loads the authenticated actor with role, superuser flag and
// section memberships.
func (r *Repository) GetActor(userID int64) (*auth.User, error) {
	var actor auth.User

	query := `SELECT id, username, role, is_superuser FROM users WHERE id = ? AND is_active = true`
	row := r.db.Raw(query, userID).Row()
	if err := row.Scan(&actor.ID, &actor.Username, &actor.Role, &actor.IsSuperuser); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auth.ErrUserInactive
		}
		return nil, err
	}

	memberQuery := `SELECT section_id FROM user_sections WHERE user_id = ? ORDER BY section_id`
	rows, err := r.db.Raw(memberQuery, userID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sectionIDs := make([]int64, 0)
	for rows.Next() {
		var sectionID int64
		if err := rows.Scan(&sectionID); err != nil {
			return nil, err
		}
		sectionIDs = append(sectionIDs, sectionID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	actor.SectionIDs = sectionIDs
	return &actor, nil
}
