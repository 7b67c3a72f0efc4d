package players

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// New creates a new PlayerStore.
func New(db *sql.DB) PlayerStore {
	return &store{
		db: db,
	}
}

func (s *store) Create(p NewPlayer) (*Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)", p.Email).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing player: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	now := time.Now()
	player := &Player{
		ID:           uuid.New().String(),
		Name:         p.Name,
		Email:        p.Email,
		PhoneNumber:  p.PhoneNumber,
		Role:         RolePlayer,
		PasswordHash: p.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err = s.db.Exec(`
		INSERT INTO users (id, name, email, password_hash, phone_number, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		player.ID, player.Name, player.Email, player.PasswordHash, player.PhoneNumber,
		player.Role, now.Unix(), now.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	log.Info("Registered new player", "playerID", player.ID, "email", player.Email)
	return player, nil
}

func (s *store) GetByID(id string) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.scanPlayer(s.db.QueryRow(`
		SELECT id, name, email, password_hash, phone_number, role, created_at, updated_at
		FROM users WHERE id = ?`, id))
}

func (s *store) GetByEmail(email string) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.scanPlayer(s.db.QueryRow(`
		SELECT id, name, email, password_hash, phone_number, role, created_at, updated_at
		FROM users WHERE email = ?`, email))
}

// UpdateProfile applies a partial profile update. The statement is fixed; nil
// patch fields fall through to the current column value via COALESCE.
func (s *store) UpdateProfile(id string, patch ProfilePatch) (*Player, error) {
	if patch.IsEmpty() {
		return nil, ErrEmptyPatch
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		UPDATE users SET
			name = COALESCE(?, name),
			email = COALESCE(?, email),
			phone_number = COALESCE(?, phone_number),
			password_hash = COALESCE(?, password_hash),
			updated_at = ?
		WHERE id = ?`,
		nullable(patch.Name), nullable(patch.Email), nullable(patch.PhoneNumber),
		nullable(patch.PasswordHash), time.Now().Unix(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return nil, ErrPlayerNotFound
	}

	log.Info("Updated player profile", "playerID", id)
	return s.scanPlayer(s.db.QueryRow(`
		SELECT id, name, email, password_hash, phone_number, role, created_at, updated_at
		FROM users WHERE id = ?`, id))
}

func (s *store) scanPlayer(row *sql.Row) (*Player, error) {
	var p Player
	var phone sql.NullString
	var createdAt, updatedAt int64

	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.PasswordHash, &phone, &p.Role, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to scan player: %w", err)
	}

	p.PhoneNumber = phone.String
	p.CreatedAt = time.Unix(createdAt, 0)
	p.UpdatedAt = time.Unix(updatedAt, 0)
	return &p, nil
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
