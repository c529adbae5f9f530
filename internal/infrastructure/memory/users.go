package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/parts-tracker/internal/domain"
	"github.com/tu-usuario/parts-tracker/internal/domain/entity"
	"github.com/tu-usuario/parts-tracker/internal/domain/repository"
)

var _ repository.UserRepository = (*UserStore)(nil)

// UserStore vista de usuarios sobre el mismo Store (comparte mutex y mapa,
// así HistoryFor resuelve nombres de actor sin otro backend).
type UserStore struct {
	s *Store
}

// Users devuelve la vista UserRepository del store.
func (s *Store) Users() *UserStore {
	return &UserStore{s: s}
}

// Create persiste un usuario nuevo. ErrEmailAlreadyExists si el email ya está.
func (u *UserStore) Create(user *entity.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	for _, existing := range u.s.users {
		if existing.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
		user.UpdatedAt = now
	}
	u.s.users[user.ID] = *user
	return nil
}

// GetByID devuelve el usuario o nil, nil si no existe.
func (u *UserStore) GetByID(id string) (*entity.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	usr, ok := u.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := usr
	return &cp, nil
}

// GetByEmail devuelve el usuario con ese email o nil, nil.
func (u *UserStore) GetByEmail(email string) (*entity.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	for _, usr := range u.s.users {
		if usr.Email == email {
			cp := usr
			return &cp, nil
		}
	}
	return nil, nil
}

// Update reemplaza nombre, email y rol. ErrUserNotFound si no existe;
// ErrEmailAlreadyExists si el email nuevo pertenece a otro usuario.
func (u *UserStore) Update(user *entity.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	current, ok := u.s.users[user.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	for id, existing := range u.s.users {
		if id != user.ID && existing.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	if user.PasswordHash == "" {
		user.PasswordHash = current.PasswordHash
	}
	user.CreatedAt = current.CreatedAt
	user.UpdatedAt = time.Now()
	u.s.users[user.ID] = *user
	return nil
}

// List devuelve todos los usuarios.
func (u *UserStore) List() ([]*entity.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	out := make([]*entity.User, 0, len(u.s.users))
	for _, usr := range u.s.users {
		cp := usr
		out = append(out, &cp)
	}
	return out, nil
}

// Delete elimina el usuario. ErrUserNotFound si no existe.
func (u *UserStore) Delete(id string) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if _, ok := u.s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(u.s.users, id)
	return nil
}
