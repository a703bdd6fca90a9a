package memstore

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/Abraxas-365/hrms/pkg/iam/user"
	"github.com/Abraxas-365/hrms/pkg/kernel"
)

type UserRepository struct{ s *Store }

func (r *UserRepository) FindByID(ctx context.Context, id kernel.UserID) (*user.User, error) {
	var (
		out   user.User
		found bool
	)
	r.s.read(ctx, func(t *tables) {
		var v user.User
		v, found = t.users[id]
		out = copyUser(v)
	})
	if !found {
		return nil, user.ErrUserNotFound().WithDetail("user_id", id.String())
	}
	return &out, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var out *user.User
	r.s.read(ctx, func(t *tables) {
		for _, v := range t.users {
			if strings.EqualFold(v.Email, email) {
				cp := copyUser(v)
				out = &cp
				return
			}
		}
	})
	if out == nil {
		return nil, user.ErrUserNotFound().WithDetail("email", email)
	}
	return out, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*user.User, error) {
	out := []*user.User{}
	r.s.read(ctx, func(t *tables) {
		for _, v := range t.users {
			cp := copyUser(v)
			out = append(out, &cp)
		}
	})
	slices.SortFunc(out, func(a, b *user.User) int { return cmp.Compare(a.Name, b.Name) })
	return out, nil
}

func (r *UserRepository) Save(ctx context.Context, u user.User) error {
	return r.s.write(ctx, func(t *tables) error {
		for id, v := range t.users {
			if id != u.ID && strings.EqualFold(v.Email, u.Email) {
				return user.ErrUserAlreadyExists().WithDetail("email", u.Email)
			}
		}
		t.users[u.ID] = copyUser(u)
		return nil
	})
}

func (r *UserRepository) Delete(ctx context.Context, id kernel.UserID) error {
	return r.s.write(ctx, func(t *tables) error {
		if _, ok := t.users[id]; !ok {
			return user.ErrUserNotFound().WithDetail("user_id", id.String())
		}
		delete(t.users, id)
		return nil
	})
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var n int
	r.s.read(ctx, func(t *tables) { n = len(t.users) })
	return n, nil
}
