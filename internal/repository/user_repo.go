package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"filmorate/internal/domain"
)

// UserStorage is the polymorphic user store. Returned users carry their
// confirmed friend id set; pending requests stay invisible until the other
// side reciprocates.
type UserStorage interface {
	FindAll(ctx context.Context) ([]domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	AddFriend(ctx context.Context, id, friendID int64) (*domain.User, error)
	DeleteFriend(ctx context.Context, id, friendID int64) (*domain.User, error)
	FindFriends(ctx context.Context, id int64) ([]domain.User, error)
	FindMutuals(ctx context.Context, id, otherID int64) ([]domain.User, error)
}

/* ---------- row models ---------- */

type userRow struct {
	ID       int64     `gorm:"column:user_id;primaryKey;autoIncrement"`
	Email    string    `gorm:"column:email;not null"`
	Login    string    `gorm:"column:login;not null"`
	Name     string    `gorm:"column:name"`
	Birthday time.Time `gorm:"column:birthday"`
}

func (userRow) TableName() string { return "users" }

// friendRow is one directed friendship edge. The composite key makes
// re-adding an existing edge a no-op instead of a duplicate.
type friendRow struct {
	UserID       int64 `gorm:"column:user_id;primaryKey;autoIncrement:false"`
	SecondUserID int64 `gorm:"column:second_user_id;primaryKey;autoIncrement:false"`
	Confirmed    bool  `gorm:"column:confirmed;not null;default:false"`
}

func (friendRow) TableName() string { return "friend" }

/* ---------- relational implementation ---------- */

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// requireUser fails with ErrNotFound unless the user row exists. Shared with
// the film repository, which needs user existence for like facts.
func requireUser(tx *gorm.DB, id int64) error {
	var n int64
	if err := tx.Model(&userRow{}).Where("user_id = ?", id).Count(&n).Error; err != nil {
		return translate(err)
	}
	if n == 0 {
		return fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	return nil
}

// confirmedFriendIDs returns ids of users the owner has a confirmed edge to,
// ordered for determinism.
func confirmedFriendIDs(tx *gorm.DB, id int64) ([]int64, error) {
	ids := make([]int64, 0)
	err := tx.Model(&friendRow{}).
		Where("user_id = ? AND confirmed = ?", id, true).
		Order("second_user_id").
		Pluck("second_user_id", &ids).Error
	if err != nil {
		return nil, translate(err)
	}
	return ids, nil
}

func (r *UserRepository) assemble(tx *gorm.DB, row userRow) (*domain.User, error) {
	friends, err := confirmedFriendIDs(tx, row.ID)
	if err != nil {
		return nil, err
	}
	return &domain.User{
		ID:       row.ID,
		Email:    row.Email,
		Login:    row.Login,
		Name:     row.Name,
		Birthday: row.Birthday,
		Friends:  friends,
	}, nil
}

func (r *UserRepository) findByID(tx *gorm.DB, id int64) (*domain.User, error) {
	var row userRow
	if err := tx.Where("user_id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
		}
		return nil, translate(err)
	}
	return r.assemble(tx, row)
}

func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	var rows []userRow
	if err := r.db.WithContext(ctx).Order("user_id").Find(&rows).Error; err != nil {
		return nil, translate(err)
	}

	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		u, err := r.assemble(r.db.WithContext(ctx), row)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findByID(r.db.WithContext(ctx), id)
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	var created *domain.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := userRow{
			Email:    user.Email,
			Login:    user.Login,
			Name:     user.Name,
			Birthday: user.Birthday,
		}
		if err := tx.Create(&row).Error; err != nil {
			return translate(err)
		}
		if row.ID == 0 {
			return fmt.Errorf("%w: user insert returned no id", ErrInternal)
		}

		var err error
		created, err = r.findByID(tx, row.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	var updated *domain.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := r.findByID(tx, user.ID); err != nil {
			return err
		}

		res := tx.Model(&userRow{}).Where("user_id = ?", user.ID).Updates(map[string]interface{}{
			"email":    user.Email,
			"login":    user.Login,
			"name":     user.Name,
			"birthday": user.Birthday,
		})
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: user %d update affected no rows", ErrInternal, user.ID)
		}

		var err error
		updated, err = r.findByID(tx, user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// AddFriend inserts the directed edge id -> friendID as a pending request.
// If the reverse edge already exists, both edges become confirmed: the two
// users are now friends in both directions. Repeating the call changes
// nothing.
func (r *UserRepository) AddFriend(ctx context.Context, id, friendID int64) (*domain.User, error) {
	var owner *domain.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireUser(tx, id); err != nil {
			return err
		}
		if err := requireUser(tx, friendID); err != nil {
			return err
		}

		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&friendRow{UserID: id, SecondUserID: friendID}).Error; err != nil {
			return translate(err)
		}

		var reverse int64
		if err := tx.Model(&friendRow{}).
			Where("user_id = ? AND second_user_id = ?", friendID, id).
			Count(&reverse).Error; err != nil {
			return translate(err)
		}
		if reverse > 0 {
			err := tx.Model(&friendRow{}).
				Where("(user_id = ? AND second_user_id = ?) OR (user_id = ? AND second_user_id = ?)",
					id, friendID, friendID, id).
				Update("confirmed", true).Error
			if err != nil {
				return translate(err)
			}
		}

		var err error
		owner, err = r.findByID(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return owner, nil
}

// DeleteFriend removes the edge id -> friendID. The reverse edge, if any, is
// demoted back to a pending request rather than removed: the former friend
// keeps their outstanding request until they delete it themselves.
func (r *UserRepository) DeleteFriend(ctx context.Context, id, friendID int64) (*domain.User, error) {
	var owner *domain.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireUser(tx, id); err != nil {
			return err
		}
		if err := requireUser(tx, friendID); err != nil {
			return err
		}

		res := tx.Where("user_id = ? AND second_user_id = ?", id, friendID).Delete(&friendRow{})
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: user %d has no friendship edge to user %d", ErrNotFound, id, friendID)
		}

		if err := tx.Model(&friendRow{}).
			Where("user_id = ? AND second_user_id = ?", friendID, id).
			Update("confirmed", false).Error; err != nil {
			return translate(err)
		}

		var err error
		owner, err = r.findByID(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return owner, nil
}

func (r *UserRepository) FindFriends(ctx context.Context, id int64) ([]domain.User, error) {
	tx := r.db.WithContext(ctx)
	if err := requireUser(tx, id); err != nil {
		return nil, err
	}

	ids, err := confirmedFriendIDs(tx, id)
	if err != nil {
		return nil, err
	}

	friends := make([]domain.User, 0, len(ids))
	for _, friendID := range ids {
		u, err := r.findByID(tx, friendID)
		if err != nil {
			return nil, err
		}
		friends = append(friends, *u)
	}
	return friends, nil
}

// FindMutuals returns the intersection of the two users' confirmed friend
// sets.
func (r *UserRepository) FindMutuals(ctx context.Context, id, otherID int64) ([]domain.User, error) {
	tx := r.db.WithContext(ctx)

	ownIDs, err := confirmedFriendIDs(tx, id)
	if err != nil {
		return nil, err
	}
	otherIDs, err := confirmedFriendIDs(tx, otherID)
	if err != nil {
		return nil, err
	}

	otherSet := make(map[int64]bool, len(otherIDs))
	for _, fid := range otherIDs {
		otherSet[fid] = true
	}

	mutuals := make([]domain.User, 0)
	for _, fid := range ownIDs {
		if !otherSet[fid] {
			continue
		}
		u, err := r.findByID(tx, fid)
		if err != nil {
			return nil, err
		}
		mutuals = append(mutuals, *u)
	}
	return mutuals, nil
}
