package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/blog-store/internal/logger"
	"github.com/sbilibin2017/blog-store/internal/models"
)

// PasswordHasher turns a plaintext password into a storable digest.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
}

// UserRepository handles user reads and writes.
type UserRepository struct {
	uow    unitOfWork
	hasher PasswordHasher
}

func NewUserRepository(db *sqlx.DB, txGetter TxGetter, hasher PasswordHasher) *UserRepository {
	return &UserRepository{
		uow:    unitOfWork{db: db, txGetter: txGetter},
		hasher: hasher,
	}
}

const userColumns = `id, username, email, hashed_password`

// GetByID returns the user with the given id, or nil when there is none.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	row, err := r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil || row == nil {
		return nil, err
	}
	user := row.Public()
	return &user, nil
}

// GetByUsername returns the public projection of the user, or nil when there is none.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	row, err := r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	if err != nil || row == nil {
		return nil, err
	}
	user := row.Public()
	return &user, nil
}

// GetFullByUsername returns the user including the password digest.
// Only credential checks should use it.
func (r *UserRepository) GetFullByUsername(ctx context.Context, username string) (*models.UserFull, error) {
	row, err := r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	if err != nil || row == nil {
		return nil, err
	}
	user := row.Full()
	return &user, nil
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*models.UserDB, error) {
	var row models.UserDB
	err := r.uow.run(ctx, func(ext sqlx.ExtContext) error {
		return sqlx.GetContext(ctx, ext, &row, query, arg)
	})

	logger.Log.Infow(
		"query", logger.Query(query),
		"args", []any{arg},
		"result", row.Public(),
		"error", err,
	)

	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Create hashes the password and inserts a new user.
// A duplicate username surfaces as the driver's unique violation error.
func (r *UserRepository) Create(ctx context.Context, req models.UserCreateRequest) (*models.UserCreated, error) {
	const query = `
		INSERT INTO users (username, email, hashed_password)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns

	hashed, err := r.hasher.Hash(req.Password)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "username", req.Username, "error", err)
		return nil, err
	}

	var row models.UserDB
	err = r.uow.run(ctx, func(ext sqlx.ExtContext) error {
		return sqlx.GetContext(ctx, ext, &row, query, req.Username, req.Email, hashed)
	})

	logger.Log.Infow(
		"query", logger.Query(query),
		"args", []any{req.Username, req.Email},
		"result", row.Public(),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return &models.UserCreated{
		ID:       row.ID,
		Username: row.Username,
		Email:    row.Email,
	}, nil
}

// Update applies the non-nil fields of req. A new password is hashed before
// it is stored. Returns nil when the user does not exist.
func (r *UserRepository) Update(ctx context.Context, id int64, req models.UserUpdateRequest) (*models.User, error) {
	const query = `
		UPDATE users
		SET username = COALESCE($2::VARCHAR, username),
		    email = COALESCE($3::VARCHAR, email),
		    hashed_password = COALESCE($4::VARCHAR, hashed_password)
		WHERE id = $1
		RETURNING ` + userColumns

	var hashed *string
	if req.Password != nil {
		digest, err := r.hasher.Hash(*req.Password)
		if err != nil {
			logger.Log.Errorw("failed to hash password", "user_id", id, "error", err)
			return nil, err
		}
		hashed = &digest
	}

	var row models.UserDB
	err := r.uow.run(ctx, func(ext sqlx.ExtContext) error {
		return sqlx.GetContext(ctx, ext, &row, query, id, req.Username, req.Email, hashed)
	})

	logger.Log.Infow(
		"query", logger.Query(query),
		"args", []any{id, req.Username, req.Email, hashed != nil},
		"result", row.Public(),
		"error", err,
	)

	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	user := row.Public()
	return &user, nil
}

// Delete removes the user. It reports false when there was nothing to delete.
// Users that still own posts or comments are protected by foreign keys and
// the driver error is returned.
func (r *UserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return deleteByID(ctx, r.uow, `DELETE FROM users WHERE id = $1`, id)
}

func deleteByID(ctx context.Context, uow unitOfWork, query string, id int64) (bool, error) {
	var affected int64
	err := uow.run(ctx, func(ext sqlx.ExtContext) error {
		res, err := ext.ExecContext(ctx, query, id)
		affected = rowsAffected(res)
		return err
	})

	logger.Log.Infow(
		"query", logger.Query(query),
		"args", []any{id},
		"result", affected,
		"error", err,
	)

	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
