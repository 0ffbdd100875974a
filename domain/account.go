package domain

import (
	"context"
	"time"
)

// Account represents a registered user of the picture board.
// An account can upload pictures, vote on them and comment.
type Account struct {
	ID        int64     // Unique identifier
	Nickname  string    // Display name
	Username  string    // Login username (unique)
	Password  string    // Bcrypt hashed password
	CreatedAt time.Time // Account creation timestamp
	UpdatedAt time.Time // Last profile update timestamp
}

// AccountRepository defines the contract for account data persistence.
type AccountRepository interface {
	// GetByID retrieves an account by its ID.
	// Returns ErrNotFound if the account doesn't exist.
	GetByID(ctx context.Context, id int64) (Account, error)

	// GetByIDs retrieves the accounts with the given IDs, missing ones are skipped.
	GetByIDs(ctx context.Context, ids []int64) ([]Account, error)

	// GetByUsername retrieves an account by its username.
	// Used during login to verify credentials.
	GetByUsername(ctx context.Context, username string) (Account, error)

	// Insert creates a new account.
	// Backfills the ID in the provided Account upon success.
	// Returns ErrConflict if the username is taken.
	Insert(ctx context.Context, a *Account) error
}

// AccountUsecase defines the business logic contract for account operations.
type AccountUsecase interface {
	// Register creates a new account.
	// Returns ErrConflict if the username already exists.
	Register(ctx context.Context, nickname, username, password string) (Account, error)

	// Login verifies credentials and returns a signed JWT.
	// Returns ErrUnauthorized if the username or password is wrong.
	Login(ctx context.Context, username, password string) (string, error)
}
