package account

import (
	"errors"
	"time"
)

// ErrNotFound indicates the account does not exist.
var ErrNotFound = errors.New("account not found")

// Account is a wallet identity. Authentication happens upstream; the only
// contract with the core is that handlers arrive with a resolved account id.
type Account struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}
