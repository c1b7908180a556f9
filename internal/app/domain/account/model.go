// Package account defines the account entity.
package account

// Account is a registered poster. The password is stored verbatim.
type Account struct {
	ID       int64  `json:"account_id"`
	Username string `json:"username"`
	Password string `json:"password"`
}
