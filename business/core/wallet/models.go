package wallet

import (
	"time"

	"github.com/inkwell/dashboard/foundation/validate"
)

// Permission is a capability a wallet grants to the dashboard when it
// connects.
type Permission string

// Set of permissions a wallet can grant.
const (
	AccessAddress       Permission = "ACCESS_ADDRESS"
	AccessPublicKey     Permission = "ACCESS_PUBLIC_KEY"
	AccessAllAddresses  Permission = "ACCESS_ALL_ADDRESSES"
	SignTransaction     Permission = "SIGN_TRANSACTION"
	Encrypt             Permission = "ENCRYPT"
	Decrypt             Permission = "DECRYPT"
	Signature           Permission = "SIGNATURE"
	AccessArweaveConfig Permission = "ACCESS_ARWEAVE_CONFIG"
	Dispatch            Permission = "DISPATCH"
	AccessTokens        Permission = "ACCESS_TOKENS"
)

// AllPermissions lists every permission a wallet can grant.
var AllPermissions = []Permission{
	AccessAddress,
	AccessPublicKey,
	AccessAllAddresses,
	SignTransaction,
	Encrypt,
	Decrypt,
	Signature,
	AccessArweaveConfig,
	Dispatch,
	AccessTokens,
}

// RequiredPermissions lists the permissions the dashboard needs to work.
var RequiredPermissions = []Permission{
	AccessAddress,
	AccessPublicKey,
	AccessAllAddresses,
	SignTransaction,
	AccessArweaveConfig,
	Dispatch,
	AccessTokens,
}

// Challenge is the message a wallet signs to prove it owns the address.
type Challenge struct {
	Domain   string `json:"domain"`
	Wallet   string `json:"wallet"`
	Nonce    string `json:"nonce"`
	IssuedAt int64  `json:"issuedAt"`
	Expires  int64  `json:"expires"`
}

// Login is the information a wallet sends back after signing a challenge.
type Login struct {
	Wallet      string       `json:"wallet" validate:"required,wallet"`
	Nonce       string       `json:"nonce" validate:"required"`
	Signature   string       `json:"signature" validate:"required,hexadecimal"`
	Permissions []Permission `json:"permissions" validate:"required,min=1"`
}

// Validate checks the data in the model is considered clean.
func (l Login) Validate() error {
	return validate.Check(l)
}

// Session represents an authenticated wallet.
type Session struct {
	Token       string       `json:"token"`
	Wallet      string       `json:"wallet"`
	Permissions []Permission `json:"permissions"`
	IssuedAt    time.Time    `json:"issuedAt"`
	ExpiresAt   time.Time    `json:"expiresAt"`
}
