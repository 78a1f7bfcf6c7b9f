// Package signature provides helper functions for signing and verifying
// wallet messages used to authenticate with the dashboard.
package signature

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// ZeroHash represents a hash code of zeros.
const ZeroHash string = "0x0000000000000000000000000000000000000000000000000000000000000000"

// inkwellID is added to the recovery id of every signature. It matches the
// offset wallets use for personal messages.
const inkwellID = 27

// stampPrefix is hashed in front of every message so a signature produced
// for the dashboard can't be replayed as a transaction.
const stampPrefix = "\x19Inkwell Signed Message:\n32"

// Set of errors returned when a signature is checked.
var (
	ErrInvalidSignature = errors.New("invalid signature")
	ErrMalformed        = errors.New("malformed signature")
)

// =============================================================================

// Hash returns a unique string for the value.
func Hash(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return ZeroHash
	}

	hash := sha256.Sum256(data)
	return hexutil.Encode(hash[:])
}

// Sign uses the specified private key to sign the value.
func Sign(value any, privateKey *ecdsa.PrivateKey) (v, r, s *big.Int, err error) {

	// Prepare the data for signing.
	data, err := stamp(value)
	if err != nil {
		return nil, nil, nil, err
	}

	// Sign the hash with the private key to produce a signature.
	sig, err := crypto.Sign(data, privateKey)
	if err != nil {
		return nil, nil, nil, err
	}

	// Extract the public key from the data and the signature.
	publicKey, err := crypto.SigToPub(data, sig)
	if err != nil {
		return nil, nil, nil, err
	}

	// Check the public key extracted from the data and signature.
	rs := sig[:crypto.RecoveryIDOffset]
	if !crypto.VerifySignature(crypto.FromECDSAPub(publicKey), data, rs) {
		return nil, nil, nil, ErrInvalidSignature
	}

	// Convert the 65 byte signature into the [R|S|V] format.
	v, r, s = toSignatureValues(sig)

	return v, r, s, nil
}

// SignHex signs the value and returns the hex encoded [R|S|V] signature a
// wallet would hand back to the dashboard.
func SignHex(value any, privateKey *ecdsa.PrivateKey) (string, error) {
	v, r, s, err := Sign(value, privateKey)
	if err != nil {
		return "", err
	}

	return SignatureString(v, r, s), nil
}

// VerifySignature verifies the signature conforms to our standards.
func VerifySignature(v, r, s *big.Int) error {

	// Check the recovery id is either 0 or 1.
	uintV := v.Uint64() - inkwellID
	if uintV != 0 && uintV != 1 {
		return fmt.Errorf("%w: recovery id", ErrInvalidSignature)
	}

	// Check the signature values are valid.
	if !crypto.ValidateSignatureValues(byte(uintV), r, s, false) {
		return fmt.Errorf("%w: signature values", ErrInvalidSignature)
	}

	return nil
}

// FromAddress extracts the wallet address that signed the value.
func FromAddress(value any, v, r, s *big.Int) (string, error) {

	// NOTE: If the same exact value for the given signature is not provided
	// we will get the wrong address back. The public key is being extracted
	// from the data and signature so there is nothing else to compare with.

	// Prepare the data for public key extraction.
	data, err := stamp(value)
	if err != nil {
		return "", err
	}

	// Convert the [R|S|V] format into the original 65 bytes.
	sig := ToSignatureBytes(v, r, s)

	// Capture the public key associated with this data and signature.
	publicKey, err := crypto.SigToPub(data, sig)
	if err != nil {
		return "", err
	}

	// Extract the wallet address from the public key.
	return crypto.PubkeyToAddress(*publicKey).String(), nil
}

// Recover validates the hex encoded signature and returns the wallet
// address that signed the value.
func Recover(value any, sigHex string) (string, error) {
	v, r, s, err := ToVRSFromHexSignature(sigHex)
	if err != nil {
		return "", err
	}

	if err := VerifySignature(v, r, s); err != nil {
		return "", err
	}

	return FromAddress(value, v, r, s)
}

// SignatureString returns the signature as a string.
func SignatureString(v, r, s *big.Int) string {
	return hexutil.Encode(ToSignatureBytesWithInkwellID(v, r, s))
}

// ToVRSFromHexSignature converts a hex representation of the signature into
// its R, S and V parts.
func ToVRSFromHexSignature(sigStr string) (v, r, s *big.Int, err error) {
	sig, err := hexutil.Decode(sigStr)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	if len(sig) != crypto.SignatureLength {
		return nil, nil, nil, fmt.Errorf("%w: got %d bytes", ErrMalformed, len(sig))
	}

	r = new(big.Int).SetBytes(sig[:32])
	s = new(big.Int).SetBytes(sig[32:64])
	v = new(big.Int).SetBytes([]byte{sig[64]})

	return v, r, s, nil
}

// =============================================================================

// stamp returns a hash of 32 bytes that represents this value with
// the Inkwell stamp embedded into the final hash.
func stamp(value any) ([]byte, error) {

	// Marshal the data.
	v, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	// Hash the data into a 32 byte array. This will provide
	// a data length consistency with all data.
	hash := crypto.Keccak256(v)

	// Hash the stamp and hash together in a final 32 byte array
	// that represents the data.
	return crypto.Keccak256([]byte(stampPrefix), hash), nil
}

// toSignatureValues converts the signature into the r, s, v values.
func toSignatureValues(sig []byte) (v, r, s *big.Int) {
	r = new(big.Int).SetBytes(sig[:32])
	s = new(big.Int).SetBytes(sig[32:64])
	v = new(big.Int).SetBytes([]byte{sig[64] + inkwellID})

	return v, r, s
}

// ToSignatureBytes converts the r, s, v values into a slice of bytes
// with the removal of the inkwellID.
func ToSignatureBytes(v, r, s *big.Int) []byte {
	sig := make([]byte, crypto.SignatureLength)

	r.FillBytes(sig[:32])
	s.FillBytes(sig[32:64])
	sig[64] = byte(v.Uint64() - inkwellID)

	return sig
}

// ToSignatureBytesWithInkwellID converts the r, s, v values into a slice of
// bytes keeping the Inkwell id.
func ToSignatureBytesWithInkwellID(v, r, s *big.Int) []byte {
	sig := ToSignatureBytes(v, r, s)
	sig[64] = byte(v.Uint64())

	return sig
}
