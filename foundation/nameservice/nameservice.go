// Package nameservice reads a folder of wallet key files and provides a
// display name for each wallet address. The name of a wallet is the file
// name of its key without the extension.
package nameservice

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/crypto"
)

// KeyExtension is the file extension of a wallet private key file.
const KeyExtension = ".ecdsa"

// NameService maintains a map of wallet addresses for name lookup.
type NameService struct {
	mu      sync.RWMutex
	wallets map[string]string
}

// New constructs a name service with the wallets from the root folder. An
// empty root produces an empty name service.
func New(root string) (*NameService, error) {
	ns := NameService{
		wallets: make(map[string]string),
	}

	if root == "" {
		return &ns, nil
	}

	fn := func(fileName string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walkdir failure: %w", err)
		}

		if d.IsDir() || filepath.Ext(fileName) != KeyExtension {
			return nil
		}

		privateKey, err := crypto.LoadECDSA(fileName)
		if err != nil {
			return fmt.Errorf("loading %s: %w", fileName, err)
		}

		wallet := crypto.PubkeyToAddress(privateKey.PublicKey).String()
		ns.wallets[strings.ToLower(wallet)] = strings.TrimSuffix(filepath.Base(fileName), KeyExtension)

		return nil
	}

	if err := filepath.WalkDir(root, fn); err != nil {
		return nil, fmt.Errorf("walking directory: %w", err)
	}

	return &ns, nil
}

// Add registers a display name for a wallet.
func (ns *NameService) Add(wallet string, name string) {
	ns.mu.Lock()
	defer ns.mu.Unlock()

	ns.wallets[strings.ToLower(wallet)] = name
}

// Lookup returns the name for the specified wallet. The wallet address
// itself is returned when no name is known.
func (ns *NameService) Lookup(wallet string) string {
	ns.mu.RLock()
	defer ns.mu.RUnlock()

	name, exists := ns.wallets[strings.ToLower(wallet)]
	if !exists {
		return wallet
	}
	return name
}

// Copy returns a copy of the map of wallets and names.
func (ns *NameService) Copy() map[string]string {
	ns.mu.RLock()
	defer ns.mu.RUnlock()

	cpy := make(map[string]string, len(ns.wallets))
	for wallet, name := range ns.wallets {
		cpy[wallet] = name
	}
	return cpy
}
