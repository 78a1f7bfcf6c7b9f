package nameservice_test

import (
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/inkwell/dashboard/foundation/nameservice"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_Lookup(t *testing.T) {
	t.Log("Given the need to name wallets from a folder of key files.")
	{
		dir := t.TempDir()

		pk, err := crypto.GenerateKey()
		if err != nil {
			t.Fatalf("\t%s\tShould be able to generate a key: %v", failed, err)
		}
		if err := crypto.SaveECDSA(filepath.Join(dir, "kennedy.ecdsa"), pk); err != nil {
			t.Fatalf("\t%s\tShould be able to save the key: %v", failed, err)
		}

		ns, err := nameservice.New(dir)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to load the folder: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to load the folder.", success)

		wallet := crypto.PubkeyToAddress(pk.PublicKey).String()
		if name := ns.Lookup(wallet); name != "kennedy" {
			t.Fatalf("\t%s\tShould find the wallet name, got %q.", failed, name)
		}
		t.Logf("\t%s\tShould find the wallet name.", success)

		unknown := "0xF01813E4B85e178A83e29B8E7bF26BD830a25f32"
		if name := ns.Lookup(unknown); name != unknown {
			t.Fatalf("\t%s\tShould fall back to the address, got %q.", failed, name)
		}
		t.Logf("\t%s\tShould fall back to the address.", success)
	}
}
