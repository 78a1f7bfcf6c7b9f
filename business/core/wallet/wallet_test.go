package wallet_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/inkwell/dashboard/business/core/wallet"
	"github.com/inkwell/dashboard/foundation/signature"
	"go.uber.org/zap"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

const pkHexKey = "fae85851bdf5c9f49923722ce38f3c1defcfd3619ef5453230a58ad805499959"

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

func newCore(clk *clock) *wallet.Core {
	return wallet.NewCore(wallet.Config{
		Log:          zap.NewNop().Sugar(),
		Domain:       "dashboard.test",
		ChallengeTTL: time.Minute,
		SessionTTL:   time.Hour,
		Now:          clk.Now,
	})
}

func Test_Login(t *testing.T) {
	pk, err := crypto.HexToECDSA(pkHexKey)
	if err != nil {
		t.Fatalf("Should be able to load the private key: %s", err)
	}
	addr := crypto.PubkeyToAddress(pk.PublicKey).String()

	t.Log("Given the need to authenticate a wallet with a signed challenge.")
	{
		ctx := context.Background()
		clk := clock{now: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)}
		core := newCore(&clk)

		ch := core.Challenge(ctx, addr)

		sig, err := signature.SignHex(ch, pk)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to sign the challenge: %s", failed, err)
		}

		login := wallet.Login{
			Wallet:      addr,
			Nonce:       ch.Nonce,
			Signature:   sig,
			Permissions: wallet.AllPermissions,
		}

		s, err := core.Login(ctx, login)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to login: %s", failed, err)
		}
		t.Logf("\t%s\tShould be able to login.", success)

		if s.Wallet != addr {
			t.Fatalf("\t%s\tShould open the session for the signer, got %s.", failed, s.Wallet)
		}
		t.Logf("\t%s\tShould open the session for the signer.", success)

		if _, err := core.Login(ctx, login); !errors.Is(err, wallet.ErrChallengeNotFound) {
			t.Fatalf("\t%s\tShould not reuse a challenge: %v", failed, err)
		}
		t.Logf("\t%s\tShould not reuse a challenge.", success)

		got, err := core.Authenticate(ctx, s.Token)
		if err != nil || got.Wallet != addr {
			t.Fatalf("\t%s\tShould authenticate the token: %v", failed, err)
		}
		t.Logf("\t%s\tShould authenticate the token.", success)

		clk.now = clk.now.Add(2 * time.Hour)
		if _, err := core.Authenticate(ctx, s.Token); !errors.Is(err, wallet.ErrSessionExpired) {
			t.Fatalf("\t%s\tShould expire the session: %v", failed, err)
		}
		t.Logf("\t%s\tShould expire the session.", success)
	}
}

func Test_LoginFailures(t *testing.T) {
	pk, err := crypto.HexToECDSA(pkHexKey)
	if err != nil {
		t.Fatalf("Should be able to load the private key: %s", err)
	}
	addr := crypto.PubkeyToAddress(pk.PublicKey).String()

	other, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("Should be able to generate a private key: %s", err)
	}

	type table struct {
		name   string
		wallet string
		other  bool
		perms  []wallet.Permission
		wait   time.Duration
		err    error
	}

	tt := []table{
		{name: "permissions", perms: []wallet.Permission{wallet.AccessAddress}, err: wallet.ErrMissingPermissions},
		{name: "other-signer", other: true, perms: wallet.RequiredPermissions, err: wallet.ErrWalletMismatch},
		{name: "other-wallet", wallet: "0xF01813E4B85e178A83e29B8E7bF26BD830a25f32", perms: wallet.RequiredPermissions, err: wallet.ErrWalletMismatch},
		{name: "expired", perms: wallet.RequiredPermissions, wait: 2 * time.Minute, err: wallet.ErrChallengeExpired},
	}

	t.Log("Given the need to reject invalid logins.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				t.Logf("\tTest %d:\tWhen logging in with %s.", testID, tst.name)
				{
					ctx := context.Background()
					clk := clock{now: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)}
					core := newCore(&clk)

					ch := core.Challenge(ctx, addr)

					signer := pk
					if tst.other {
						signer = other
					}

					sig, err := signature.SignHex(ch, signer)
					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to sign the challenge: %s", failed, testID, err)
					}

					w := addr
					if tst.wallet != "" {
						w = tst.wallet
					}

					clk.now = clk.now.Add(tst.wait)

					_, err = core.Login(ctx, wallet.Login{Wallet: w, Nonce: ch.Nonce, Signature: sig, Permissions: tst.perms})
					if !errors.Is(err, tst.err) {
						t.Logf("\t\tTest %d:\tgot: %v", testID, err)
						t.Logf("\t\tTest %d:\texp: %v", testID, tst.err)
						t.Fatalf("\t%s\tTest %d:\tShould get the right error.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get the right error.", success, testID)
				}
			}

			t.Run(tst.name, f)
		}
	}
}

func Test_Missing(t *testing.T) {
	missing := wallet.Missing(wallet.RequiredPermissions, []wallet.Permission{wallet.AccessAddress, wallet.Encrypt})
	if len(missing) != len(wallet.RequiredPermissions)-1 {
		t.Fatalf("\t%s\tShould report every required permission not granted: %v", failed, missing)
	}
	t.Logf("\t%s\tShould report every required permission not granted.", success)
}
