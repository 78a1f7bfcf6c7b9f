package cmd

import (
	"fmt"
	"log"
	"net/http"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/inkwell/dashboard/business/core/wallet"
	"github.com/inkwell/dashboard/foundation/signature"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign a challenge with the wallet key and print the session token.",
	Run:   loginRun,
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

func loginRun(cmd *cobra.Command, args []string) {
	privateKey, err := crypto.LoadECDSA(getPrivateKeyPath())
	if err != nil {
		log.Fatal(err)
	}
	addr := crypto.PubkeyToAddress(privateKey.PublicKey).String()

	var ch wallet.Challenge
	if err := call(http.MethodGet, "/v1/auth/challenge/"+addr, nil, &ch); err != nil {
		log.Fatal(err)
	}

	sig, err := signature.SignHex(ch, privateKey)
	if err != nil {
		log.Fatal(err)
	}

	l := wallet.Login{
		Wallet:      addr,
		Nonce:       ch.Nonce,
		Signature:   sig,
		Permissions: wallet.RequiredPermissions,
	}

	var s struct {
		wallet.Session
		Name string `json:"name"`
	}
	if err := call(http.MethodPost, "/v1/auth/login", l, &s); err != nil {
		log.Fatal(err)
	}

	fmt.Println("Connected:", s.Name, "until", s.ExpiresAt.Format("2006-01-02 15:04"))
	fmt.Println(s.Token)
}
