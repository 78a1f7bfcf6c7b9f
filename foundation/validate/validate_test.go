package validate_test

import (
	"testing"

	"github.com/inkwell/dashboard/foundation/validate"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

type newUser struct {
	Wallet string `json:"wallet" validate:"required,wallet"`
	Logo   string `json:"logo" validate:"omitempty,arid"`
}

func Test_Check(t *testing.T) {
	t.Log("Given the need to validate models with custom tags.")
	{
		good := newUser{
			Wallet: "0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4",
			Logo:   "bNbA3TEQVL60xlgCcqdz4ZPHFZ711cZ3hmkpGttDt_U",
		}
		if err := validate.Check(good); err != nil {
			t.Fatalf("\t%s\tShould accept a valid model: %v", failed, err)
		}
		t.Logf("\t%s\tShould accept a valid model.", success)

		bad := newUser{Wallet: "dd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4", Logo: "short"}
		err := validate.Check(bad)
		if !validate.IsFieldErrors(err) {
			t.Fatalf("\t%s\tShould get field errors: %v", failed, err)
		}
		t.Logf("\t%s\tShould get field errors.", success)

		fields := validate.GetFieldErrors(err).Fields()
		if _, exists := fields["wallet"]; !exists {
			t.Fatalf("\t%s\tShould report the wallet field: %v", failed, fields)
		}
		if _, exists := fields["logo"]; !exists {
			t.Fatalf("\t%s\tShould report the logo field: %v", failed, fields)
		}
		t.Logf("\t%s\tShould report both fields by their json names.", success)
	}
}
