package signup

import "github.com/inovalink/inovalink-backend/internal/gateway"

// Path identifies which of the two sign-up entry paths a draft belongs
// to. Switching paths discards the inactive draft entirely, so fields
// can never leak across.
type Path string

const (
	PathNone       Path = ""
	PathCredential Path = "credential"
	PathFederated  Path = "federated"
)

type draft interface {
	path() Path
}

// credentialDraft holds the Path A form fields between submissions.
type credentialDraft struct {
	Email       string
	Password    string
	DisplayName string
	Role        gateway.Role
}

func (*credentialDraft) path() Path { return PathCredential }

// federatedDraft holds the captured federated identity and the
// completion-form fields for Path B. Identity is nil until the
// federated sign-in succeeds.
type federatedDraft struct {
	Identity    *gateway.Identity
	DisplayName string
	Role        gateway.Role
}

func (*federatedDraft) path() Path { return PathFederated }
