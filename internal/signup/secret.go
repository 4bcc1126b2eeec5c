package signup

import (
	"crypto/rand"
	"encoding/hex"

	"golang.org/x/crypto/argon2"
)

const (
	sealTime    = 2
	sealMemory  = 19 * 1024
	sealThreads = 1
	sealKeyLen  = 32
	sealSaltLen = 16
)

// SealedPasswords stands in for the password pair in stored sessions. The
// digests share one per-session salt and only support the equality check.
type SealedPasswords struct {
	Salt     string `json:"salt,omitempty"`
	Password string `json:"password,omitempty"`
	Confirm  string `json:"confirm,omitempty"`
}

func (f *FormState) digest(value string) string {
	salt, _ := hex.DecodeString(f.Sealed.Salt)
	return hex.EncodeToString(argon2.IDKey([]byte(value), salt, sealTime, sealMemory, sealThreads, sealKeyLen))
}

// passwordPair returns comparable forms of the password and its
// confirmation, empty when a value was never entered.
func (f *FormState) passwordPair() (password, confirm string) {
	if f.Sealed.Password == "" && f.Sealed.Confirm == "" {
		return f.Password, f.ConfirmPassword
	}
	password, confirm = f.Sealed.Password, f.Sealed.Confirm
	if f.Password != "" {
		password = f.digest(f.Password)
	}
	if f.ConfirmPassword != "" {
		confirm = f.digest(f.ConfirmPassword)
	}
	return password, confirm
}

// Seal returns a copy of f with the plaintext passwords replaced by digests.
func (f *FormState) Seal() (FormState, error) {
	out := *f
	if out.Password == "" && out.ConfirmPassword == "" {
		return out, nil
	}
	if out.Sealed.Salt == "" {
		salt := make([]byte, sealSaltLen)
		if _, err := rand.Read(salt); err != nil {
			return out, err
		}
		out.Sealed.Salt = hex.EncodeToString(salt)
	}
	if out.Password != "" {
		out.Sealed.Password = out.digest(out.Password)
	}
	if out.ConfirmPassword != "" {
		out.Sealed.Confirm = out.digest(out.ConfirmPassword)
	}
	out.Password, out.ConfirmPassword = "", ""
	return out, nil
}
