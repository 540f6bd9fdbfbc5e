package password

import "golang.org/x/crypto/bcrypt"

// Hash derives a salted one-way hash of plain. bcrypt generates a fresh
// random salt per call and embeds it in the output.
func Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Compare returns a non-nil error when plain does not match hash. It never
// panics on malformed input.
func Compare(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
