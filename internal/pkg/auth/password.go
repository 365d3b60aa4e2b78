package auth

import "golang.org/x/crypto/bcrypt"

// BcryptCost matches the cost of the hashes already stored by earlier deployments.
const BcryptCost = 10

func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), BcryptCost)
	return string(hash), err
}

// CheckPassword is false for a mismatch and for a malformed hash alike.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
