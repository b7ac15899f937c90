package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a plaintext password at the given bcrypt cost.
// A non-positive cost means the env var was unset; bcrypt's default
// applies instead of its minimum.
func HashPassword(password string, cost int) (string, error) {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its stored bcrypt hash.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
