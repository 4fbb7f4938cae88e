package contract

// IHasher hashes and verifies passwords.
type IHasher interface {
	HashPassword(password string) (string, error)
	ComparePasswordHash(password, hashedPassword string) error
}

// IUUIDGenerator generates unique identifiers.
type IUUIDGenerator interface {
	NewUUID() string
}

// IRandomGenerator produces URL-safe random tokens.
type IRandomGenerator interface {
	GenerateRandomToken(n int) (string, error)
}
