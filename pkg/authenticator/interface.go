package authenticator

// TokenEngine signs and verifies tokens carrying an object of type T. Tokens
// are issued by the identity service; this service only verifies them, Generate
// exists for tooling and tests.
type TokenEngine[T any] interface {
	Generate(sub string, obj T) (string, error)
	Verify(token string) (T, error)
}
