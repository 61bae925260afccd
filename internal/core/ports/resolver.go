package ports

// VersionLookup reads entries of the version catalog.
// *domain.Catalog implements it.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type VersionLookup interface {
	// Lookup returns the value for key or an error if it is absent.
	Lookup(key string) (string, error)
}
