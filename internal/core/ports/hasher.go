package ports

// Hasher fingerprints resolved artifact files.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// Fingerprint computes a single hash over the names and contents of paths.
	Fingerprint(paths []string) (string, error)
}
