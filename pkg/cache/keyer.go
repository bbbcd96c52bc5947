package cache

// ArtifactKeyOpts distinguishes artifact variants rendered from the same
// DOT document.
type ArtifactKeyOpts struct {
	// Format is the artifact format, e.g. "svg" or "png".
	Format string
}

// Keyer generates cache keys so that all consumers agree on the layout.
type Keyer interface {
	// ArtifactKey generates a key for a rendered artifact. dotHash is the
	// content hash of the DOT document, typically [Hash] of its bytes.
	ArtifactKey(dotHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key layout.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a keyer with the standard key layout.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(dotHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", dotHash, opts.Format)
}
