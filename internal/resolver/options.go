package resolver

// Option configures a Resolver.
type Option func(*Resolver)

// WithOilIndicators overrides the substrings that mark a classless freight
// wagon as oil related.
func WithOilIndicators(indicators []string) Option {
	return func(r *Resolver) {
		if len(indicators) > 0 {
			r.oilIndicators = indicators
		}
	}
}

// WithSemanticMatch toggles the fuzzy similarity phase.
func WithSemanticMatch(enabled bool) Option {
	return func(r *Resolver) {
		r.semantic = enabled
	}
}
