package scan

// Option configures a Scanner.
type Option func(*Scanner)

// WithProgressInterval sets how many folders are scanned between progress
// log lines.
func WithProgressInterval(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.progressEvery = n
		}
	}
}
