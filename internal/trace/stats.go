package trace

import "context"

// Stats walks the dump at input and returns its summary.
func (s *Service) Stats(ctx context.Context, input string) (Summary, error) {
	return s.walk(ctx, input, nil)
}
