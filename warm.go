package molstruct

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Warm pre-computes the independent derived views concurrently, so a
// multi-reader host can treat the structure as fully immutable afterwards.
// The cache cells are compute-once, so racing readers during Warm observe
// either an unset cell (and compute) or the final value.
func (s *Structure) Warm(ctx context.Context) error {
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.HashCode()
		s.TransformHash()
		return nil
	})
	g.Go(func() error {
		s.SerialMapping()
		return nil
	})
	g.Go(func() error {
		s.SymmetryGroups()
		return nil
	})
	g.Go(func() error {
		s.Lookup3D()
		return nil
	})
	g.Go(func() error {
		_, err := s.Bonds()
		return err
	})
	g.Go(func() error {
		_, err := s.CrossLinkRestraints()
		return err
	})
	g.Go(func() error {
		s.UniqueResidueNames()
		s.EntityKeys()
		s.ResidueIndicesByModel()
		return nil
	})

	return g.Wait()
}
