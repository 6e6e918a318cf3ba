// Package testutil provides testing utilities for molstruct.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded coordinate generator and compact builders for input
// models with known chain/residue layouts.
//
// # Deterministic coordinates
//
//	rng := testutil.NewRNG(seed)
//	x := rng.Coords(n, 50.0) // n values in [0, 50)
//
// # Model fixtures
//
//	m := testutil.BuildModel("fixture",
//	    testutil.ProteinChain("A", "ent1", 2, 3), // 2 residues x 3 atoms
//	    testutil.WaterChain("W", 4),              // 4 single-atom waters
//	)
package testutil
