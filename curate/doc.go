// Package curate builds a playlist whose length approximates a trip.
//
// A run has four stages, each usable on its own:
//
//  1. resolve a creativity level into a CreativityProfile (Policy),
//  2. grow a candidate pool from a seed, either by walking the related-artists
//     graph (BuildArtistExpandedPool) or under a creativity profile
//     (BuildPolicyExpandedPool),
//  3. pick a subset of the pool whose duration lands between the target and
//     the target plus an overshoot (Select),
//  4. create a playlist and append the picks in batches of 100 (Materialize).
//
// Curator.Curate runs all four and records everything it did in a Run.
package curate
