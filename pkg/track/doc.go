// Package track assembles the evolution track of a binary system from a hierarchical
// container.
//
// Assembly reads the container, aligns both star histories onto the binary history's
// sequence key, merges the three tables into one, and appends derived fields:
//
//	res, err := track.Assemble(ctx, "grid/run_001.h5", h5.Opener())
//	if err != nil {
//		return err
//	}
//	mass, _ := res.Table.Floats("mass")
//
// An assembly either fully succeeds or fails, and holds no state between calls.
package track
