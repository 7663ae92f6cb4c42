// Package serialization saves and loads arrays.
//
// Two container formats are supported:
//
//	SafeTensors (named arrays):
//	  [8 bytes: header size (uint64 LE)]
//	  [header: JSON, space-padded to 8 bytes]
//	  [array data: raw little-endian bytes, in name order]
//
//	IDX (a single array, the MNIST container):
//	  [2 bytes: zero]
//	  [1 byte: element type code]
//	  [1 byte: number of dimensions]
//	  [4 bytes per dimension: size (uint32 BE)]
//	  [array data: big-endian elements]
//
// SafeTensors archives written by this package carry a SHA-256 checksum of the
// data section in the header metadata; readers verify it when present.
//
// Example usage:
//
//	// Save arrays
//	arrays := map[string]*ndarray.RawArray{"x": x.Raw(), "mask": mask.Raw()}
//	if err := serialization.WriteSafeTensorsFile("arrays.safetensors", arrays, nil); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Load them back
//	archive, err := serialization.ReadSafeTensorsFile("arrays.safetensors", serialization.ReaderOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	x := archive.Arrays["x"]
package serialization
