// Package snapshot persists slot vectors.
//
// A snapshot is a self-describing binary blob: a 64-byte header followed by
// a payload that holds the occupancy bitmap, the free-slot reuse order and
// every occupied value encoded with a codec.Codec. Decoding a snapshot
// yields a Vector with the same indices, the same empty slots and the same
// reuse order as the one that was encoded.
//
// # Format
//
//	header   64 bytes, little endian (see Header)
//	payload  optionally compressed with LZ4 or ZSTD, CRC32 in the header
//
//	payload (uncompressed):
//	  uint32 len | occupancy bitmap
//	  uint32 × free count           reuse order, first reused first
//	  per occupied slot, ascending:
//	  uint32 len | codec bytes
//
// # Manager
//
// Manager stores snapshots in a blobstore.Store under sortable names and
// prunes old ones:
//
//	mgr := snapshot.NewManager[string](blobstore.NewLocalStore("/var/lib/app"),
//	    snapshot.WithCompression(snapshot.CompressionZSTD),
//	    snapshot.WithKeep(5),
//	)
//	err := mgr.Save(ctx, snapshot.NameAt(time.Now()), v)
//	v, err = mgr.LoadLatest(ctx)
package snapshot
