// Package transport reads and writes streams of MCTP message headers.
//
// A header stream is a sequence of 4-byte header words with no length
// prefix or separator, as found in raw captures:
//
//	┌──────────────┬──────────────┬──────────────┐
//	│  header (4B) │  header (4B) │     ...      │
//	└──────────────┴──────────────┴──────────────┘
//
// Words are big endian (most significant byte first, as on the wire)
// unless the reader or writer is configured otherwise.
//
// # Reading
//
//	r := transport.NewHeaderReader(f)
//	for {
//	    h, word, err := r.ReadHeader()
//	    if err == io.EOF {
//	        break
//	    }
//	    ...
//	}
//
// ReadHeader decodes each word with the shape registered for its message
// type unless a fixed shape is set with SetShape. A decode failure is
// returned for that word only; the stream stays aligned and the next call
// reads the following word.
//
// # Logging
//
// Both directions accept a log.Logger with SetLogger. Every decoded or
// encoded header (and every failure) is reported as a log event.
package transport
