// Package writer serializes MCL value trees back to canonical text.
//
// Strings matching the identifier pattern (one or more ASCII letters,
// digits, '_', '.', '$') are written bare; every other string, including
// the empty string, is double-quoted with '\' and '"' escaped. Dict entries
// are written one per line in ascending key order; arrays render inline
// unless they have more than one element.
//
// # Basic Usage
//
//	buf := writer.NewBuffer(256)
//	if err := writer.Write(doc, buf); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(buf.String())
//
// # Transactional Writes
//
// [Write] never leaves a partial serialization in the buffer: on overflow it
// rewinds to the length the buffer had on entry, grows, and retries the
// whole write. Buffers created with [NewBufferWithLimit] stop growing at
// their limit and report a capacity error instead.
package writer
