// Package fileutil holds the file modes used when writing output.
package fileutil

import "os"

// OwnerReadWrite is the mode for consolidated documents and log files,
// which describe internal APIs (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600
