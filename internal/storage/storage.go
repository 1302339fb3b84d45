// Package storage provides the file-storage disk used for uploaded
// content.
//
// The Disk is a thin contract over a go-billy filesystem: put bytes
// under a key, read them back, check existence. The "fs" driver writes
// under a configured root on the local filesystem; the "memory" driver
// keeps objects in process memory and exists for tests.
package storage
