// SPDX-License-Identifier: MPL-2.0

//go:build windows

package watch

import "syscall"

// fatalErrnos are the Win32 codes ReadDirectoryChangesW reports once the
// watch cannot continue: too many open handles (4), a handle invalidated by
// deleting or unmounting the directory (6), and no memory for the
// notification buffer (8).
var fatalErrnos = []syscall.Errno{4, 6, 8}
