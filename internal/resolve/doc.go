// Package resolve finds the effective directory of a tree by skipping
// chains of single-child directories.
//
// Starting at a path, the resolver lists the current directory and
// descends while it contains exactly one entry and that entry is itself a
// directory. Descent halts at the first directory that is empty, holds a
// lone non-directory entry, or holds more than one entry:
//
//	outer/               resolve("outer") == "outer/inner/content"
//	  inner/
//	    content/
//	      a.txt
//	      b.txt
//
// # Listing
//
// Directories are read lazily, one entry at a time, and the read stops as
// soon as a second entry is seen. Each listing handle is closed before the
// next level is opened.
//
// # Errors
//
// Any failure to open or read a directory, or to inspect an entry's type,
// aborts the resolution and is returned as an [*Error]. The message is the
// underlying OS message; the kind is available through [errors.Is] with
// [ErrNotFound], [ErrNotDirectory] and [ErrPermission]. Resolving a path
// that is not a directory is an error, not an empty listing.
//
// # Symlinks
//
// By default an entry's type is taken from the listing itself, so a
// symlink to a directory counts as a non-directory and halts descent.
// With [Options.FollowSymlinks] the link target is inspected instead; no
// cycle detection is performed, so combine it with [Options.MaxDepth] when
// walking untrusted trees.
package resolve
