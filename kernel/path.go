package kernel

import stdpath "path"

// ComputeAbsPath normalizes in against cwd into an absolute path with '.'
// and '..' segments resolved, writing the result into out and returning
// the number of bytes written. An already-absolute in is normalized on its
// own; cwd is only consulted for a relative in.
func ComputeAbsPath(in, cwd string, out []byte) (int, error) {
	var abs string
	if len(in) > 0 && in[0] == '/' {
		abs = stdpath.Clean(in)
	} else {
		abs = stdpath.Clean(cwd + "/" + in)
	}
	if len(abs) > len(out) {
		return 0, ErrTooLong
	}
	return copy(out, abs), nil
}
