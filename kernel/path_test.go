package kernel

import "testing"

func TestComputeAbsPath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		cwd  string
		want string
	}{
		{"already absolute", "/a/b", "/x", "/a/b"},
		{"relative to cwd", "b/c", "/a", "/a/b/c"},
		{"dot-dot climbs out", "../c", "/a/b", "/a/c"},
		{"root stays root", ".", "/", "/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := make([]byte, MaxPath)
			n, err := ComputeAbsPath(tt.in, tt.cwd, out)
			if err != nil {
				t.Fatalf("ComputeAbsPath() error = %v", err)
			}
			if got := string(out[:n]); got != tt.want {
				t.Fatalf("ComputeAbsPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestComputeAbsPath_TooLong(t *testing.T) {
	out := make([]byte, 4)
	_, err := ComputeAbsPath("/this/is/way/too/long", "/", out)
	if err != ErrTooLong {
		t.Fatalf("ComputeAbsPath() error = %v, want ErrTooLong", err)
	}
}
